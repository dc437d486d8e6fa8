package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"printrelay/internal/models"
)

// PrintfulError carries the upstream status code and response body so
// callers can tell failures apart instead of getting one generic message.
type PrintfulError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *PrintfulError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("printful %s failed: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("printful %s failed: %v", e.Op, e.Err)
}

func (e *PrintfulError) Unwrap() error { return e.Err }

// PrintfulClient talks to the Printful store API using a bearer credential.
// It is safe for concurrent use.
type PrintfulClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewPrintfulClient builds a client for the given API base URL and key.
func NewPrintfulClient(baseURL, apiKey string) *PrintfulClient {
	return &PrintfulClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetProducts lists the store's products.
func (c *PrintfulClient) GetProducts(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/store/products", nil)
}

// CreateOrder submits a fulfillment order.
func (c *PrintfulClient) CreateOrder(ctx context.Context, order *models.FulfillmentOrder) (json.RawMessage, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encoding fulfillment order: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/orders", body)
}

func (c *PrintfulClient) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building printful request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("PrintfulClient - %s %s error: %v", method, path, err)
		return nil, &PrintfulError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading printful response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("PrintfulClient - %s %s returned %d: %s", method, path, resp.StatusCode, data)
		return nil, &PrintfulError{Op: method + " " + path, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return json.RawMessage(data), nil
}
