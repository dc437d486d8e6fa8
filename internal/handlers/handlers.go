package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"printrelay/internal/models"
	"printrelay/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DBInterface is the persistence surface the handlers need.
type DBInterface interface {
	CreateOrder(ctx context.Context, order *models.Order) (int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
}

// PaymentProvider creates and retrieves hosted payment sessions.
type PaymentProvider interface {
	CreateCheckoutSession(cart []models.CartItem) (*models.PaymentSession, error)
	GetCheckoutSession(id string) (*models.PaymentSession, error)
}

// FulfillmentAPI is the print-on-demand provider surface.
type FulfillmentAPI interface {
	GetProducts(ctx context.Context) (json.RawMessage, error)
	CreateOrder(ctx context.Context, order *models.FulfillmentOrder) (json.RawMessage, error)
}

// Handler routes HTTP requests through the checkout relay pipeline.
type Handler struct {
	db       DBInterface
	payments PaymentProvider
	printful FulfillmentAPI
	email    *services.EmailService
}

// NewHandler wires the handler with its collaborators. Everything is
// injected so tests can substitute fakes.
func NewHandler(db DBInterface, payments PaymentProvider, printful FulfillmentAPI, email *services.EmailService) *Handler {
	return &Handler{
		db:       db,
		payments: payments,
		printful: printful,
		email:    email,
	}
}

// HomePage renders the landing page.
func (h *Handler) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": "Print Shop",
	})
}

// HandleCheckout validates the cart and creates a hosted payment session,
// returning its redirect URL. No local state is created.
func (h *Handler) HandleCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("HandleCheckout - JSON bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
		return
	}

	if err := models.ValidateCart(req.Cart); err != nil {
		log.Printf("HandleCheckout - Invalid cart: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("HandleCheckout - Cart with %d items, client total: %s", len(req.Cart), req.TotalPrice)

	session, err := h.payments.CreateCheckoutSession(req.Cart)
	if err != nil {
		log.Printf("HandleCheckout - Session create error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("HandleCheckout - Created session %s", session.ID)
	c.JSON(http.StatusOK, gin.H{"url": session.URL})
}

// HandleSuccess confirms payment for the session named in the query string
// and dispatches fulfillment. An unpaid session is terminal: the client may
// restart checkout but nothing is retried here.
func (h *Handler) HandleSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	session, err := h.payments.GetCheckoutSession(sessionID)
	if err != nil {
		log.Printf("HandleSuccess - Session retrieve error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if session.PaymentStatus != models.PaymentStatusPaid {
		log.Printf("HandleSuccess - Session %s not paid (status: %s)", sessionID, session.PaymentStatus)
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment not completed"})
		return
	}

	cart, err := models.CartFromMetadata(session.Metadata)
	if err != nil {
		log.Printf("HandleSuccess - Cart metadata error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recipient := models.Recipient{
		Name:        session.CustomerName,
		Address1:    session.ShippingAddress.Line1,
		City:        session.ShippingAddress.City,
		StateCode:   session.ShippingAddress.StateCode,
		CountryCode: session.ShippingAddress.CountryCode,
		Zip:         session.ShippingAddress.Zip,
	}

	items := make([]models.FulfillmentItem, 0, len(cart))
	for _, item := range cart {
		items = append(items, models.FulfillmentItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Files:     []models.FulfillmentFile{{URL: item.FileURL}},
		})
	}

	orderID, printfulResp, err := h.submitOrder(c.Request.Context(), recipient, items)
	if err != nil {
		log.Printf("HandleSuccess - Order submit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("HandleSuccess - Order %d fulfilled for session %s", orderID, sessionID)
	c.JSON(http.StatusOK, gin.H{
		"message":          "Payment successful",
		"orderId":          orderID,
		"printfulResponse": printfulResp,
	})
}

// HandleCancel sends an abandoned checkout back to the landing page.
func (h *Handler) HandleCancel(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// CreateOrder is the trusted bypass path: persist and submit a pre-built
// order with no payment check.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.DirectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("CreateOrder - JSON bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	if err := validateDirectOrder(&req); err != nil {
		log.Printf("CreateOrder - Invalid order: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	orderID, printfulResp, err := h.submitOrder(c.Request.Context(), req.Recipient, req.Items)
	if err != nil {
		log.Printf("CreateOrder - Order submit error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("CreateOrder - Order %d submitted", orderID)
	c.JSON(http.StatusOK, gin.H{
		"orderId":          orderID,
		"printfulResponse": printfulResp,
	})
}

// GetProducts passes the fulfillment provider's store product list through.
func (h *Handler) GetProducts(c *gin.Context) {
	products, err := h.printful.GetProducts(c.Request.Context())
	if err != nil {
		log.Printf("GetProducts - Printful error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", products)
}

func validateDirectOrder(req *models.DirectOrderRequest) error {
	if req.Recipient.Name == "" || req.Recipient.Address1 == "" {
		return errors.New("recipient name and address1 are required")
	}
	if len(req.Items) == 0 {
		return errors.New("order needs at least one item")
	}
	for i, item := range req.Items {
		if item.VariantID == "" {
			return fmt.Errorf("order item %d is missing a variant_id", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("order item %d has an invalid quantity", i)
		}
	}
	return nil
}

// submitOrder persists the order row, submits the fulfillment order and
// records the outcome in the status column. No transaction spans the two
// steps; a failed submission leaves a "failed" row and no compensation runs.
func (h *Handler) submitOrder(ctx context.Context, recipient models.Recipient, items []models.FulfillmentItem) (int64, json.RawMessage, error) {
	// The orders table stores a single fulfillment tuple per row, so only
	// the first line item lands in the database. The submission below still
	// carries every item.
	order := &models.Order{
		Name:        recipient.Name,
		Address1:    recipient.Address1,
		City:        recipient.City,
		StateCode:   recipient.StateCode,
		CountryCode: recipient.CountryCode,
		Zip:         recipient.Zip,
		VariantID:   items[0].VariantID,
		Quantity:    items[0].Quantity,
		Status:      models.OrderStatusPendingFulfillment,
	}
	if len(items[0].Files) > 0 {
		order.FileURL = items[0].Files[0].URL
	}

	orderID, err := h.db.CreateOrder(ctx, order)
	if err != nil {
		return 0, nil, fmt.Errorf("saving order: %w", err)
	}

	fulfillment := &models.FulfillmentOrder{
		ExternalID: uuid.NewString(),
		Recipient:  recipient,
		Items:      items,
	}

	printfulResp, err := h.printful.CreateOrder(ctx, fulfillment)
	if err != nil {
		if updateErr := h.db.UpdateOrderStatus(ctx, orderID, models.OrderStatusFailed); updateErr != nil {
			log.Printf("submitOrder - Status update error for order %d: %v", orderID, updateErr)
		}
		return orderID, nil, err
	}

	if err := h.db.UpdateOrderStatus(ctx, orderID, models.OrderStatusFulfilled); err != nil {
		log.Printf("submitOrder - Status update error for order %d: %v", orderID, err)
	}
	order.Status = models.OrderStatusFulfilled

	// Notify the admin asynchronously; a mail failure never fails the order.
	go func(o models.Order) {
		if err := h.email.SendOrderNotification(&o); err != nil {
			log.Printf("submitOrder - Email notification error for order %d: %v", o.ID, err)
		}
	}(*order)

	return orderID, printfulResp, nil
}
