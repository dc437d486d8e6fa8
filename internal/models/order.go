package models

import "time"

// Recipient is the shipping destination in the fulfillment provider's order
// shape.
type Recipient struct {
	Name        string `json:"name"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	StateCode   string `json:"state_code"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
}

// FulfillmentFile is one artwork reference attached to a fulfillment item.
type FulfillmentFile struct {
	URL string `json:"url"`
}

// FulfillmentItem is one line of a fulfillment order.
type FulfillmentItem struct {
	VariantID string            `json:"variant_id"`
	Quantity  int               `json:"quantity"`
	Files     []FulfillmentFile `json:"files"`
}

// FulfillmentOrder is the payload submitted to the fulfillment API.
type FulfillmentOrder struct {
	ExternalID string            `json:"external_id,omitempty"`
	Recipient  Recipient         `json:"recipient"`
	Items      []FulfillmentItem `json:"items"`
}

// Order is the persisted order row. Only the first line item's fulfillment
// tuple is stored; the submission to the fulfillment API carries every item.
type Order struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Address1    string    `json:"address1"`
	City        string    `json:"city"`
	StateCode   string    `json:"state_code"`
	CountryCode string    `json:"country_code"`
	Zip         string    `json:"zip"`
	VariantID   string    `json:"variant_id"`
	Quantity    int       `json:"quantity"`
	FileURL     string    `json:"file_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Order statuses. The insert and the external submission are two separate
// steps with no transaction across them; the status records the outcome.
const (
	OrderStatusPendingFulfillment = "pending_fulfillment"
	OrderStatusFulfilled          = "fulfilled"
	OrderStatusFailed             = "failed"
)

// DirectOrderRequest is the POST /orders body. This path trusts the caller
// and performs no payment check.
type DirectOrderRequest struct {
	Recipient Recipient         `json:"recipient"`
	Items     []FulfillmentItem `json:"items"`
}
