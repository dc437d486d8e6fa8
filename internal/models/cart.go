package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CartMetadataKey is the payment-session metadata key the serialized cart is
// stored under. The session is the only state carried between the checkout
// and confirmation legs; there is no server-side cart store.
const CartMetadataKey = "cart"

// CartItem is one purchasable line in a client-submitted cart. Price is in
// major currency units; conversion to cents happens only at the
// payment-processor boundary.
type CartItem struct {
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	VariantID string          `json:"variant_id,omitempty"`
	FileURL   string          `json:"file_url,omitempty"`
}

// CheckoutRequest is the POST /checkout body. TotalPrice and ItemCount are
// client-side hints and are only logged.
type CheckoutRequest struct {
	Cart       []CartItem      `json:"cart"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemCount  int             `json:"itemCount"`
}

// ValidateCart rejects carts that must not reach the payment processor.
func ValidateCart(cart []CartItem) error {
	if len(cart) == 0 {
		return errors.New("cart is empty")
	}
	for i, item := range cart {
		if item.Title == "" {
			return fmt.Errorf("cart item %d is missing a title", i)
		}
		if !item.Price.IsPositive() {
			return fmt.Errorf("cart item %d has an invalid price", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("cart item %d has an invalid quantity", i)
		}
	}
	return nil
}

// CartFromMetadata parses the cart that was serialized into the payment
// session's metadata at creation time.
func CartFromMetadata(metadata map[string]string) ([]CartItem, error) {
	raw := metadata[CartMetadataKey]
	if raw == "" {
		return nil, errors.New("session metadata has no cart")
	}
	var cart []CartItem
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("parsing cart metadata: %w", err)
	}
	if err := ValidateCart(cart); err != nil {
		return nil, fmt.Errorf("cart metadata: %w", err)
	}
	return cart, nil
}
