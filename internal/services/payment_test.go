package services

import (
	"encoding/json"
	"testing"

	"printrelay/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionParams_LineItemMapping(t *testing.T) {
	p := NewStripeProvider("sk_test_123", "https://shop.example.com")

	cart := []models.CartItem{
		{Title: "Poster A", Price: decimal.NewFromInt(25), Quantity: 2, VariantID: "V1", FileURL: "http://x/a.png"},
		{Title: "Poster B", Price: decimal.RequireFromString("19.99"), Quantity: 1, VariantID: "V2", FileURL: "http://x/b.png"},
	}

	params, err := p.sessionParams(cart)
	require.NoError(t, err)

	require.Len(t, params.LineItems, 2)

	first := params.LineItems[0]
	assert.Equal(t, "Poster A", *first.PriceData.ProductData.Name)
	assert.Equal(t, "usd", *first.PriceData.Currency)
	assert.Equal(t, int64(2500), *first.PriceData.UnitAmount, "major units become cents")
	assert.Equal(t, int64(2), *first.Quantity)

	second := params.LineItems[1]
	assert.Equal(t, int64(1999), *second.PriceData.UnitAmount)

	assert.Equal(t, "payment", *params.Mode)
	require.Len(t, params.PaymentMethodTypes, 1)
	assert.Equal(t, "card", *params.PaymentMethodTypes[0])
	assert.Equal(t, "https://shop.example.com/success?session_id={CHECKOUT_SESSION_ID}", *params.SuccessURL)
	assert.Equal(t, "https://shop.example.com/cancel", *params.CancelURL)
	assert.Len(t, params.ShippingAddressCollection.AllowedCountries, 18)
}

func TestSessionParams_CartMetadataRoundTrip(t *testing.T) {
	p := NewStripeProvider("sk_test_123", "https://shop.example.com")

	cart := []models.CartItem{
		{Title: "Poster A", Price: decimal.NewFromInt(25), Quantity: 2, VariantID: "V1", FileURL: "http://x/a.png"},
		{Title: "Poster B", Price: decimal.RequireFromString("19.99"), Quantity: 1, VariantID: "V2", FileURL: "http://x/b.png"},
	}

	params, err := p.sessionParams(cart)
	require.NoError(t, err)

	raw, ok := params.Metadata[models.CartMetadataKey]
	require.True(t, ok, "cart must ride in the session metadata")

	var parsed []models.CartItem
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	require.Len(t, parsed, len(cart))
	for i := range cart {
		assert.Equal(t, cart[i].Title, parsed[i].Title)
		assert.True(t, cart[i].Price.Equal(parsed[i].Price), "price %s != %s", cart[i].Price, parsed[i].Price)
		assert.Equal(t, cart[i].Quantity, parsed[i].Quantity)
		assert.Equal(t, cart[i].VariantID, parsed[i].VariantID)
		assert.Equal(t, cart[i].FileURL, parsed[i].FileURL)
	}
}
