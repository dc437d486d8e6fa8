package services

import (
	"encoding/json"
	"fmt"

	"printrelay/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// Countries the store ships to, mirrored into the Stripe shipping address
// form.
var allowedShippingCountries = []string{
	"US", "CA", "GB", "BE", "AU", "DE", "FR", "IT", "JP",
	"NL", "NZ", "ES", "CH", "AT", "DK", "NO", "SE", "SG",
}

// StripeProvider creates and retrieves Stripe Checkout sessions. It is safe
// for concurrent use.
type StripeProvider struct {
	api     *client.API
	baseURL string
}

// NewStripeProvider builds a provider with its own Stripe client. baseURL is
// the public base URL the success and cancel redirects are built from.
func NewStripeProvider(secretKey, baseURL string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api, baseURL: baseURL}
}

// CreateCheckoutSession turns a validated cart into a hosted checkout
// session and returns it with the redirect URL set. The serialized cart
// travels in the session metadata so the confirmation leg can rebuild it.
func (p *StripeProvider) CreateCheckoutSession(cart []models.CartItem) (*models.PaymentSession, error) {
	params, err := p.sessionParams(cart)
	if err != nil {
		return nil, err
	}

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}
	return sessionFromStripe(s), nil
}

func (p *StripeProvider) sessionParams(cart []models.CartItem) (*stripe.CheckoutSessionParams, error) {
	hundred := decimal.NewFromInt(100)
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cart))
	for _, item := range cart {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Title),
				},
				// Stripe wants minor units; everywhere else prices stay
				// major-unit decimals.
				UnitAmount: stripe.Int64(item.Price.Mul(hundred).Round(0).IntPart()),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	rawCart, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("serializing cart: %w", err)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(allowedShippingCountries),
		},
		SuccessURL: stripe.String(p.baseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(p.baseURL + "/cancel"),
	}
	params.AddMetadata(models.CartMetadataKey, string(rawCart))
	return params, nil
}

// GetCheckoutSession retrieves a session once, with payment-method details
// expanded.
func (p *StripeProvider) GetCheckoutSession(id string) (*models.PaymentSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent.payment_method")

	s, err := p.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("retrieving checkout session %s: %w", id, err)
	}
	return sessionFromStripe(s), nil
}

func sessionFromStripe(s *stripe.CheckoutSession) *models.PaymentSession {
	session := &models.PaymentSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil {
		session.CustomerName = s.CustomerDetails.Name
		if addr := s.CustomerDetails.Address; addr != nil {
			session.ShippingAddress = models.Address{
				Line1:       addr.Line1,
				City:        addr.City,
				StateCode:   addr.State,
				CountryCode: addr.Country,
				Zip:         addr.PostalCode,
			}
		}
	}
	return session
}
