package models

// PaymentStatusPaid is the only session status that may proceed to
// fulfillment.
const PaymentStatusPaid = "paid"

// Address is the shipping address collected by the payment processor.
type Address struct {
	Line1       string `json:"line1"`
	City        string `json:"city"`
	StateCode   string `json:"state_code"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
}

// PaymentSession is a provider-neutral view of a hosted checkout session.
// The processor owns the session; this service only creates it and later
// reads it back by id.
type PaymentSession struct {
	ID              string
	URL             string
	PaymentStatus   string
	CustomerName    string
	ShippingAddress Address
	Metadata        map[string]string
}
