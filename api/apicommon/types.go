// Package apicommon defines the request and response schemas of every
// endpoint, making required and optional fields explicit instead of
// duck-typing them out of loose JSON bodies.
package apicommon

import (
	"encoding/json"

	"github.com/framerpay/checkout-backend/stripe"
)

// CheckoutRequest is the body of POST /checkout. Exactly one of PriceID or
// ProductID is required; everything else is optional. Empty URLs fall back
// to the server-configured defaults.
type CheckoutRequest struct {
	PriceID    string `json:"priceId"`
	ProductID  string `json:"productId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
	ReturnURL  string `json:"returnUrl"`
}

// CheckoutResponse is the response of POST /checkout. Mode is "subscription"
// (URL set) or "payment" (ClientSecret and ReturnURL set).
type CheckoutResponse struct {
	Mode         string               `json:"mode"`
	URL          string               `json:"url,omitempty"`
	ClientSecret string               `json:"clientSecret,omitempty"`
	ReturnURL    string               `json:"returnUrl,omitempty"`
	PriceSummary *stripe.PriceSummary `json:"priceSummary"`
}

// CreateIntentRequest is the body of POST /create-intent. When PriceID is
// given the amount and currency are resolved from it; otherwise Amount
// (minor units, required positive) and Currency (default "usd") apply.
type CreateIntentRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	PriceID     string `json:"priceId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Image       string `json:"image"`
}

// CreateIntentResponse is the response of POST /create-intent.
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateSubscriptionRequest is the body of POST /create-subscription.
// PriceID is required and must reference a recurring price.
type CreateSubscriptionRequest struct {
	PriceID    string `json:"priceId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

// CreateSubscriptionResponse is the response of POST /create-subscription.
type CreateSubscriptionResponse struct {
	URL string `json:"url"`
}

// ProductRequest is the input of GET|POST /product, read from the query
// string on GET and from the body on POST. One of the two IDs is required.
type ProductRequest struct {
	ProductID string `json:"productId"`
	PriceID   string `json:"priceId"`
}

// ProductResponse is the response of GET|POST /product.
type ProductResponse struct {
	OK       bool                `json:"ok"`
	Product  stripe.ProductInfo  `json:"product"`
	Price    stripe.PriceInfo    `json:"price"`
	Computed stripe.ComputedInfo `json:"computed"`
}

// DebugResponse is the response of the ?debug=1 key probes. It reveals
// whether a secret is configured and its mode prefix, never the secret.
type DebugResponse struct {
	OK           bool   `json:"ok"`
	HasKey       bool   `json:"hasKey"`
	KeyPrefix    string `json:"keyPrefix,omitempty"`
	Time         string `json:"time,omitempty"`
	LinkDisabled *bool  `json:"linkDisabled,omitempty"`
}

// EchoResponse is the response of ANY /echo: a reflection of the request.
// RawBody is null when the body was empty, JSONBody is null when the body
// was not valid JSON.
type EchoResponse struct {
	OK       bool            `json:"ok"`
	Method   string          `json:"method"`
	URL      string          `json:"url"`
	RawBody  *string         `json:"rawBody"`
	JSONBody json.RawMessage `json:"jsonBody"`
	Time     string          `json:"time"`
}
