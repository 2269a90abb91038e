// Package stripe wraps the Stripe SDK behind the small set of flows the
// checkout gateway needs: price resolution, customer upsert, one-time
// payment intents and subscription checkout sessions.
package stripe

import (
	goerrors "errors"
	"strings"

	stripeapi "github.com/stripe/stripe-go/v82"
	"go.vocdoni.io/dvote/log"
)

// Service implements the gateway's payment flows on top of the Client.
// It holds no per-request state; every method is a short sequence of
// provider calls where a failure aborts the remaining steps.
type Service struct {
	client *Client
	config *Config
}

// NewService creates a new Stripe service with the given configuration
func NewService(config *Config) *Service {
	return &Service{
		client: NewClient(config),
		config: config,
	}
}

// Config returns the configuration the service was built with.
func (s *Service) Config() *Config {
	return s.config
}

// ResolvePrice resolves exactly one price from a price ID or a product ID.
// A price ID is fetched directly. A product ID resolves to the product's
// default price when it has one, otherwise to the first active price listed
// for the product (provider-returned order, limit 1).
func (s *Service) ResolvePrice(priceID, productID string) (*stripeapi.Price, error) {
	if priceID != "" {
		return s.client.GetPrice(priceID)
	}

	product, err := s.client.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if product.DefaultPrice != nil && product.DefaultPrice.ID != "" {
		// default_price is expanded on retrieval, no second fetch needed
		return product.DefaultPrice, nil
	}
	return s.client.FirstActivePrice(product.ID)
}

// CheckoutInput is the resolved input of the checkout orchestrator.
// Empty URLs fall back to the configured defaults.
type CheckoutInput struct {
	PriceID    string
	ProductID  string
	Email      string
	Name       string
	Phone      string
	SuccessURL string
	CancelURL  string
	ReturnURL  string
}

// CheckoutResult is the outcome of a checkout: either a hosted subscription
// session (Mode "subscription", URL set) or a one-time payment intent
// (Mode "payment", ClientSecret and ReturnURL set).
type CheckoutResult struct {
	Mode         string
	URL          string
	ClientSecret string
	ReturnURL    string
	Summary      *PriceSummary
}

// Checkout resolves a price, upserts the customer when an email is given and
// branches on the price type: recurring prices get a subscription checkout
// session, one-time prices get a payment intent. One-time prices must carry
// unit_amount and currency (ErrPriceNotOneTime otherwise).
func (s *Service) Checkout(input *CheckoutInput) (*CheckoutResult, error) {
	price, err := s.ResolvePrice(input.PriceID, input.ProductID)
	if err != nil {
		return nil, err
	}
	summary := SummarizePrice(price)

	customerID, err := s.client.UpsertCustomer(input.Email, input.Name, input.Phone)
	if err != nil {
		return nil, err
	}

	successURL := orDefault(input.SuccessURL, s.config.SuccessURL)
	cancelURL := orDefault(input.CancelURL, s.config.CancelURL)
	returnURL := orDefault(input.ReturnURL, s.config.ReturnURL)

	metadata := map[string]string{
		"source":    "framer",
		"email":     input.Email,
		"name":      input.Name,
		"phone":     input.Phone,
		"productId": summary.ProductID,
		"priceId":   price.ID,
	}

	if price.Recurring != nil {
		session, err := s.client.CreateCheckoutSession(&CheckoutParams{
			PriceID:    price.ID,
			CustomerID: customerID,
			Email:      input.Email,
			SuccessURL: successURL,
			CancelURL:  cancelURL,
			Metadata:   metadata,
		})
		if err != nil {
			return nil, err
		}
		log.Debugw("created subscription checkout session", "session", session.ID, "price", price.ID)
		return &CheckoutResult{Mode: "subscription", URL: session.URL, Summary: summary}, nil
	}

	if price.UnitAmount == 0 || price.Currency == "" {
		return nil, ErrPriceNotOneTime
	}

	intent, err := s.client.CreatePaymentIntent(&IntentParams{
		Amount:     price.UnitAmount,
		Currency:   string(price.Currency),
		CustomerID: customerID,
		Email:      input.Email,
		Metadata:   metadata,
		CardOnly:   s.config.DisableLink,
	})
	if err != nil {
		return nil, err
	}
	log.Debugw("created payment intent", "intent", intent.ID, "price", price.ID)
	return &CheckoutResult{
		Mode:         "payment",
		ClientSecret: intent.ClientSecret,
		ReturnURL:    returnURL,
		Summary:      summary,
	}, nil
}

// IntentInput is the resolved input of the direct intent creator.
type IntentInput struct {
	Email       string
	Name        string
	Phone       string
	Amount      int64
	Currency    string
	PriceID     string
	ProductID   string
	ProductName string
}

// CreateIntent determines the final amount and currency (from the price when
// a price ID is given, requiring unit_amount pricing; from the caller
// otherwise), upserts the customer and creates a payment intent with
// automatic payment methods. Returns the intent's client secret.
func (s *Service) CreateIntent(input *IntentInput) (string, error) {
	finalAmount := input.Amount
	finalCurrency := lowerOrDefault(input.Currency, "usd")

	if input.PriceID != "" {
		price, err := s.client.GetPrice(input.PriceID)
		if err != nil {
			return "", err
		}
		if price.UnitAmount == 0 || price.Currency == "" {
			return "", ErrPriceNotUnitAmount
		}
		finalAmount = price.UnitAmount
		finalCurrency = string(price.Currency)
	}

	if finalAmount < 1 {
		return "", ErrInvalidAmount
	}

	customerID, err := s.client.UpsertCustomer(input.Email, input.Name, input.Phone)
	if err != nil {
		return "", err
	}

	intent, err := s.client.CreatePaymentIntent(&IntentParams{
		Amount:     finalAmount,
		Currency:   finalCurrency,
		CustomerID: customerID,
		Email:      input.Email,
		Metadata: map[string]string{
			"source":      "framer-payment-element",
			"email":       input.Email,
			"name":        input.Name,
			"phone":       input.Phone,
			"productId":   input.ProductID,
			"productName": input.ProductName,
			"priceId":     input.PriceID,
		},
	})
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

// SubscriptionInput is the resolved input of the subscription creator.
type SubscriptionInput struct {
	PriceID    string
	Email      string
	Name       string
	Phone      string
	SuccessURL string
	CancelURL  string
}

// CreateSubscription upserts the customer and creates a subscription
// checkout session from an explicit recurring price ID. Returns the hosted
// session URL.
func (s *Service) CreateSubscription(input *SubscriptionInput) (string, error) {
	customerID, err := s.client.UpsertCustomer(input.Email, input.Name, input.Phone)
	if err != nil {
		return "", err
	}

	session, err := s.client.CreateCheckoutSession(&CheckoutParams{
		PriceID:    input.PriceID,
		CustomerID: customerID,
		Email:      input.Email,
		SuccessURL: orDefault(input.SuccessURL, s.config.SuccessURL),
		CancelURL:  orDefault(input.CancelURL, s.config.CancelURL),
		Metadata: map[string]string{
			"source": "framer-subscription",
			"email":  input.Email,
			"name":   input.Name,
			"phone":  input.Phone,
		},
	})
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

// ProductDisplay resolves a product and its price symmetrically (price ID to
// its owning product, or product ID to its default/first-active price) and
// builds the display payload. Returns ErrProductNotFound or ErrPriceNotFound
// when either side is missing after resolution.
func (s *Service) ProductDisplay(productID, priceID string) (*ProductDisplay, error) {
	var product *stripeapi.Product
	var price *stripeapi.Price
	var err error

	if priceID != "" {
		price, err = s.client.GetPrice(priceID)
		if err != nil {
			return nil, err
		}
		if price.Product == nil || price.Product.ID == "" {
			return nil, ErrProductNotFound
		}
		product, err = s.client.GetProduct(price.Product.ID)
		if err != nil {
			return nil, err
		}
	} else {
		product, err = s.client.GetProduct(productID)
		if err != nil {
			return nil, err
		}
		if product.DefaultPrice != nil && product.DefaultPrice.ID != "" {
			price = product.DefaultPrice
		} else {
			price, err = s.client.FirstActivePrice(product.ID)
			if err != nil {
				// only an empty list is a 404, provider failures keep
				// their own message
				if goerrors.Is(err, ErrNoActivePrice) {
					return nil, ErrPriceNotFound
				}
				return nil, err
			}
		}
	}

	if product == nil {
		return nil, ErrProductNotFound
	}
	if price == nil {
		return nil, ErrPriceNotFound
	}
	return DisplayProduct(product, price), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func lowerOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return strings.ToLower(value)
}
