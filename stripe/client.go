package stripe

import (
	stripeapi "github.com/stripe/stripe-go/v82"
	stripecheckoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	stripecustomer "github.com/stripe/stripe-go/v82/customer"
	stripepaymentintent "github.com/stripe/stripe-go/v82/paymentintent"
	stripeprice "github.com/stripe/stripe-go/v82/price"
	stripeproduct "github.com/stripe/stripe-go/v82/product"
)

// Client wraps the Stripe API client with additional functionality
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config *Config) *Client {
	stripeapi.Key = config.APIKey

	return &Client{
		config: config,
	}
}

// GetPrice retrieves a price by ID
func (*Client) GetPrice(priceID string) (*stripeapi.Price, error) {
	params := &stripeapi.PriceParams{}
	price, err := stripeprice.Get(priceID, params)
	if err != nil {
		return nil, NewStripeError("api_call_failed", "failed to get price", err)
	}
	return price, nil
}

// GetProduct retrieves a product by ID with expanded default price
func (*Client) GetProduct(productID string) (*stripeapi.Product, error) {
	params := &stripeapi.ProductParams{}
	params.AddExpand("default_price")

	product, err := stripeproduct.Get(productID, params)
	if err != nil {
		return nil, NewStripeError("api_call_failed", "failed to get product", err)
	}
	return product, nil
}

// FirstActivePrice retrieves the first active price for a given product ID,
// in provider-returned order. Returns ErrNoActivePrice when the product has
// no active prices.
func (*Client) FirstActivePrice(productID string) (*stripeapi.Price, error) {
	params := &stripeapi.PriceListParams{
		Product: stripeapi.String(productID),
		Active:  stripeapi.Bool(true),
	}
	params.Filters.AddFilter("limit", "", "1")

	i := stripeprice.List(params)
	if i.Next() {
		return i.Price(), nil
	}
	if err := i.Err(); err != nil {
		return nil, NewStripeError("api_call_failed", "failed to list prices", err)
	}
	return nil, ErrNoActivePrice
}

// UpsertCustomer looks up a customer by exact email (limit 1) and updates its
// name and phone, or creates a new customer when none exists. Returns the
// customer ID, or an empty string when no email is given.
//
// The list-then-write sequence is not atomic: concurrent requests sharing an
// email may race and create duplicate customers. This is a known limitation
// of the Stripe API, which has no atomic upsert.
func (*Client) UpsertCustomer(email, name, phone string) (string, error) {
	if email == "" {
		return "", nil
	}

	listParams := &stripeapi.CustomerListParams{
		Email: stripeapi.String(email),
	}
	listParams.Filters.AddFilter("limit", "", "1")

	customers := stripecustomer.List(listParams)
	if customers.Next() {
		existing := customers.Customer()
		updated, err := stripecustomer.Update(existing.ID, &stripeapi.CustomerParams{
			Name:  stripeapi.String(name),
			Phone: stripeapi.String(phone),
		})
		if err != nil {
			return "", NewStripeError("api_call_failed", "failed to update customer", err)
		}
		return updated.ID, nil
	}
	if err := customers.Err(); err != nil {
		return "", NewStripeError("api_call_failed", "failed to list customers", err)
	}

	created, err := stripecustomer.New(&stripeapi.CustomerParams{
		Email: stripeapi.String(email),
		Name:  stripeapi.String(name),
		Phone: stripeapi.String(phone),
	})
	if err != nil {
		return "", NewStripeError("api_call_failed", "failed to create customer", err)
	}
	return created.ID, nil
}

// CheckoutParams holds parameters for creating a subscription checkout session
type CheckoutParams struct {
	PriceID    string
	CustomerID string
	Email      string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CreateCheckoutSession creates a new checkout session for a subscription.
// The session prefills the customer when one was upserted, otherwise falls
// back to prefilling the raw email and letting Stripe create the customer if
// required. The session ID placeholder is appended to the success URL so the
// front end can look the session up after the redirect.
// Overview of stripe checkout mechanics: https://docs.stripe.com/checkout/custom/quickstart
func (*Client) CreateCheckoutSession(params *CheckoutParams) (*stripeapi.CheckoutSession, error) {
	checkoutParams := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				Price:    stripeapi.String(params.PriceID),
				Quantity: stripeapi.Int64(1),
			},
		},
		CustomerCreation:    stripeapi.String(string(stripeapi.CheckoutSessionCustomerCreationIfRequired)),
		SuccessURL:          stripeapi.String(params.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:           stripeapi.String(params.CancelURL),
		AllowPromotionCodes: stripeapi.Bool(true),
	}
	checkoutParams.Metadata = params.Metadata

	if params.CustomerID != "" {
		checkoutParams.Customer = stripeapi.String(params.CustomerID)
	} else if params.Email != "" {
		checkoutParams.CustomerEmail = stripeapi.String(params.Email)
	}

	session, err := stripecheckoutsession.New(checkoutParams)
	if err != nil {
		return nil, NewStripeError("api_call_failed", "failed to create checkout session", err)
	}
	return session, nil
}

// IntentParams holds parameters for creating a one-time payment intent
type IntentParams struct {
	Amount     int64
	Currency   string
	CustomerID string
	Email      string
	Metadata   map[string]string
	// CardOnly restricts the intent to card payments, disabling Link and
	// wallets. When false, automatic payment methods are enabled.
	CardOnly bool
}

// CreatePaymentIntent creates a one-time payment intent and returns it with
// its client secret, used by the Payment Element on the client side.
func (*Client) CreatePaymentIntent(params *IntentParams) (*stripeapi.PaymentIntent, error) {
	piParams := &stripeapi.PaymentIntentParams{
		Amount:   stripeapi.Int64(params.Amount),
		Currency: stripeapi.String(params.Currency),
	}
	piParams.Metadata = params.Metadata

	if params.CustomerID != "" {
		piParams.Customer = stripeapi.String(params.CustomerID)
	}
	if params.Email != "" {
		piParams.ReceiptEmail = stripeapi.String(params.Email)
	}

	if params.CardOnly {
		piParams.PaymentMethodTypes = stripeapi.StringSlice([]string{"card"})
	} else {
		piParams.AutomaticPaymentMethods = &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripeapi.Bool(true),
		}
	}

	intent, err := stripepaymentintent.New(piParams)
	if err != nil {
		return nil, NewStripeError("api_call_failed", "failed to create payment intent", err)
	}
	return intent, nil
}
