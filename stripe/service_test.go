package stripe_test

import (
	"errors"
	"os"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/framerpay/checkout-backend/stripe"
	"github.com/framerpay/checkout-backend/test"
	"go.vocdoni.io/dvote/log"
)

func TestMain(m *testing.M) {
	log.Init("debug", "stdout", nil)
	os.Exit(m.Run())
}

func testService(t *testing.T) (*stripe.Service, *test.StripeMock) {
	mock := test.NewStripeMock(t)
	service := stripe.NewService(&stripe.Config{
		APIKey:     test.TestStripeKey,
		SuccessURL: "https://site.test/success",
		CancelURL:  "https://site.test/cancel",
		ReturnURL:  "https://site.test/thank-you",
	})
	return service, mock
}

func TestResolvePrice(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddOneTimePrice("price_direct", "prod_a", 1999, "usd")
	mock.AddOneTimePrice("price_default", "prod_b", 500, "usd")
	mock.AddProduct("prod_b", "With Default", "", nil, "price_default")
	mock.AddOneTimePrice("price_listed", "prod_c", 700, "usd")
	mock.AddProduct("prod_c", "Without Default", "", nil, "")
	mock.AddProduct("prod_d", "No Prices", "", nil, "")

	c.Run("price id wins over product id", func(c *qt.C) {
		price, err := service.ResolvePrice("price_direct", "prod_b")
		c.Assert(err, qt.IsNil)
		c.Assert(price.ID, qt.Equals, "price_direct")
	})

	c.Run("product resolves to its default price", func(c *qt.C) {
		price, err := service.ResolvePrice("", "prod_b")
		c.Assert(err, qt.IsNil)
		c.Assert(price.ID, qt.Equals, "price_default")
	})

	c.Run("product without default falls back to first active price", func(c *qt.C) {
		price, err := service.ResolvePrice("", "prod_c")
		c.Assert(err, qt.IsNil)
		c.Assert(price.ID, qt.Equals, "price_listed")
	})

	c.Run("product with no prices", func(c *qt.C) {
		_, err := service.ResolvePrice("", "prod_d")
		c.Assert(errors.Is(err, stripe.ErrNoActivePrice), qt.IsTrue)
	})

	c.Run("unknown price id surfaces the provider error", func(c *qt.C) {
		_, err := service.ResolvePrice("price_missing", "")
		c.Assert(err, qt.IsNotNil)
		c.Assert(stripe.ErrorMessage(err), qt.Equals, "No such price: 'price_missing'")
	})
}

func TestCheckoutSubscriptionMode(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddRecurringPrice("price_sub", "prod_sub", 900, "usd", "month", 1)

	result, err := service.Checkout(&stripe.CheckoutInput{
		PriceID: "price_sub",
		Email:   "jo@example.com",
		Name:    "Jo",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(result.Mode, qt.Equals, "subscription")
	c.Assert(result.URL, qt.Equals, "https://checkout.stripe.com/c/pay/cs_test_mock1")
	c.Assert(result.ClientSecret, qt.Equals, "")
	c.Assert(result.Summary.Type, qt.Equals, "recurring")
	c.Assert(result.Summary.Interval, qt.Not(qt.IsNil))
	c.Assert(*result.Summary.Interval, qt.Equals, "month")

	c.Assert(mock.CreatedSessions, qt.Equals, 1)
	c.Assert(mock.CreatedIntents, qt.Equals, 0)
	form := mock.LastSessionForm
	c.Assert(form.Get("mode"), qt.Equals, "subscription")
	c.Assert(form.Get("line_items[0][price]"), qt.Equals, "price_sub")
	c.Assert(form.Get("line_items[0][quantity]"), qt.Equals, "1")
	c.Assert(form.Get("success_url"), qt.Equals, "https://site.test/success?session_id={CHECKOUT_SESSION_ID}")
	c.Assert(form.Get("cancel_url"), qt.Equals, "https://site.test/cancel")
	c.Assert(form.Get("allow_promotion_codes"), qt.Equals, "true")
	c.Assert(form.Get("metadata[source]"), qt.Equals, "framer")
	c.Assert(form.Get("metadata[priceId]"), qt.Equals, "price_sub")
	// the upserted customer is attached, not the raw email
	c.Assert(form.Get("customer"), qt.Equals, "cus_mock1")
	c.Assert(form.Get("customer_email"), qt.Equals, "")
}

func TestCheckoutPaymentMode(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddOneTimePrice("price_once", "prod_once", 1999, "eur")

	result, err := service.Checkout(&stripe.CheckoutInput{
		PriceID: "price_once",
		Email:   "jo@example.com",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(result.Mode, qt.Equals, "payment")
	c.Assert(result.ClientSecret, qt.Equals, "pi_mock1_secret_test")
	c.Assert(result.URL, qt.Equals, "")
	c.Assert(result.ReturnURL, qt.Equals, "https://site.test/thank-you")
	c.Assert(result.Summary.Type, qt.Equals, "one_time")
	c.Assert(result.Summary.Interval, qt.IsNil)
	c.Assert(result.Summary.IntervalCount, qt.IsNil)

	c.Assert(mock.CreatedIntents, qt.Equals, 1)
	c.Assert(mock.CreatedSessions, qt.Equals, 0)
	form := mock.LastIntentForm
	c.Assert(form.Get("amount"), qt.Equals, "1999")
	c.Assert(form.Get("currency"), qt.Equals, "eur")
	c.Assert(form.Get("receipt_email"), qt.Equals, "jo@example.com")
	c.Assert(form.Get("metadata[source]"), qt.Equals, "framer")
	c.Assert(form.Get("automatic_payment_methods[enabled]"), qt.Equals, "true")
	c.Assert(form.Get("payment_method_types[0]"), qt.Equals, "")
}

func TestCheckoutLinkDisabled(t *testing.T) {
	c := qt.New(t)
	mock := test.NewStripeMock(t)
	service := stripe.NewService(&stripe.Config{
		APIKey:      test.TestStripeKey,
		ReturnURL:   "https://site.test/thank-you",
		DisableLink: true,
	})

	mock.AddOneTimePrice("price_once", "prod_once", 1999, "usd")

	_, err := service.Checkout(&stripe.CheckoutInput{PriceID: "price_once"})
	c.Assert(err, qt.IsNil)
	form := mock.LastIntentForm
	c.Assert(form.Get("payment_method_types[0]"), qt.Equals, "card")
	c.Assert(form.Get("automatic_payment_methods[enabled]"), qt.Equals, "")
}

func TestCheckoutRejectsNonUnitAmountPrice(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddMeteredPrice("price_metered", "prod_m", "usd")

	_, err := service.Checkout(&stripe.CheckoutInput{PriceID: "price_metered"})
	c.Assert(errors.Is(err, stripe.ErrPriceNotOneTime), qt.IsTrue)
	// no provider write happened
	c.Assert(mock.CreatedIntents, qt.Equals, 0)
	c.Assert(mock.CreatedSessions, qt.Equals, 0)
}

func TestCheckoutCustomerUpsert(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddOneTimePrice("price_once", "prod_once", 1999, "usd")

	input := &stripe.CheckoutInput{PriceID: "price_once", Email: "jo@example.com", Name: "Jo"}
	_, err := service.Checkout(input)
	c.Assert(err, qt.IsNil)
	input.Name = "Joanna"
	_, err = service.Checkout(input)
	c.Assert(err, qt.IsNil)

	// second checkout with the same email updates, never duplicates
	c.Assert(mock.CustomerCount(), qt.Equals, 1)
	c.Assert(mock.CreatedCustomers, qt.Equals, 1)
	c.Assert(mock.UpdatedCustomers, qt.Equals, 1)

	// without an email the intent carries no customer at all
	_, err = service.Checkout(&stripe.CheckoutInput{PriceID: "price_once"})
	c.Assert(err, qt.IsNil)
	c.Assert(mock.CustomerCount(), qt.Equals, 1)
	c.Assert(mock.LastIntentForm.Get("customer"), qt.Equals, "")
}

func TestCreateIntent(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddOneTimePrice("price_once", "prod_once", 2500, "eur")
	mock.AddMeteredPrice("price_metered", "prod_m", "usd")

	c.Run("price id overrides caller amount", func(c *qt.C) {
		secret, err := service.CreateIntent(&stripe.IntentInput{
			PriceID:  "price_once",
			Amount:   999,
			Currency: "usd",
		})
		c.Assert(err, qt.IsNil)
		c.Assert(secret, qt.Equals, "pi_mock1_secret_test")
		c.Assert(mock.LastIntentForm.Get("amount"), qt.Equals, "2500")
		c.Assert(mock.LastIntentForm.Get("currency"), qt.Equals, "eur")
		c.Assert(mock.LastIntentForm.Get("metadata[source]"), qt.Equals, "framer-payment-element")
	})

	c.Run("raw amount with normalized currency", func(c *qt.C) {
		_, err := service.CreateIntent(&stripe.IntentInput{Amount: 1500, Currency: "EUR"})
		c.Assert(err, qt.IsNil)
		c.Assert(mock.LastIntentForm.Get("amount"), qt.Equals, "1500")
		c.Assert(mock.LastIntentForm.Get("currency"), qt.Equals, "eur")
	})

	c.Run("currency defaults to usd", func(c *qt.C) {
		_, err := service.CreateIntent(&stripe.IntentInput{Amount: 1500})
		c.Assert(err, qt.IsNil)
		c.Assert(mock.LastIntentForm.Get("currency"), qt.Equals, "usd")
	})

	c.Run("metered price is rejected", func(c *qt.C) {
		_, err := service.CreateIntent(&stripe.IntentInput{PriceID: "price_metered"})
		c.Assert(errors.Is(err, stripe.ErrPriceNotUnitAmount), qt.IsTrue)
	})

	c.Run("missing amount is rejected", func(c *qt.C) {
		_, err := service.CreateIntent(&stripe.IntentInput{Email: "jo@example.com"})
		c.Assert(errors.Is(err, stripe.ErrInvalidAmount), qt.IsTrue)
	})
}

func TestCreateSubscription(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddRecurringPrice("price_sub", "prod_sub", 900, "usd", "month", 1)

	url, err := service.CreateSubscription(&stripe.SubscriptionInput{
		PriceID: "price_sub",
		Email:   "jo@example.com",
	})
	c.Assert(err, qt.IsNil)
	c.Assert(url, qt.Equals, "https://checkout.stripe.com/c/pay/cs_test_mock1")
	form := mock.LastSessionForm
	c.Assert(form.Get("metadata[source]"), qt.Equals, "framer-subscription")
	c.Assert(form.Get("success_url"), qt.Equals, "https://site.test/success?session_id={CHECKOUT_SESSION_ID}")
}

func TestProductDisplayResolution(t *testing.T) {
	c := qt.New(t)
	service, mock := testService(t)

	mock.AddRecurringPrice("price_sub", "prod_a", 900, "usd", "month", 1)
	mock.AddProduct("prod_a", "Pro Plan", "Everything included", []string{"https://img.example/a.png"}, "price_sub")
	mock.AddProduct("prod_b", "No Prices", "", nil, "")

	c.Run("by product id", func(c *qt.C) {
		display, err := service.ProductDisplay("prod_a", "")
		c.Assert(err, qt.IsNil)
		c.Assert(display.Product.Name, qt.Equals, "Pro Plan")
		c.Assert(display.Price.ID, qt.Equals, "price_sub")
		c.Assert(display.Computed.CurrencyAmount.Formatted, qt.Equals, "$9.00")
		c.Assert(display.Computed.CurrencyAmount.Recurring.Label, qt.Equals, "per month")
	})

	c.Run("by price id resolves the owning product", func(c *qt.C) {
		display, err := service.ProductDisplay("", "price_sub")
		c.Assert(err, qt.IsNil)
		c.Assert(display.Product.ID, qt.Equals, "prod_a")
		c.Assert(display.Price.ID, qt.Equals, "price_sub")
	})

	c.Run("product with no prices", func(c *qt.C) {
		_, err := service.ProductDisplay("prod_b", "")
		c.Assert(errors.Is(err, stripe.ErrPriceNotFound), qt.IsTrue)
	})

	c.Run("listing failure is not a missing price", func(c *qt.C) {
		mock.SetPriceListFailure("Invalid API Key provided")
		defer mock.SetPriceListFailure("")
		_, err := service.ProductDisplay("prod_b", "")
		c.Assert(err, qt.IsNotNil)
		c.Assert(errors.Is(err, stripe.ErrPriceNotFound), qt.IsFalse)
		c.Assert(stripe.ErrorMessage(err), qt.Equals, "Invalid API Key provided")
	})

	c.Run("unknown product", func(c *qt.C) {
		_, err := service.ProductDisplay("prod_missing", "")
		c.Assert(err, qt.IsNotNil)
		c.Assert(stripe.ErrorMessage(err), qt.Equals, "No such product: 'prod_missing'")
	})
}
