// Package test provides helpers for the end-to-end tests of the gateway.
package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	stripeapi "github.com/stripe/stripe-go/v82"
)

// TestStripeKey is the secret key the mock installs for the test process.
const TestStripeKey = "sk_test_abcdef0123456789"

// StripeMock is an in-memory fake of the slice of the Stripe REST API the
// gateway touches: prices, products, customers, payment intents and checkout
// sessions. It is served over httptest and installed as the stripe-go
// backend, so the real SDK codepaths (form encoding, expandable fields,
// iterators, error decoding) are exercised against it.
type StripeMock struct {
	server *httptest.Server

	mtx              sync.Mutex
	prices           map[string]map[string]any
	priceOrder       []string
	products         map[string]map[string]any
	customers        map[string]map[string]any
	custOrder        []string
	nextCust         int
	priceListFailure string

	// Counters and captured forms for assertions.
	CreatedCustomers int
	UpdatedCustomers int
	CreatedIntents   int
	CreatedSessions  int
	LastIntentForm   url.Values
	LastSessionForm  url.Values
}

// NewStripeMock starts the fake server and points the stripe-go backend and
// key at it for the rest of the test process. The server is closed with the
// test.
func NewStripeMock(t *testing.T) *StripeMock {
	m := &StripeMock{
		prices:    map[string]map[string]any{},
		products:  map[string]map[string]any{},
		customers: map[string]map[string]any{},
	}
	m.server = httptest.NewServer(m)
	t.Cleanup(m.server.Close)

	stripeapi.Key = TestStripeKey
	backend := stripeapi.GetBackendWithConfig(stripeapi.APIBackend, &stripeapi.BackendConfig{
		URL: stripeapi.String(m.server.URL),
	})
	stripeapi.SetBackend(stripeapi.APIBackend, backend)
	return m
}

// URL returns the base URL of the fake server.
func (m *StripeMock) URL() string {
	return m.server.URL
}

// AddProduct seeds a product. defaultPriceID may be empty; when set, product
// retrievals embed the full price object, as the real API does under
// expand[]=default_price.
func (m *StripeMock) AddProduct(id, name, description string, images []string, defaultPriceID string) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	product := map[string]any{
		"id":          id,
		"object":      "product",
		"name":        name,
		"description": description,
		"images":      images,
	}
	if defaultPriceID != "" {
		product["default_price"] = defaultPriceID
	}
	m.products[id] = product
}

// AddOneTimePrice seeds an active one-time price.
func (m *StripeMock) AddOneTimePrice(id, productID string, amount int64, currency string) {
	m.addPrice(map[string]any{
		"id":          id,
		"object":      "price",
		"active":      true,
		"currency":    currency,
		"unit_amount": amount,
		"product":     productID,
		"type":        "one_time",
	})
}

// AddRecurringPrice seeds an active recurring price.
func (m *StripeMock) AddRecurringPrice(id, productID string, amount int64, currency, interval string, intervalCount int64) {
	m.addPrice(map[string]any{
		"id":          id,
		"object":      "price",
		"active":      true,
		"currency":    currency,
		"unit_amount": amount,
		"product":     productID,
		"type":        "recurring",
		"recurring": map[string]any{
			"interval":       interval,
			"interval_count": intervalCount,
		},
	})
}

// AddMeteredPrice seeds an active price without unit_amount, as metered or
// tiered prices come back from the API.
func (m *StripeMock) AddMeteredPrice(id, productID, currency string) {
	m.addPrice(map[string]any{
		"id":       id,
		"object":   "price",
		"active":   true,
		"currency": currency,
		"product":  productID,
		"type":     "recurring",
	})
}

func (m *StripeMock) addPrice(price map[string]any) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	id := price["id"].(string)
	if _, exists := m.prices[id]; !exists {
		m.priceOrder = append(m.priceOrder, id)
	}
	m.prices[id] = price
}

// SetPriceListFailure makes price listing fail with the given provider
// message until reset with an empty string.
func (m *StripeMock) SetPriceListFailure(message string) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.priceListFailure = message
}

// CustomerCount returns the number of customers currently stored.
func (m *StripeMock) CustomerCount() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.customers)
}

// ServeHTTP implements the fake REST surface.
func (m *StripeMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v1")
	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/prices/"):
		id := strings.TrimPrefix(path, "/prices/")
		price, ok := m.prices[id]
		if !ok {
			writeStripeError(w, http.StatusNotFound, fmt.Sprintf("No such price: '%s'", id))
			return
		}
		writeJSON(w, price)

	case r.Method == http.MethodGet && path == "/prices":
		if m.priceListFailure != "" {
			writeStripeError(w, http.StatusBadRequest, m.priceListFailure)
			return
		}
		productID := r.URL.Query().Get("product")
		data := []any{}
		for _, id := range m.priceOrder {
			price := m.prices[id]
			if price["product"] == productID && price["active"] == true {
				data = append(data, price)
			}
		}
		writeJSON(w, map[string]any{"object": "list", "data": data, "has_more": false, "url": "/v1/prices"})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/products/"):
		id := strings.TrimPrefix(path, "/products/")
		product, ok := m.products[id]
		if !ok {
			writeStripeError(w, http.StatusNotFound, fmt.Sprintf("No such product: '%s'", id))
			return
		}
		out := map[string]any{}
		for k, v := range product {
			out[k] = v
		}
		if priceID, ok := out["default_price"].(string); ok {
			if price, ok := m.prices[priceID]; ok {
				out["default_price"] = price
			}
		}
		writeJSON(w, out)

	case r.Method == http.MethodGet && path == "/customers":
		email := r.URL.Query().Get("email")
		data := []any{}
		for _, id := range m.custOrder {
			customer := m.customers[id]
			if customer["email"] == email {
				data = append(data, customer)
			}
		}
		writeJSON(w, map[string]any{"object": "list", "data": data, "has_more": false, "url": "/v1/customers"})

	case r.Method == http.MethodPost && path == "/customers":
		_ = r.ParseForm()
		m.nextCust++
		id := fmt.Sprintf("cus_mock%d", m.nextCust)
		m.customers[id] = map[string]any{
			"id":     id,
			"object": "customer",
			"email":  r.PostForm.Get("email"),
			"name":   r.PostForm.Get("name"),
			"phone":  r.PostForm.Get("phone"),
		}
		m.custOrder = append(m.custOrder, id)
		m.CreatedCustomers++
		writeJSON(w, m.customers[id])

	case r.Method == http.MethodPost && strings.HasPrefix(path, "/customers/"):
		id := strings.TrimPrefix(path, "/customers/")
		customer, ok := m.customers[id]
		if !ok {
			writeStripeError(w, http.StatusNotFound, fmt.Sprintf("No such customer: '%s'", id))
			return
		}
		_ = r.ParseForm()
		if r.PostForm.Has("name") {
			customer["name"] = r.PostForm.Get("name")
		}
		if r.PostForm.Has("phone") {
			customer["phone"] = r.PostForm.Get("phone")
		}
		m.UpdatedCustomers++
		writeJSON(w, customer)

	case r.Method == http.MethodPost && path == "/payment_intents":
		_ = r.ParseForm()
		m.LastIntentForm = r.PostForm
		m.CreatedIntents++
		writeJSON(w, map[string]any{
			"id":            "pi_mock1",
			"object":        "payment_intent",
			"amount":        jsonNumber(r.PostForm.Get("amount")),
			"currency":      r.PostForm.Get("currency"),
			"client_secret": "pi_mock1_secret_test",
			"status":        "requires_payment_method",
		})

	case r.Method == http.MethodPost && path == "/checkout/sessions":
		_ = r.ParseForm()
		m.LastSessionForm = r.PostForm
		m.CreatedSessions++
		writeJSON(w, map[string]any{
			"id":     "cs_test_mock1",
			"object": "checkout.session",
			"mode":   "subscription",
			"url":    "https://checkout.stripe.com/c/pay/cs_test_mock1",
		})

	default:
		writeStripeError(w, http.StatusNotFound, fmt.Sprintf("Unrecognized request URL (%s: %s)", r.Method, r.URL.Path))
	}
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeStripeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"type":    "invalid_request_error",
			"code":    "resource_missing",
			"message": message,
		},
	})
}

func jsonNumber(s string) json.Number {
	if s == "" {
		return "0"
	}
	return json.Number(s)
}
