// Package api provides the HTTP API of the checkout gateway: a small set of
// JSON endpoints fronting Stripe for no-code site checkouts. Every endpoint
// is stateless; each request is one short sequence of provider calls and a
// single JSON response.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/framerpay/checkout-backend/errors"
	"github.com/framerpay/checkout-backend/stripe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.vocdoni.io/dvote/log"
)

// Config holds the API server configuration.
type Config struct {
	Host string
	Port int
	// CORSOrigin is the allowed CORS origin, "*" by default.
	CORSOrigin string
	// Stripe is the payment service all handlers delegate to.
	Stripe *stripe.Service
}

// API type represents the API HTTP server.
type API struct {
	host       string
	port       int
	corsOrigin string
	stripe     *stripe.Service
	router     *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	corsOrigin := conf.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &API{
		host:       conf.Host,
		port:       conf.Port,
		corsOrigin: corsOrigin,
		stripe:     conf.Stripe,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{a.corsOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		errors.ErrMethodNotAllowed.Write(w)
	})

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(".")); err != nil {
			log.Warnw("failed to write ping response", "error", err)
		}
	})
	// resolve a price and start a payment or a subscription
	log.Infow("new route", "method", "POST", "path", checkoutEndpoint)
	r.Post(checkoutEndpoint, a.checkoutHandler)
	// checkout key probe (?debug=1)
	log.Infow("new route", "method", "GET", "path", checkoutEndpoint)
	r.Get(checkoutEndpoint, a.checkoutDebugHandler)
	// create a one-time payment intent
	log.Infow("new route", "method", "POST", "path", createIntentEndpoint)
	r.Post(createIntentEndpoint, a.createIntentHandler)
	// intent key probe
	log.Infow("new route", "method", "GET", "path", createIntentEndpoint)
	r.Get(createIntentEndpoint, a.keyProbeHandler)
	// create a subscription checkout session
	log.Infow("new route", "method", "POST", "path", createSubscriptionEndpoint)
	r.Post(createSubscriptionEndpoint, a.createSubscriptionHandler)
	// subscription key probe
	log.Infow("new route", "method", "GET", "path", createSubscriptionEndpoint)
	r.Get(createSubscriptionEndpoint, a.keyProbeHandler)
	// product and price summary, input from body
	log.Infow("new route", "method", "POST", "path", productEndpoint)
	r.Post(productEndpoint, a.productHandler)
	// product and price summary, input from query string (also ?debug=1 probe)
	log.Infow("new route", "method", "GET", "path", productEndpoint)
	r.Get(productEndpoint, a.productQueryHandler)
	// request reflection for connectivity testing, any method
	log.Infow("new route", "method", "ANY", "path", echoEndpoint)
	r.HandleFunc(echoEndpoint, a.echoHandler)

	a.router = r
	return r
}
