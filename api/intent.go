package api

import (
	"net/http"

	"github.com/framerpay/checkout-backend/api/apicommon"
	"github.com/framerpay/checkout-backend/stripe"
)

// createIntentHandler creates a one-time payment intent from a catalog price
// or a caller-supplied amount, and returns its client secret for client-side
// confirmation with the Payment Element.
func (a *API) createIntentHandler(w http.ResponseWriter, r *http.Request) {
	req := &apicommon.CreateIntentRequest{}
	if !decodeBody(w, r, req) {
		return
	}

	clientSecret, err := a.stripe.CreateIntent(&stripe.IntentInput{
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Amount:      req.Amount,
		Currency:    req.Currency,
		PriceID:     req.PriceID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
	})
	if err != nil {
		writeStripeError(w, err)
		return
	}

	apicommon.HTTPWriteJSON(w, &apicommon.CreateIntentResponse{ClientSecret: clientSecret})
}
