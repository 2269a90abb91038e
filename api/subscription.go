package api

import (
	"net/http"

	"github.com/framerpay/checkout-backend/api/apicommon"
	"github.com/framerpay/checkout-backend/errors"
	"github.com/framerpay/checkout-backend/stripe"
)

// createSubscriptionHandler creates a subscription checkout session from an
// explicit recurring price ID and returns the hosted session URL.
func (a *API) createSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	req := &apicommon.CreateSubscriptionRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	if req.PriceID == "" {
		errors.ErrMissingPriceID.Write(w)
		return
	}

	url, err := a.stripe.CreateSubscription(&stripe.SubscriptionInput{
		PriceID:    req.PriceID,
		Email:      req.Email,
		Name:       req.Name,
		Phone:      req.Phone,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		writeStripeError(w, err)
		return
	}

	apicommon.HTTPWriteJSON(w, &apicommon.CreateSubscriptionResponse{URL: url})
}
