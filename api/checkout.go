package api

import (
	"net/http"

	"github.com/framerpay/checkout-backend/api/apicommon"
	"github.com/framerpay/checkout-backend/errors"
	"github.com/framerpay/checkout-backend/stripe"
)

// checkoutHandler resolves a price from the request (by price ID or by the
// product's default/first-active price), upserts the customer when an email
// is given, and starts either a subscription checkout session or a one-time
// payment intent depending on the price type.
func (a *API) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	req := &apicommon.CheckoutRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	if req.PriceID == "" && req.ProductID == "" {
		errors.ErrMissingPriceOrProduct.Write(w)
		return
	}

	result, err := a.stripe.Checkout(&stripe.CheckoutInput{
		PriceID:    req.PriceID,
		ProductID:  req.ProductID,
		Email:      req.Email,
		Name:       req.Name,
		Phone:      req.Phone,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
		ReturnURL:  req.ReturnURL,
	})
	if err != nil {
		writeStripeError(w, err)
		return
	}

	apicommon.HTTPWriteJSON(w, &apicommon.CheckoutResponse{
		Mode:         result.Mode,
		URL:          result.URL,
		ClientSecret: result.ClientSecret,
		ReturnURL:    result.ReturnURL,
		PriceSummary: result.Summary,
	})
}
