package api

import (
	"encoding/json"
	goerrors "errors"
	"io"
	"net/http"

	"github.com/framerpay/checkout-backend/errors"
	"github.com/framerpay/checkout-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

// decodeBody decodes a JSON request body into dst. An empty body is accepted
// and leaves dst zero-valued, mirroring the `req.body || {}` behavior the
// clients rely on. Returns false after writing an error response when the
// body is present but malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !goerrors.Is(err, io.EOF) {
		errors.ErrMalformedBody.Write(w)
		return false
	}
	return true
}

// writeStripeError maps a failure coming out of the stripe service to the
// proper API error. Flow-validation failures keep their fixed messages;
// provider call failures are surfaced as 400 with the provider's own message
// untouched.
func writeStripeError(w http.ResponseWriter, err error) {
	var serr *stripe.StripeError
	if goerrors.As(err, &serr) {
		switch serr.Code {
		case stripe.ErrNoActivePrice.Code:
			errors.ErrNoActivePrice.Write(w)
			return
		case stripe.ErrPriceNotOneTime.Code:
			errors.ErrPriceNotOneTime.Write(w)
			return
		case stripe.ErrPriceNotUnitAmount.Code:
			errors.ErrPriceNotUnitAmount.Write(w)
			return
		case stripe.ErrInvalidAmount.Code:
			errors.ErrInvalidAmount.Write(w)
			return
		case stripe.ErrProductNotFound.Code:
			errors.ErrProductNotFound.Write(w)
			return
		case stripe.ErrPriceNotFound.Code:
			errors.ErrPriceNotFound.Write(w)
			return
		}
	}
	log.Debugf("stripe call failed: %v", err)
	errors.ErrStripeError.Verbatim(stripe.ErrorMessage(err)).Write(w)
}
