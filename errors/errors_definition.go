//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400, 404 or 405, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX.
// If you notice there's a gap, DON'T fill it in, that code belonged to a removed error and shouldn't be reused.
// There's no correlation between Code and HTTP Status.
var (
	// Validation errors (400)
	ErrMalformedBody         = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMissingPriceOrProduct = Error{Code: 40002, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("Provide priceId or productId")}
	ErrMissingProductOrPrice = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("Provide productId or priceId")}
	ErrMissingPriceID        = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("Missing priceId")}
	ErrNoActivePrice         = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("No active price found")}
	ErrPriceNotOneTime       = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("Price must have unit_amount and currency")}
	ErrPriceNotUnitAmount    = Error{Code: 40007, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("Price must be unit_amount-based (not metered/tiered)")}
	ErrInvalidAmount         = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("Invalid amount")}

	// Upstream provider errors (400): the provider's message is appended verbatim with With/WithErr
	ErrStripeError = Error{Code: 40009, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("stripe error")}

	// Not found errors (404), used by the product reader only
	ErrProductNotFound = Error{Code: 40010, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("Product not found")}
	ErrPriceNotFound   = Error{Code: 40011, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("Price not found for this product")}

	// Method errors (405)
	ErrMethodNotAllowed = Error{Code: 40012, HTTPstatus: http.StatusMethodNotAllowed, Err: fmt.Errorf("Method not allowed")}

	// Server errors (500)
	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)
