package stripe

import (
	goerrors "errors"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v82"
)

// StripeError represents a Stripe-specific error
type StripeError struct {
	Code    string
	Message string
	Err     error
}

func (e *StripeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stripe error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stripe error [%s]: %s", e.Code, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// Common Stripe errors. Handlers match on Code to pick the right API error.
var (
	ErrNoActivePrice      = &StripeError{Code: "no_active_price", Message: "no active price found"}
	ErrPriceNotOneTime    = &StripeError{Code: "price_not_one_time", Message: "price lacks unit_amount or currency"}
	ErrPriceNotUnitAmount = &StripeError{Code: "price_not_unit_amount", Message: "price is not unit_amount-based"}
	ErrInvalidAmount      = &StripeError{Code: "invalid_amount", Message: "amount must be a positive integer"}
	ErrProductNotFound    = &StripeError{Code: "product_not_found", Message: "product not found"}
	ErrPriceNotFound      = &StripeError{Code: "price_not_found", Message: "price not found"}
	ErrAPICallFailed      = &StripeError{Code: "api_call_failed", Message: "stripe API call failed"}
)

// NewStripeError creates a new StripeError with the given code, message, and underlying error
func NewStripeError(code, message string, err error) *StripeError {
	return &StripeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorMessage extracts the human-readable message of a provider failure, so
// handlers can surface it verbatim. For Stripe API errors this is the Msg
// field (err.Error() on those is a JSON dump); anything else falls back to
// the plain error string.
func ErrorMessage(err error) string {
	var apiErr *stripeapi.Error
	if goerrors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	var serr *StripeError
	if goerrors.As(err, &serr) && serr.Err != nil {
		return ErrorMessage(serr.Err)
	}
	return err.Error()
}
