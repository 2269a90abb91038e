package api

import (
	"net/http"
	"time"

	"github.com/framerpay/checkout-backend/api/apicommon"
	"github.com/framerpay/checkout-backend/errors"
)

// checkoutDebugHandler answers GET /checkout?debug=1 with the key probe
// (key presence, sk_test/sk_live prefix, server time and the link flag).
// A plain GET is not a supported verb on this endpoint.
func (a *API) checkoutDebugHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("debug") != "1" {
		errors.ErrMethodNotAllowed.Write(w)
		return
	}
	config := a.stripe.Config()
	linkDisabled := config.DisableLink
	apicommon.HTTPWriteJSON(w, &apicommon.DebugResponse{
		OK:           true,
		HasKey:       config.HasKey(),
		KeyPrefix:    config.KeyPrefix(),
		Time:         time.Now().UTC().Format(time.RFC3339),
		LinkDisabled: &linkDisabled,
	})
}

// keyProbeHandler answers GET on the intent and subscription endpoints with
// the minimal key probe.
func (a *API) keyProbeHandler(w http.ResponseWriter, _ *http.Request) {
	apicommon.HTTPWriteJSON(w, &apicommon.DebugResponse{
		OK:     true,
		HasKey: a.stripe.Config().HasKey(),
	})
}
