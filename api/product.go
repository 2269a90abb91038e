package api

import (
	"net/http"

	"github.com/framerpay/checkout-backend/api/apicommon"
	"github.com/framerpay/checkout-backend/errors"
)

// productHandler resolves a product and its price from the request body and
// returns the display payload with the computed currency and cadence labels.
func (a *API) productHandler(w http.ResponseWriter, r *http.Request) {
	req := &apicommon.ProductRequest{}
	if !decodeBody(w, r, req) {
		return
	}
	a.writeProductDisplay(w, req)
}

// productQueryHandler is the GET variant of the product reader: input comes
// from the query string, and ?debug=1 turns the request into a key probe.
func (a *API) productQueryHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("debug") == "1" {
		config := a.stripe.Config()
		apicommon.HTTPWriteJSON(w, &apicommon.DebugResponse{
			OK:        true,
			HasKey:    config.HasKey(),
			KeyPrefix: config.KeyPrefix(),
		})
		return
	}
	a.writeProductDisplay(w, &apicommon.ProductRequest{
		ProductID: query.Get("productId"),
		PriceID:   query.Get("priceId"),
	})
}

func (a *API) writeProductDisplay(w http.ResponseWriter, req *apicommon.ProductRequest) {
	if req.ProductID == "" && req.PriceID == "" {
		errors.ErrMissingProductOrPrice.Write(w)
		return
	}

	display, err := a.stripe.ProductDisplay(req.ProductID, req.PriceID)
	if err != nil {
		writeStripeError(w, err)
		return
	}

	apicommon.HTTPWriteJSON(w, &apicommon.ProductResponse{
		OK:       true,
		Product:  display.Product,
		Price:    display.Price,
		Computed: display.Computed,
	})
}
