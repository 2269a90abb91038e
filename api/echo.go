package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/framerpay/checkout-backend/api/apicommon"
)

// echoHandler reflects the request back to the caller: method, URL, raw body,
// the body parsed as JSON when possible, and the server timestamp. It is used
// for connectivity testing only and has no side effects.
func (a *API) echoHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		raw = nil
	}

	var rawBody *string
	if len(raw) > 0 {
		body := string(raw)
		rawBody = &body
	}

	apicommon.HTTPWriteJSON(w, &apicommon.EchoResponse{
		OK:       true,
		Method:   r.Method,
		URL:      r.RequestURI,
		RawBody:  rawBody,
		JSONBody: parseJSONBody(raw),
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
}

// parseJSONBody attempts to parse raw as JSON. Failure is not an error for
// the echo endpoint: an unparsable or empty body yields a null jsonBody.
func parseJSONBody(raw []byte) json.RawMessage {
	if len(raw) == 0 || !json.Valid(raw) {
		return nil
	}
	return json.RawMessage(raw)
}
