package authlane

import (
	"fmt"
	"net/http"
)

// Content types used when answering the client application.
const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html;charset=UTF-8"
)

// WriteAuthorizationResponse maps an authorization decision onto the HTTP
// response to the client application, for the four actions that translate
// directly. NO_INTERACTION and INTERACTION return an error: the service
// must run the decision procedure or display UI first, and answer with the
// issue or fail endpoint's result via WriteResult.
func WriteAuthorizationResponse(w http.ResponseWriter, r *AuthorizationResponse) error {
	if r == nil {
		return fmt.Errorf("authlane: nil authorization response")
	}
	switch r.Action {
	case ActionNoInteraction, ActionInteraction:
		return fmt.Errorf("authlane: action %s requires processing before a response can be written", r.Action)
	}
	return WriteResult(w, r.Action, r.ResponseContent)
}

// WriteResult writes the HTTP response a terminal action prescribes:
//
//	INTERNAL_SERVER_ERROR  500, JSON body
//	BAD_REQUEST            400, JSON body
//	LOCATION               302, Location header
//	FORM                   200, HTML body
//
// Every response carries Cache-Control: no-store and Pragma: no-cache, as
// RFC 6749 requires for authorization responses. Issue and fail endpoint
// results use the same mapping.
func WriteResult(w http.ResponseWriter, action Action, responseContent string) error {
	h := w.Header()
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")

	switch action {
	case ActionInternalServerError:
		h.Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
	case ActionBadRequest:
		h.Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusBadRequest)
	case ActionLocation:
		h.Set("Location", responseContent)
		w.WriteHeader(http.StatusFound)
		return nil
	case ActionForm:
		h.Set("Content-Type", contentTypeHTML)
		w.WriteHeader(http.StatusOK)
	default:
		return fmt.Errorf("authlane: unexpected action %q", action)
	}

	if responseContent != "" {
		if _, err := w.Write([]byte(responseContent)); err != nil {
			return fmt.Errorf("authlane: failed to write response body: %w", err)
		}
	}
	return nil
}
