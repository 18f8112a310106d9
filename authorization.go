package authlane

import (
	"fmt"
	"strings"
)

// AuthorizationResponse is the decision document returned by the backend's
// authorization endpoint. The consuming service reads Action and takes the
// matching step:
//
//   - INTERNAL_SERVER_ERROR: the call from the service was wrong or the
//     backend failed. Return 500 Internal Server Error to the client
//     application with ResponseContent (an error JSON) as the body.
//
//   - BAD_REQUEST: the authorization request was invalid and no usable
//     redirect URI is known. Return 400 Bad Request with ResponseContent
//     (an error JSON) as the body.
//
//   - LOCATION: the authorization request was invalid but the error can be
//     reported to the client's redirect URI. Return 302 Found with
//     ResponseContent as the Location header value.
//
//   - FORM: as LOCATION, but the request used response_mode=form_post.
//     Return 200 OK with ResponseContent (an HTML document) as the body,
//     content type text/html;charset=UTF-8.
//
//   - NO_INTERACTION: the request is valid and contains prompt=none, so no
//     UI may be shown. The service must run the following procedure (the
//     decision package implements it):
//
//     1. If no end-user is logged in, call the fail endpoint with reason
//     NOT_LOGGED_IN.
//     2. If MaxAge is non-zero: when the service does not track
//     authentication times, fail with MAX_AGE_NOT_SUPPORTED; when the last
//     authentication plus MaxAge seconds is before now, fail with
//     EXCEEDS_MAX_AGE.
//     3. If Subject is set and differs from the logged-in end-user's ID,
//     fail with DIFFERENT_SUBJECT.
//     4. If ACRs is non-empty and the ACR satisfied by the current
//     authentication is not among them: when ACREssential is true, fail
//     with ACR_NOT_SATISFIED; otherwise continue.
//     5. Call the issue endpoint with Ticket, the end-user's subject, the
//     authentication time, the satisfied ACR, and the gathered claim
//     values.
//
//   - INTERACTION: the request is valid and the service must display
//     authentication and consent UI, honoring Display, UILocales,
//     LowestPrompt, Subject or LoginHint for the login field, and the
//     requested Scopes. After the end-user grants or denies, call the
//     issue endpoint or the fail endpoint (reason DENIED) with Ticket.
//
// Error responses (the first four actions) must carry
// Cache-Control: no-store and Pragma: no-cache; WriteAuthorizationResponse
// handles this.
//
// Which fields are meaningful depends entirely on Action. Instances are
// produced by decoding the backend's JSON and are treated as read-only
// afterwards; no field is validated locally, that is the backend's job.
//
// The slice-valued fields keep the wire's three-way distinction: a nil
// slice decodes from (and encodes to) JSON null, an empty non-nil slice
// from []. Summarize and the decision package rely on it.
type AuthorizationResponse struct {
	Result

	// Action is the next step the service must take. See the type doc.
	Action Action `json:"action"`

	// Service is the service's own configuration record.
	Service *Service `json:"service,omitempty"`

	// Client describes the client application that made the request.
	Client *ClientApplication `json:"client,omitempty"`

	// Display is the requested UI display mode. The backend fills in PAGE
	// when the request carried no display parameter, and only emits values
	// the service declared support for.
	Display Display `json:"display,omitempty"`

	// MaxAge is the maximum allowable elapsed time in seconds since the
	// end-user last authenticated, from the max_age request parameter or
	// the client's default_max_age. Zero means no constraint.
	MaxAge int `json:"maxAge,omitempty"`

	// Scopes are the requested scopes, or the service's default scopes when
	// the request named none. Nil when the request carried no valid scopes
	// and no default is registered.
	Scopes []Scope `json:"scopes"`

	// UILocales lists preferred languages for the UI, ordered by
	// preference, from the ui_locales request parameter.
	UILocales []string `json:"uiLocales"`

	// ClaimsLocales lists preferred languages for claim values, from the
	// claims_locales request parameter.
	ClaimsLocales []string `json:"claimsLocales"`

	// Claims lists the claim names the client wants embedded in the ID
	// token, derived from the scope and claims request parameters.
	Claims []string `json:"claims"`

	// ACREssential reports whether the end-user authentication must satisfy
	// one of ACRs. True only when the claims request parameter marked the
	// acr claim as essential.
	ACREssential bool `json:"acrEssential,omitempty"`

	// ACRs lists the requested authentication context class references, in
	// preference order.
	ACRs []string `json:"acrs"`

	// Subject is the end-user ID the client expects authorization from,
	// taken from the sub entry of the claims request parameter. Usually
	// empty. The backend constrains it to at most 100 ASCII characters;
	// this library passes it through untouched.
	Subject string `json:"subject,omitempty"`

	// LoginHint is the login_hint request parameter, a hint for the login
	// UI's identifier field.
	LoginHint string `json:"loginHint,omitempty"`

	// LowestPrompt is the minimum interaction level the UI must satisfy.
	// CONSENT when the request carried no prompt parameter.
	LowestPrompt Prompt `json:"lowestPrompt,omitempty"`

	// ResponseContent is the payload for the response to the client
	// application. Its interpretation depends on Action: an error JSON
	// body, a redirect URI, or an HTML document.
	ResponseContent string `json:"responseContent,omitempty"`

	// Ticket correlates this response with the follow-up issue or fail
	// call. Opaque; valid for a short period only.
	Ticket string `json:"ticket,omitempty"`
}

const summaryFormat = "ticket=%s, action=%s, serviceNumber=%d, clientNumber=%d, " +
	"clientId=%d, clientSecret=%s, clientType=%s, developer=%s, display=%s, " +
	"maxAge=%d, scopes=%s, uiLocales=%s, claimsLocales=%s, claims=%s, " +
	"acrEssential=%t, acrs=%s, subject=%s, loginHint=%s, lowestPrompt=%s"

// absentMarker is what Summarize prints for fields the backend omitted.
// It matches the backend's own log format, which distinguishes an absent
// list (null) from an empty one (nothing between the commas).
const absentMarker = "null"

// Summarize returns a single-line rendering of the response for logs.
// It never fails, whichever fields are absent.
func (r *AuthorizationResponse) Summarize() string {
	var (
		serviceNumber int
		clientNumber  int
		clientID      int64
		clientSecret  = absentMarker
		clientType    = absentMarker
		developer     = absentMarker
	)
	if c := r.Client; c != nil {
		serviceNumber = c.ServiceNumber
		clientNumber = c.Number
		clientID = c.ClientID
		clientSecret = c.ClientSecret
		clientType = string(c.ClientType)
		developer = c.Developer
	}

	return fmt.Sprintf(summaryFormat,
		r.Ticket,
		r.Action,
		serviceNumber,
		clientNumber,
		clientID,
		clientSecret,
		clientType,
		developer,
		r.Display,
		r.MaxAge,
		joinScopeNames(r.Scopes),
		joinStrings(r.UILocales),
		joinStrings(r.ClaimsLocales),
		joinStrings(r.Claims),
		r.ACREssential,
		joinStrings(r.ACRs),
		r.Subject,
		r.LoginHint,
		r.LowestPrompt,
	)
}

// joinScopeNames joins scope names with single spaces, preserving order.
// A nil slice renders as the absent marker, an empty one as an empty string.
func joinScopeNames(scopes []Scope) string {
	if scopes == nil {
		return absentMarker
	}

	names := make([]string, len(scopes))
	for i, s := range scopes {
		names[i] = s.Name
	}
	return strings.Join(names, " ")
}

// joinStrings joins with single spaces under the same absent/empty rules
// as joinScopeNames.
func joinStrings(values []string) string {
	if values == nil {
		return absentMarker
	}
	return strings.Join(values, " ")
}
