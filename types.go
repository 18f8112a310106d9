package authlane

// Action is the next step the consuming service must take after a call to
// the authorization endpoint. The backend serializes actions as upper-case
// snake strings; unknown future values survive a decode/encode round trip.
type Action string

const (
	// ActionInternalServerError means the request from the consuming service
	// was wrong or an error occurred inside the backend. Respond to the
	// client application with 500 Internal Server Error.
	ActionInternalServerError Action = "INTERNAL_SERVER_ERROR"

	// ActionBadRequest means the authorization request from the client
	// application was invalid. Respond with 400 Bad Request.
	ActionBadRequest Action = "BAD_REQUEST"

	// ActionLocation means the authorization request was invalid but the
	// redirect URI to report the error to has been determined. Respond with
	// 302 Found and a Location header.
	ActionLocation Action = "LOCATION"

	// ActionForm means the authorization request was invalid, the redirect
	// URI is known, and the request used response_mode=form_post. Respond
	// with 200 OK and an HTML body that triggers the redirection.
	ActionForm Action = "FORM"

	// ActionNoInteraction means the request is valid and contained
	// prompt=none: process it without showing any UI, following the
	// no-interaction decision procedure.
	ActionNoInteraction Action = "NO_INTERACTION"

	// ActionInteraction means the request is valid and the service must
	// display authentication and consent UI to the end-user.
	ActionInteraction Action = "INTERACTION"
)

// Display is the UI display mode requested by the client application via
// the display request parameter (OpenID Connect Core 1.0, section 3.1.2.1).
type Display string

const (
	// DisplayPage is the default when the request carries no display parameter.
	DisplayPage  Display = "PAGE"
	DisplayPopup Display = "POPUP"
	DisplayTouch Display = "TOUCH"
	DisplayWap   Display = "WAP"
)

// Prompt is the minimum level of interaction the UI shown to the end-user
// must satisfy, derived from the prompt request parameter.
type Prompt string

const (
	PromptLogin Prompt = "LOGIN"
	// PromptConsent is the default when the request carries no prompt parameter.
	PromptConsent       Prompt = "CONSENT"
	PromptSelectAccount Prompt = "SELECT_ACCOUNT"
)

// FailReason tells the fail endpoint why the consuming service could not
// complete the authorization request.
type FailReason string

const (
	FailReasonUnknown            FailReason = "UNKNOWN"
	FailReasonNotLoggedIn        FailReason = "NOT_LOGGED_IN"
	FailReasonMaxAgeNotSupported FailReason = "MAX_AGE_NOT_SUPPORTED"
	FailReasonExceedsMaxAge      FailReason = "EXCEEDS_MAX_AGE"
	FailReasonDifferentSubject   FailReason = "DIFFERENT_SUBJECT"
	FailReasonACRNotSatisfied    FailReason = "ACR_NOT_SATISFIED"
	FailReasonDenied             FailReason = "DENIED"
	FailReasonServerError        FailReason = "SERVER_ERROR"
)

// ClientType distinguishes confidential from public client applications
// (RFC 6749, section 2.1).
type ClientType string

const (
	ClientTypePublic       ClientType = "PUBLIC"
	ClientTypeConfidential ClientType = "CONFIDENTIAL"
)

// Scope is a named permission registered for the service.
type Scope struct {
	// Name is the scope name as it appears in the scope request parameter.
	Name string `json:"name"`

	// Description is the human-readable description shown on consent UI.
	Description string `json:"description,omitempty"`

	// DefaultEntry marks scopes that apply when a request names none.
	DefaultEntry bool `json:"defaultEntry,omitempty"`
}

// ClientApplication describes the client application that made the
// authorization request, as registered with the backend.
type ClientApplication struct {
	// ServiceNumber is the backend-assigned number of the owning service.
	ServiceNumber int `json:"serviceNumber,omitempty"`

	// Number is the backend-assigned sequential number of this client.
	Number int `json:"number,omitempty"`

	// ClientID is the client identifier issued to the application.
	ClientID int64 `json:"clientId,omitempty"`

	// ClientSecret is the client secret. Present only for confidential
	// clients.
	ClientSecret string `json:"clientSecret,omitempty"`

	// ClientType is PUBLIC or CONFIDENTIAL.
	ClientType ClientType `json:"clientType,omitempty"`

	// Developer identifies the developer account the client belongs to.
	Developer string `json:"developer,omitempty"`

	// ClientName is the display name shown to end-users on consent UI.
	ClientName string `json:"clientName,omitempty"`

	// RedirectURIs lists the registered redirection endpoints.
	RedirectURIs []string `json:"redirectUris,omitempty"`
}

// Service describes the consuming service's own configuration record.
type Service struct {
	// Number is the backend-assigned number of the service.
	Number int `json:"number,omitempty"`

	// ServiceName is the display name of the service.
	ServiceName string `json:"serviceName,omitempty"`

	// Issuer is the issuer identifier used in tokens minted for the service.
	Issuer string `json:"issuer,omitempty"`

	// SupportedScopes lists the scopes registered for the service.
	SupportedScopes []Scope `json:"supportedScopes,omitempty"`
}

// Result is the envelope every backend response carries. Response types
// embed it rather than inheriting from a shared base.
type Result struct {
	// ResultCode is the backend's machine-readable result code.
	ResultCode string `json:"resultCode,omitempty"`

	// ResultMessage is a short human-readable description of the result.
	ResultMessage string `json:"resultMessage,omitempty"`
}
