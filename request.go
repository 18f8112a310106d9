package authlane

// AuthorizationRequest is the request to the authorization endpoint. The
// consuming service forwards the client application's request parameters
// verbatim; the backend does the parsing and validation.
type AuthorizationRequest struct {
	// Parameters is the raw query or form body of the inbound OAuth
	// authorization request, application/x-www-form-urlencoded.
	Parameters string `json:"parameters"`
}

// AuthorizationIssueRequest asks the issue endpoint to mint an
// authorization code, ID token and/or access token for an authorization
// request the end-user approved (or that needed no interaction).
type AuthorizationIssueRequest struct {
	// Ticket is the correlation ticket from the AuthorizationResponse.
	Ticket string `json:"ticket"`

	// Subject identifies the authenticated end-user. ASCII, at most 100
	// characters. When the AuthorizationResponse carried a subject, this
	// must be identical to it. Embedded in the ID token's sub claim.
	Subject string `json:"subject"`

	// AuthTime is when the end-user authentication occurred, in seconds
	// since the Unix epoch. Embedded as the auth_time claim.
	AuthTime int64 `json:"authTime,omitempty"`

	// ACR is the authentication context class reference the performed
	// authentication satisfies. When the AuthorizationResponse listed ACRs
	// with ACREssential set, this must be one of them.
	ACR string `json:"acr,omitempty"`

	// Claims is a JSON object mapping the claim names the backend asked
	// for to their gathered values, e.g.
	// {"name":"John Smith","email":"john@example.com"}. Empty when no
	// claims were requested.
	Claims string `json:"claims,omitempty"`
}

// AuthorizationIssueResponse is the issue endpoint's reply. Action is one
// of INTERNAL_SERVER_ERROR, BAD_REQUEST, LOCATION or FORM and maps onto an
// HTTP response the same way as for AuthorizationResponse; on success it is
// LOCATION or FORM with the issued credentials encoded in ResponseContent.
type AuthorizationIssueResponse struct {
	Result

	Action          Action `json:"action"`
	ResponseContent string `json:"responseContent,omitempty"`
}

// AuthorizationFailRequest tells the fail endpoint that the authorization
// request cannot be honored and why, so the backend can build the proper
// error response for the client application.
type AuthorizationFailRequest struct {
	// Ticket is the correlation ticket from the AuthorizationResponse.
	Ticket string `json:"ticket"`

	// Reason is why the request failed.
	Reason FailReason `json:"reason"`
}

// AuthorizationFailResponse is the fail endpoint's reply, shaped like
// AuthorizationIssueResponse.
type AuthorizationFailResponse struct {
	Result

	Action          Action `json:"action"`
	ResponseContent string `json:"responseContent,omitempty"`
}
