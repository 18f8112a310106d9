// Package authlane is a client library for the Authlane authorization
// backend, a hosted service that evaluates OAuth 2.0 / OpenID Connect
// authorization requests on behalf of a consuming service.
//
// The consuming service forwards each inbound authorization request to the
// backend with Client.Authorize and receives an AuthorizationResponse, a
// decision document whose Action field says what to do next: answer the
// client application directly (WriteAuthorizationResponse), run the
// no-interaction procedure (the decision package), or display
// authentication and consent UI and then settle the request with
// Client.Issue or Client.Fail using the response's correlation ticket.
//
// Interactive flows that span several HTTP exchanges can stash the pending
// decision document keyed by ticket in a storage.TicketStore; in-memory
// and Valkey backends are provided.
package authlane
