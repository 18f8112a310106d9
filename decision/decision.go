// Package decision implements the no-interaction decision procedure that a
// consuming service must run when the backend answers an authorization
// call with action NO_INTERACTION: verify the end-user's login state,
// authentication age, subject and ACR against the decision document, then
// either build the issue request or name the failure reason.
//
// The package holds no state and performs no I/O; callers supply the
// current end-user through the Session interface and act on the returned
// Outcome by calling the client's Issue or Fail method.
package decision

import (
	"fmt"
	"slices"
	"time"

	authlane "github.com/authlane/authlane-go"
)

// Session describes the end-user's current authentication state as the
// consuming service knows it. Implementations are typically backed by the
// service's own session store.
type Session interface {
	// LoggedIn reports whether an end-user is currently authenticated.
	LoggedIn() bool

	// Subject returns the logged-in end-user's ID (ASCII, at most 100
	// characters). Only meaningful when LoggedIn is true.
	Subject() string

	// AuthTime returns when the end-user last actively authenticated.
	// ok is false when the service does not track authentication times.
	AuthTime() (t time.Time, ok bool)

	// ACR returns the authentication context class reference satisfied by
	// the current authentication, or "" when the service does not track
	// ACRs.
	ACR() string
}

// Outcome is the result of evaluating the procedure. Exactly one of Issue
// and FailReason is set.
type Outcome struct {
	// Issue is the request to send to the issue endpoint when every check
	// passed. Claims gathering is left to the caller.
	Issue *authlane.AuthorizationIssueRequest

	// FailReason names the check that failed, for the fail endpoint.
	FailReason authlane.FailReason
}

// Granted reports whether the evaluation ended in an issue request.
func (o *Outcome) Granted() bool {
	return o.Issue != nil
}

// Evaluate runs the documented no-interaction procedure against a decision
// document and the current session. The checks run in the documented
// order: login state, max authentication age, subject, ACR.
//
// now is the reference time for the max-age check; pass time.Now() outside
// of tests. Evaluate never modifies resp.
func Evaluate(resp *authlane.AuthorizationResponse, session Session, now time.Time) (*Outcome, error) {
	if resp == nil {
		return nil, fmt.Errorf("decision: nil authorization response")
	}
	if resp.Action != authlane.ActionNoInteraction {
		return nil, fmt.Errorf("decision: action %s is not NO_INTERACTION", resp.Action)
	}
	if session == nil {
		return nil, fmt.Errorf("decision: nil session")
	}

	if !session.LoggedIn() {
		return &Outcome{FailReason: authlane.FailReasonNotLoggedIn}, nil
	}

	authTime, authTimeKnown := session.AuthTime()
	if resp.MaxAge > 0 {
		if !authTimeKnown {
			return &Outcome{FailReason: authlane.FailReasonMaxAgeNotSupported}, nil
		}
		if authTime.Add(time.Duration(resp.MaxAge) * time.Second).Before(now) {
			return &Outcome{FailReason: authlane.FailReasonExceedsMaxAge}, nil
		}
	}

	if resp.Subject != "" && resp.Subject != session.Subject() {
		return &Outcome{FailReason: authlane.FailReasonDifferentSubject}, nil
	}

	acr := session.ACR()
	if resp.ACREssential && len(resp.ACRs) > 0 && !slices.Contains(resp.ACRs, acr) {
		return &Outcome{FailReason: authlane.FailReasonACRNotSatisfied}, nil
	}

	// The issue request carries the ACR actually performed, whether or not
	// it matched a non-essential request.
	issue := &authlane.AuthorizationIssueRequest{
		Ticket:  resp.Ticket,
		Subject: session.Subject(),
		ACR:     acr,
	}
	if authTimeKnown {
		issue.AuthTime = authTime.Unix()
	}
	return &Outcome{Issue: issue}, nil
}

// SatisfiesACR reports whether acr fulfils the decision document's ACR
// requirement: trivially true when no ACRs were requested or the
// requirement is not essential, otherwise acr must be listed.
func SatisfiesACR(resp *authlane.AuthorizationResponse, acr string) bool {
	if len(resp.ACRs) == 0 || !resp.ACREssential {
		return true
	}
	return slices.Contains(resp.ACRs, acr)
}
