package authlane

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAuthorizationResponse_Summarize_JoinSemantics(t *testing.T) {
	tests := []struct {
		name   string
		scopes []Scope
		want   string
	}{
		{
			name:   "populated scopes join by single space in order",
			scopes: []Scope{{Name: "a"}, {Name: "b"}},
			want:   "scopes=a b,",
		},
		{
			name:   "empty scopes render as empty string",
			scopes: []Scope{},
			want:   "scopes=,",
		},
		{
			name:   "absent scopes render as null",
			scopes: nil,
			want:   "scopes=null,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &AuthorizationResponse{Scopes: tt.scopes}
			got := r.Summarize()
			if !strings.Contains(got, tt.want) {
				t.Errorf("Summarize() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestAuthorizationResponse_Summarize_LocalesPreserveOrder(t *testing.T) {
	r := &AuthorizationResponse{UILocales: []string{"fr-CA", "en"}}
	got := r.Summarize()
	if !strings.Contains(got, "uiLocales=fr-CA en,") {
		t.Errorf("Summarize() = %q, want uiLocales=fr-CA en", got)
	}
}

func TestAuthorizationResponse_Summarize_TotalWithAllFieldsAbsent(t *testing.T) {
	r := &AuthorizationResponse{}
	got := r.Summarize()

	for _, want := range []string{
		"ticket=,",
		"clientSecret=null,",
		"clientType=null,",
		"developer=null,",
		"scopes=null,",
		"uiLocales=null,",
		"claimsLocales=null,",
		"claims=null,",
		"acrs=null,",
		"acrEssential=false,",
		"maxAge=0,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summarize() = %q, missing %q", got, want)
		}
	}
}

func TestAuthorizationResponse_Summarize_WithClient(t *testing.T) {
	r := &AuthorizationResponse{
		Ticket: "ticket-1",
		Action: ActionInteraction,
		Client: &ClientApplication{
			ServiceNumber: 3,
			Number:        7,
			ClientID:      5001,
			ClientSecret:  "secret",
			ClientType:    ClientTypeConfidential,
			Developer:     "dev@example.com",
		},
		Display:      DisplayPage,
		MaxAge:       600,
		LowestPrompt: PromptConsent,
	}

	got := r.Summarize()
	for _, want := range []string{
		"ticket=ticket-1,",
		"action=INTERACTION,",
		"serviceNumber=3,",
		"clientNumber=7,",
		"clientId=5001,",
		"clientType=CONFIDENTIAL,",
		"developer=dev@example.com,",
		"display=PAGE,",
		"maxAge=600,",
		"lowestPrompt=CONSENT",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summarize() = %q, missing %q", got, want)
		}
	}
}

func TestAuthorizationResponse_JSONRoundTrip(t *testing.T) {
	original := &AuthorizationResponse{
		Result: Result{ResultCode: "A004001", ResultMessage: "ok"},
		Action: ActionNoInteraction,
		Client: &ClientApplication{ClientID: 42, ClientType: ClientTypePublic},
		Service: &Service{
			Number:      1,
			ServiceName: "example",
			SupportedScopes: []Scope{
				{Name: "openid", DefaultEntry: true},
			},
		},
		Display:         DisplayTouch,
		MaxAge:          3600,
		Scopes:          []Scope{{Name: "openid"}, {Name: "email", Description: "email address"}},
		UILocales:       []string{"fr-CA", "en"},
		ClaimsLocales:   []string{"ja"},
		Claims:          []string{"name", "email"},
		ACREssential:    true,
		ACRs:            []string{"urn:mace:incommon:iap:silver"},
		Subject:         "user-1234",
		LoginHint:       "john@example.com",
		LowestPrompt:    PromptLogin,
		ResponseContent: `{"error":"login_required"}`,
		Ticket:          "ticket-xyz",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded AuthorizationResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Action != original.Action {
		t.Errorf("Action = %v, want %v", decoded.Action, original.Action)
	}
	if decoded.MaxAge != original.MaxAge {
		t.Errorf("MaxAge = %d, want %d", decoded.MaxAge, original.MaxAge)
	}
	if decoded.ACREssential != original.ACREssential {
		t.Errorf("ACREssential = %v, want %v", decoded.ACREssential, original.ACREssential)
	}
	if decoded.Summarize() != original.Summarize() {
		t.Errorf("summaries differ after round trip:\n got %q\nwant %q", decoded.Summarize(), original.Summarize())
	}
	if decoded.Client == nil || decoded.Client.ClientID != 42 {
		t.Errorf("Client not preserved: %+v", decoded.Client)
	}
	if decoded.Result.ResultCode != "A004001" {
		t.Errorf("ResultCode = %q, want A004001", decoded.Result.ResultCode)
	}
}

func TestAuthorizationResponse_JSONKeysMatchWireContract(t *testing.T) {
	r := &AuthorizationResponse{
		Action:          ActionLocation,
		Service:         &Service{Number: 1},
		Client:          &ClientApplication{ClientID: 42},
		Display:         DisplayPage,
		MaxAge:          1,
		Scopes:          []Scope{{Name: "openid"}},
		UILocales:       []string{"en"},
		ClaimsLocales:   []string{"en"},
		Claims:          []string{"name"},
		ACREssential:    true,
		ACRs:            []string{"acr1"},
		Subject:         "s",
		LoginHint:       "h",
		LowestPrompt:    PromptConsent,
		ResponseContent: "https://client.example.com/cb?error=x",
		Ticket:          "t",
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{
		"action", "service", "client", "display", "maxAge", "scopes",
		"uiLocales", "claimsLocales", "claims", "acrEssential", "acrs",
		"subject", "loginHint", "lowestPrompt", "responseContent", "ticket",
	} {
		if _, ok := keys[key]; !ok {
			t.Errorf("serialized form is missing key %q: %s", key, data)
		}
	}
}

func TestAuthorizationResponse_AbsentVsEmptySurvivesRoundTrip(t *testing.T) {
	// Absent (null on the wire) and empty ([]) must stay distinguishable.
	in := `{"action":"INTERACTION","uiLocales":null,"claims":[]}`

	var r AuthorizationResponse
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if r.UILocales != nil {
		t.Errorf("UILocales = %#v, want nil", r.UILocales)
	}
	if r.Claims == nil || len(r.Claims) != 0 {
		t.Errorf("Claims = %#v, want empty non-nil slice", r.Claims)
	}

	got := r.Summarize()
	if !strings.Contains(got, "uiLocales=null,") {
		t.Errorf("Summarize() = %q, want uiLocales=null", got)
	}
	if !strings.Contains(got, "claims=,") {
		t.Errorf("Summarize() = %q, want claims=<empty>", got)
	}
}

func TestAuthorizationResponse_SubjectBoundaryLengthPassesThrough(t *testing.T) {
	subject := strings.Repeat("a", 100)
	r := &AuthorizationResponse{Subject: subject}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded AuthorizationResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Subject != subject {
		t.Errorf("Subject altered: got %d chars, want 100", len(decoded.Subject))
	}
}

func TestAuthorizationResponse_FieldPresenceByAction(t *testing.T) {
	tests := []struct {
		name string
		resp AuthorizationResponse
		// responseContentIs says how ResponseContent is interpreted.
		responseContentIs string
	}{
		{
			name: "internal server error carries error JSON",
			resp: AuthorizationResponse{
				Action:          ActionInternalServerError,
				ResponseContent: `{"error":"server_error"}`,
			},
			responseContentIs: "json",
		},
		{
			name: "bad request carries error JSON",
			resp: AuthorizationResponse{
				Action:          ActionBadRequest,
				ResponseContent: `{"error":"invalid_request"}`,
			},
			responseContentIs: "json",
		},
		{
			name: "location carries redirect URI",
			resp: AuthorizationResponse{
				Action:          ActionLocation,
				ResponseContent: "https://client.example.com/cb?error=invalid_scope",
			},
			responseContentIs: "uri",
		},
		{
			name: "form carries HTML",
			resp: AuthorizationResponse{
				Action:          ActionForm,
				ResponseContent: "<html><body onload=\"document.forms[0].submit()\"></body></html>",
			},
			responseContentIs: "html",
		},
		{
			name: "no interaction carries ticket and constraints, no response content",
			resp: AuthorizationResponse{
				Action: ActionNoInteraction,
				MaxAge: 300,
				ACRs:   []string{"acr1"},
				Ticket: "t1",
			},
		},
		{
			name: "interaction carries UI fields and ticket, no response content",
			resp: AuthorizationResponse{
				Action:       ActionInteraction,
				Display:      DisplayPage,
				UILocales:    []string{"en"},
				LowestPrompt: PromptLogin,
				Scopes:       []Scope{{Name: "openid"}},
				Ticket:       "t2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch tt.resp.Action {
			case ActionNoInteraction, ActionInteraction:
				if tt.resp.ResponseContent != "" {
					t.Error("ResponseContent must be irrelevant for interactive actions")
				}
				if tt.resp.Ticket == "" {
					t.Error("Ticket required for follow-up calls")
				}
			default:
				if tt.resp.ResponseContent == "" {
					t.Error("ResponseContent required for terminal actions")
				}
				switch tt.responseContentIs {
				case "uri":
					if !strings.HasPrefix(tt.resp.ResponseContent, "https://") {
						t.Errorf("LOCATION content should be a URI, got %q", tt.resp.ResponseContent)
					}
				case "json":
					var v map[string]any
					if err := json.Unmarshal([]byte(tt.resp.ResponseContent), &v); err != nil {
						t.Errorf("content should be JSON: %v", err)
					}
				case "html":
					if !strings.Contains(tt.resp.ResponseContent, "<html") {
						t.Errorf("FORM content should be HTML, got %q", tt.resp.ResponseContent)
					}
				}
			}
		})
	}
}
