package authlane

import (
	"encoding/json"
	"testing"
)

func TestClientApplication_JSONKeys(t *testing.T) {
	c := &ClientApplication{
		ServiceNumber: 1,
		Number:        2,
		ClientID:      5001,
		ClientSecret:  "s",
		ClientType:    ClientTypeConfidential,
		Developer:     "dev@example.com",
		ClientName:    "Example App",
		RedirectURIs:  []string{"https://client.example.com/cb"},
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{
		"serviceNumber", "number", "clientId", "clientSecret", "clientType",
		"developer", "clientName", "redirectUris",
	} {
		if _, ok := keys[key]; !ok {
			t.Errorf("serialized client is missing key %q: %s", key, data)
		}
	}
}

func TestEnums_RoundTripUnknownValues(t *testing.T) {
	// The backend may add enum values; decoding must not reject or coerce
	// them.
	in := `{"action":"FUTURE_ACTION","display":"HOLOGRAM"}`

	var r AuthorizationResponse
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r.Action != Action("FUTURE_ACTION") {
		t.Errorf("Action = %q, want FUTURE_ACTION", r.Action)
	}
	if r.Display != Display("HOLOGRAM") {
		t.Errorf("Display = %q, want HOLOGRAM", r.Display)
	}

	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var again AuthorizationResponse
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if again.Action != r.Action || again.Display != r.Display {
		t.Error("unknown enum values did not survive the round trip")
	}
}

func TestService_SupportedScopes(t *testing.T) {
	in := `{"number":3,"serviceName":"example","supportedScopes":[{"name":"openid","defaultEntry":true},{"name":"email"}]}`

	var s Service
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(s.SupportedScopes) != 2 {
		t.Fatalf("SupportedScopes = %d entries, want 2", len(s.SupportedScopes))
	}
	if !s.SupportedScopes[0].DefaultEntry || s.SupportedScopes[0].Name != "openid" {
		t.Errorf("first scope = %+v", s.SupportedScopes[0])
	}
}
