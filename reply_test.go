package authlane

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteResult(t *testing.T) {
	tests := []struct {
		name        string
		action      Action
		content     string
		wantStatus  int
		wantCT      string
		wantBody    string
		wantHeader  string
		headerValue string
	}{
		{
			name:       "internal server error",
			action:     ActionInternalServerError,
			content:    `{"error":"server_error"}`,
			wantStatus: http.StatusInternalServerError,
			wantCT:     "application/json",
			wantBody:   `{"error":"server_error"}`,
		},
		{
			name:       "bad request",
			action:     ActionBadRequest,
			content:    `{"error":"invalid_request"}`,
			wantStatus: http.StatusBadRequest,
			wantCT:     "application/json",
			wantBody:   `{"error":"invalid_request"}`,
		},
		{
			name:        "location sets header and no body",
			action:      ActionLocation,
			content:     "https://client.example.com/cb?error=access_denied",
			wantStatus:  http.StatusFound,
			wantBody:    "",
			wantHeader:  "Location",
			headerValue: "https://client.example.com/cb?error=access_denied",
		},
		{
			name:       "form returns HTML",
			action:     ActionForm,
			content:    "<html></html>",
			wantStatus: http.StatusOK,
			wantCT:     "text/html;charset=UTF-8",
			wantBody:   "<html></html>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := WriteResult(rec, tt.action, tt.content); err != nil {
				t.Fatalf("WriteResult() error = %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCT != "" && rec.Header().Get("Content-Type") != tt.wantCT {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.wantCT)
			}
			if got := rec.Body.String(); got != tt.wantBody {
				t.Errorf("body = %q, want %q", got, tt.wantBody)
			}
			if tt.wantHeader != "" && rec.Header().Get(tt.wantHeader) != tt.headerValue {
				t.Errorf("%s = %q, want %q", tt.wantHeader, rec.Header().Get(tt.wantHeader), tt.headerValue)
			}

			// RFC 6749 cache directives on every response.
			if rec.Header().Get("Cache-Control") != "no-store" {
				t.Errorf("Cache-Control = %q, want no-store", rec.Header().Get("Cache-Control"))
			}
			if rec.Header().Get("Pragma") != "no-cache" {
				t.Errorf("Pragma = %q, want no-cache", rec.Header().Get("Pragma"))
			}
		})
	}
}

func TestWriteResult_UnknownAction(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteResult(rec, Action("SOMETHING_ELSE"), ""); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestWriteAuthorizationResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	err := WriteAuthorizationResponse(rec, &AuthorizationResponse{
		Action:          ActionBadRequest,
		ResponseContent: `{"error":"invalid_request"}`,
	})
	if err != nil {
		t.Fatalf("WriteAuthorizationResponse() error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWriteAuthorizationResponse_RejectsInteractiveActions(t *testing.T) {
	for _, action := range []Action{ActionNoInteraction, ActionInteraction} {
		rec := httptest.NewRecorder()
		if err := WriteAuthorizationResponse(rec, &AuthorizationResponse{Action: action}); err == nil {
			t.Errorf("expected error for action %s", action)
		}
	}
}

func TestWriteAuthorizationResponse_NilResponse(t *testing.T) {
	if err := WriteAuthorizationResponse(httptest.NewRecorder(), nil); err == nil {
		t.Error("expected error for nil response")
	}
}
