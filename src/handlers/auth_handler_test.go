package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/username/salescope/src/security"
)

func newAuthHandler() *AuthHandler {
	return NewAuthHandler(security.NewAuthService(
		"0123456789abcdef0123456789abcdef", "dashboard-key", time.Minute,
	))
}

func TestHandleIssueToken_ValidKey(t *testing.T) {
	h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"apiKey":"dashboard-key"}`))
	rr := httptest.NewRecorder()
	h.HandleIssueToken(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] == "" {
		t.Error("response missing token")
	}
}

func TestHandleIssueToken_InvalidKey(t *testing.T) {
	h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"apiKey":"wrong"}`))
	rr := httptest.NewRecorder()
	h.HandleIssueToken(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestHandleIssueToken_MalformedJSON(t *testing.T) {
	h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"apiKey":`))
	rr := httptest.NewRecorder()
	h.HandleIssueToken(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	h := newAuthHandler()
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token, err := security.NewAuthService(
		"0123456789abcdef0123456789abcdef", "dashboard-key", time.Minute,
	).GenerateToken("dashboard")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"bearer token", "Bearer " + token, http.StatusOK},
		{"raw token", token, http.StatusOK},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/llm/health", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			protected(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
