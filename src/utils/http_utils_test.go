package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/username/salescope/src/apperrors"
)

func TestHashKey(t *testing.T) {
	a := HashKey("prompt one")
	b := HashKey("prompt one")
	c := HashKey("prompt two")

	if a != b {
		t.Error("same input produced different hashes")
	}
	if a == c {
		t.Error("different inputs produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestSendAppError_StructuredBody(t *testing.T) {
	rr := httptest.NewRecorder()
	SendAppError(rr, apperrors.Upstream("LLM returned status 500").WithDetails(`{"error":"boom"}`))

	if rr.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rr.Code)
	}
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != "UPSTREAM_ERROR" {
		t.Errorf("code = %q", resp.Error.Code)
	}
	if resp.Error.Details != `{"error":"boom"}` {
		t.Errorf("details = %q", resp.Error.Details)
	}
}

func TestSendAppError_UnknownErrorBecomesInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	SendAppError(rr, errors.New("sql: database is locked"))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", resp.Error.Code)
	}
	// Internals never leak to the caller.
	if resp.Error.Message != "an unexpected error occurred" {
		t.Errorf("message = %q", resp.Error.Message)
	}
}

func TestSendJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	SendJSONError(rr, "message is required", http.StatusBadRequest)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "message is required" {
		t.Errorf("error = %q", resp["error"])
	}
}
