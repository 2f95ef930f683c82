package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Validation and method checks run before any storage or model access, so
// a zero API value is enough for these paths.

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestChatHandlerRejectsEmptyMessage(t *testing.T) {
	a := &API{}
	cases := []string{
		`{"message": ""}`,
		`{"message": "   "}`,
		`{"sessionId": "abc"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		a.ChatHandler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		if got := decodeError(t, rec); got != "Message is required" {
			t.Errorf("body %q: error = %q, want %q", body, got, "Message is required")
		}
	}
}

func TestChatHandlerRejectsInvalidJSON(t *testing.T) {
	a := &API{}
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	a.ChatHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChatHandlerMethodNotAllowed(t *testing.T) {
	a := &API{}
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	a.ChatHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestAnalyzeJDHandlerRejectsEmptyJobDescription(t *testing.T) {
	a := &API{}
	cases := []string{
		`{}`,
		`{"jobDescription": ""}`,
		`{"jobDescription": "  \n "}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze-jd", strings.NewReader(body))
		rec := httptest.NewRecorder()
		a.AnalyzeJDHandler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		if got := decodeError(t, rec); got != "Job description is required" {
			t.Errorf("body %q: error = %q", body, got)
		}
	}
}

func TestAnalyzeJDUploadRejectsMissingFile(t *testing.T) {
	a := &API{}
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-jd/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()
	a.AnalyzeJDUploadHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteIDValidation(t *testing.T) {
	a := &API{}
	cases := []struct {
		query string
		ok    bool
	}{
		{"", false},
		{"?id=", false},
		{"?id=not-a-uuid", false},
		{"?id=5c9f8f8e-7c3b-4c9a-9f3e-2b1a0d9c8b7a", true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/skills"+tc.query, nil)
		rec := httptest.NewRecorder()
		_, ok := a.deleteID(rec, req)
		if ok != tc.ok {
			t.Errorf("deleteID(%q) ok = %v, want %v", tc.query, ok, tc.ok)
		}
		if !tc.ok && rec.Code != http.StatusBadRequest {
			t.Errorf("deleteID(%q) status = %d, want 400", tc.query, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the inner handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}

func TestCORSPassthrough(t *testing.T) {
	called := false
	handler := withCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("non-preflight request should reach the inner handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Error("CORS headers should be set on normal responses too")
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "Profile not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := decodeError(t, rec); got != "Profile not found" {
		t.Errorf("error = %q", got)
	}
}
