package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/google/uuid"
)

// AdminPrincipal returns an admin principal with a fresh id.
func AdminPrincipal() *models.Principal {
	return &models.Principal{
		ID:    uuid.NewString(),
		Role:  models.RoleAdmin,
		Email: "admin@test.com",
	}
}

// VolunteerPrincipal returns a volunteer principal for id.
func VolunteerPrincipal(id string) *models.Principal {
	return &models.Principal{
		ID:    id,
		Role:  models.RoleVolunteer,
		Email: "volunteer@test.com",
	}
}

// WithPrincipal adds p to the request context for testing authenticated
// handlers. This bypasses the bearer middleware.
func WithPrincipal(r *http.Request, p *models.Principal) *http.Request {
	return auth.WithTestPrincipal(r, p)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// JSONRequest creates a request whose body is body encoded as JSON. A string
// body is sent as-is so tests can send malformed JSON.
func JSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// BearerRequest is JSONRequest with an Authorization header.
func BearerRequest(t *testing.T, method, target, token string, body any) *http.Request {
	t.Helper()
	req := JSONRequest(t, method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// DecodeJSON decodes the recorded body into a value of type T.
func DecodeJSON[T any](t *testing.T, r *ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(r.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response body %q: %v", r.Body.String(), err)
	}
	return v
}

// Message returns the "message" field of a JSON response body.
func Message(t *testing.T, r *ResponseRecorder) string {
	t.Helper()
	body := DecodeJSON[map[string]any](t, r)
	msg, _ := body["message"].(string)
	return msg
}
