package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tillpoint/internal/models"
	"tillpoint/internal/service"
)

func cashierClaims() service.TokenClaims {
	return service.TokenClaims{UserID: 1, BusinessID: 7, Role: "cashier"}
}

func TestClaimsMiddleware_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		header   string
		parseErr error
		wantMsg  string
	}{
		{"missing header", "", nil, "missing Authorization header"},
		{"invalid scheme", "Token abc", nil, "invalid Authorization header format"},
		{"bearer without token", "Bearer", nil, "invalid Authorization header format"},
		{"expired token", "Bearer expired", errors.New("expired"), "invalid or expired token"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			auth := &mockAuth{parseClaims: cashierClaims(), parseErr: tc.parseErr}
			r := newTestRouter(&service.Service{Authorization: auth}, registryPath(t))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status: got %d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Error != tc.wantMsg {
				t.Fatalf("error: got %q, want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestTenantMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		host     string
		resolved *models.Business
		errRes   error
		want     int
	}{
		{"bare host skips check", "localhost:8080", nil, nil, http.StatusOK},
		{"matching subdomain", "acme.pos.example.com", &models.Business{ID: 7}, nil, http.StatusOK},
		{"foreign subdomain", "other.pos.example.com", &models.Business{ID: 9}, nil, http.StatusForbidden},
		{"unknown subdomain", "ghost.pos.example.com", nil, service.ErrUnknownBusiness, http.StatusNotFound},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			auth := &mockAuth{parseClaims: cashierClaims()}
			biz := &mockBusinesses{resolved: tc.resolved, resolveErr: tc.errRes}
			s := &service.Service{
				Authorization: auth,
				Businesses:    biz,
				Customers:     &mockCustomers{},
			}
			r := newTestRouter(s, registryPath(t))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
			req.Host = tc.host
			req.Header = authHeader("token")
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusForbidden},
		{"cashier", http.StatusForbidden},
	} {
		tc := tc
		t.Run(tc.role, func(t *testing.T) {
			t.Parallel()

			auth := &mockAuth{parseClaims: service.TokenClaims{UserID: 1, BusinessID: 7, Role: tc.role}}
			r := newTestRouter(&service.Service{Authorization: auth}, registryPath(t))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/errors", nil)
			req.Header = authHeader("token")
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("status: got %d, want %d", w.Code, tc.want)
			}
		})
	}
}

// A failing protected endpoint must come back wrapped in the standard
// envelope with a classified error code.
func TestErrorEnvelope_ClassifiesFailures(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{parseClaims: cashierClaims()}
	sales := &mockSales{getErr: errors.New("disk read failure")}
	s := &service.Service{Authorization: auth, Sales: sales}
	r := newTestRouter(s, registryPath(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/5", nil)
	req.Header = authHeader("token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500 (body=%s)", w.Code, w.Body.String())
	}

	var out struct {
		OK            bool   `json:"ok"`
		ErrorCode     string `json:"errorCode"`
		Message       string `json:"message"`
		CorrelationID string `json:"correlationId"`
		Details       string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.OK {
		t.Fatal("ok must be false")
	}
	// /sales endpoints classify into the POS area.
	if out.ErrorCode != "POS-001" {
		t.Fatalf("errorCode: got %q, want POS-001", out.ErrorCode)
	}
	if out.Message == "" || out.CorrelationID == "" {
		t.Fatalf("incomplete envelope: %+v", out)
	}
	if out.Details != "disk read failure" {
		t.Fatalf("details: got %q", out.Details)
	}
}

func TestSubdomainOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		host string
		want string
	}{
		{"acme.pos.example.com", "acme"},
		{"Acme.pos.example.com:8080", "acme"},
		{"example.com", ""},
		{"localhost:8080", ""},
		{"127.0.0.1:8080", ""},
	}
	for _, tc := range cases {
		if got := subdomainOf(tc.host); got != tc.want {
			t.Errorf("subdomainOf(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}
