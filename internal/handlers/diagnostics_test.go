package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tillpoint/internal/errorcode"
	"tillpoint/internal/printqueue"
	"tillpoint/internal/service"

	"github.com/gin-gonic/gin"
)

func adminClaims() service.TokenClaims {
	return service.TokenClaims{UserID: 1, BusinessID: 7, Role: "admin"}
}

// newDiagRouter exposes the registry so tests can seed it directly.
func newDiagRouter(s *service.Service, t *testing.T) (*gin.Engine, *errorcode.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg := errorcode.New(registryPath(t), nil)
	q := printqueue.New(instantExecutor{}, nil)
	return NewHandler(s, reg, q, nil).InitRoutes(), reg
}

func adminGet(t *testing.T, r *gin.Engine, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header = authHeader("token")
	r.ServeHTTP(w, req)
	return w
}

func seedEntries(reg *errorcode.Manager) {
	reg.Register("POS-SCAN-001", errorcode.Entry{
		Title:       "Barcode scan failed",
		UserMessage: "The barcode could not be read.",
		DevCause:    "Scanner delivered an unparsable code",
		Severity:    errorcode.SeverityMedium,
		Area:        errorcode.AreaPOS,
	})
	reg.Register("DB-LOCK-001", errorcode.Entry{
		Title:       "Database locked",
		UserMessage: "A storage problem occurred.",
		DevCause:    "Concurrent writer held the sqlite lock",
		Severity:    errorcode.SeverityHigh,
		Area:        errorcode.AreaDB,
	})
}

func TestListErrors_Filters(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{parseClaims: adminClaims()}
	r, reg := newDiagRouter(&service.Service{Authorization: auth}, t)
	seedEntries(reg)

	type listing struct {
		Code string `json:"code"`
	}
	type resp struct {
		Total  int       `json:"total"`
		Count  int       `json:"count"`
		Errors []listing `json:"errors"`
	}

	cases := []struct {
		name      string
		target    string
		wantCodes []string
	}{
		{"no filter", "/api/v1/admin/errors", []string{"DB-LOCK-001", "POS-SCAN-001"}},
		{"by area", "/api/v1/admin/errors?area=pos", []string{"POS-SCAN-001"}},
		{"by severity", "/api/v1/admin/errors?severity=HIGH", []string{"DB-LOCK-001"}},
		{"by substring", "/api/v1/admin/errors?q=sqlite", []string{"DB-LOCK-001"}},
		{"no match", "/api/v1/admin/errors?q=absent", []string{}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			w := adminGet(t, r, tc.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d (body=%s)", w.Code, w.Body.String())
			}
			var out resp
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Count != len(tc.wantCodes) {
				t.Fatalf("count: got %d, want %d", out.Count, len(tc.wantCodes))
			}
			for i, want := range tc.wantCodes {
				if out.Errors[i].Code != want {
					t.Fatalf("errors[%d]: got %s, want %s", i, out.Errors[i].Code, want)
				}
			}
			if out.Total != 2 {
				t.Fatalf("total: got %d, want 2", out.Total)
			}
		})
	}
}

func TestRecentErrors(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{parseClaims: adminClaims()}
	r, reg := newDiagRouter(&service.Service{Authorization: auth}, t)

	// Two live classifications give the recent list something to show.
	reg.Classify(errorcode.Context{Endpoint: "/api/v1/sales", ErrorType: "sqlite.Error"})
	reg.Classify(errorcode.Context{Endpoint: "/api/v1/customers/3", ErrorType: "errors.errorString"})

	w := adminGet(t, r, "/api/v1/admin/errors/recent?limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (body=%s)", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                     `json:"count"`
		Recent []errorcode.RecentError `json:"recent"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Recent) != 1 {
		t.Fatalf("expected exactly one entry, got %+v", out)
	}

	w = adminGet(t, r, "/api/v1/admin/errors/recent?limit=bogus")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bogus limit: got %d, want 400", w.Code)
	}
}

func TestGetErrorDetails(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{parseClaims: adminClaims()}
	r, reg := newDiagRouter(&service.Service{Authorization: auth}, t)
	seedEntries(reg)

	w := adminGet(t, r, "/api/v1/admin/errors/pos-scan-001")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (body=%s)", w.Code, w.Body.String())
	}
	var out struct {
		Code  string `json:"code"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Code != "POS-SCAN-001" || out.Title != "Barcode scan failed" {
		t.Fatalf("unexpected details: %+v", out)
	}

	w = adminGet(t, r, "/api/v1/admin/errors/NOPE-001")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown code: got %d, want 404", w.Code)
	}
}

// The diagnostics endpoints sit behind the error envelope too; a handler
// level failure on a sibling route must not disturb them.
func TestDiagnostics_UnaffectedBySiblingFailures(t *testing.T) {
	t.Parallel()

	auth := &mockAuth{parseClaims: adminClaims()}
	sales := &mockSales{getErr: errors.New("boom")}
	s := &service.Service{Authorization: auth, Sales: sales}
	r, reg := newDiagRouter(s, t)

	// Trip a classified failure first.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/1", nil)
	req.Header = authHeader("token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("setup failure: got %d", w.Code)
	}

	// The generated code is immediately visible to diagnostics.
	w = adminGet(t, r, "/api/v1/admin/errors/POS-001")
	if w.Code != http.StatusOK {
		t.Fatalf("details after classification: got %d (body=%s)", w.Code, w.Body.String())
	}
	if reg.TotalCodes() != 1 {
		t.Fatalf("total codes: got %d, want 1", reg.TotalCodes())
	}
}
