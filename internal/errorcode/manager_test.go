package errorcode

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "error_codes.json"), nil)
}

func TestClassify_AutoGeneratedScenario(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	ctx := Context{
		Endpoint:   "/api/auth/login",
		Method:     "POST",
		ErrorType:  "JWTError",
		StatusCode: 401,
	}

	code, entry := m.Classify(ctx)
	if code != "AUTH-001" {
		t.Fatalf("first classify: code = %q, want AUTH-001", code)
	}
	if !entry.AutoGenerated || entry.Area != AreaAuth || entry.Severity != SeverityMedium {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.OccurrenceCount != 1 {
		t.Fatalf("first occurrence count = %d, want 1", entry.OccurrenceCount)
	}
	if entry.DevCause != "Auto-detected from /api/auth/login: JWTError" {
		t.Fatalf("unexpected dev cause: %q", entry.DevCause)
	}

	// Identical context must map back to the same code, not mint a new one.
	code2, entry2 := m.Classify(ctx)
	if code2 != code {
		t.Fatalf("second classify: code = %q, want %q", code2, code)
	}
	if entry2.OccurrenceCount != 2 {
		t.Fatalf("second occurrence count = %d, want 2", entry2.OccurrenceCount)
	}
}

func TestClassify_SequencesAreMonotonicPerArea(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	endpoints := []string{"/api/customers/1", "/api/customers/2", "/api/customers/3"}
	want := []string{"CUSTOMER-001", "CUSTOMER-002", "CUSTOMER-003"}
	for i, ep := range endpoints {
		code, _ := m.Classify(Context{Endpoint: ep, ErrorType: "ValidationError"})
		if code != want[i] {
			t.Fatalf("classify %q: code = %q, want %q", ep, code, want[i])
		}
	}

	// A different area keeps its own counter.
	code, _ := m.Classify(Context{Endpoint: "/api/products/9", ErrorType: "ValidationError"})
	if code != "INVENTORY-001" {
		t.Fatalf("inventory code = %q, want INVENTORY-001", code)
	}
}

func TestClassify_CuratedRuleWinsWhenRegistered(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	m.Register("PRINT-OFFLINE-001", Entry{
		Title:       "Printer unreachable",
		UserMessage: "The receipt printer is offline.",
		Severity:    SeverityHigh,
		Area:        AreaPrint,
	})

	ctx := Context{Endpoint: "/api/invoices/42/print", ErrorType: "PrinterOfflineError printer offline"}

	code, entry := m.Classify(ctx)
	if code != "PRINT-OFFLINE-001" {
		t.Fatalf("code = %q, want curated PRINT-OFFLINE-001", code)
	}
	if entry.OccurrenceCount != 2 {
		// Register seeds the count at 1; the match bumps it.
		t.Fatalf("occurrence count = %d, want 2", entry.OccurrenceCount)
	}

	code, entry = m.Classify(ctx)
	if code != "PRINT-OFFLINE-001" || entry.OccurrenceCount != 3 {
		t.Fatalf("repeat: code=%q count=%d, want PRINT-OFFLINE-001/3", code, entry.OccurrenceCount)
	}
}

func TestClassify_CuratedRuleIgnoredWhenUnregistered(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	// "printer offline" is a curated keyword, but the curated code is not
	// in the registry, so classification falls through to auto-generation.
	code, entry := m.Classify(Context{Endpoint: "/till/receipt", ErrorType: "printer offline"})
	if code != "PRINT-001" {
		t.Fatalf("code = %q, want auto-generated PRINT-001", code)
	}
	if !entry.AutoGenerated {
		t.Fatalf("expected auto-generated entry, got %+v", entry)
	}
}

func TestClassifyArea_Precedence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ctx  Context
		want Area
	}{
		{"auth path", Context{Endpoint: "/api/auth/login"}, AreaAuth},
		{"pos wins over customers", Context{Endpoint: "/api/pos/customers/7"}, AreaPOS},
		{"sales path", Context{Endpoint: "/api/v1/sales"}, AreaPOS},
		{"reports path", Context{Endpoint: "/api/reports/daily"}, AreaReport},
		{"logo path", Context{Endpoint: "/api/business/logo"}, AreaSettings},
		{"customers path", Context{Endpoint: "/api/customers"}, AreaCustomer},
		{"products path", Context{Endpoint: "/api/products/3"}, AreaInventory},
		{"print error text", Context{Endpoint: "/api/invoices/9", ErrorType: "PrinterTimeout"}, AreaPrint},
		{"db error text", Context{Endpoint: "/api/invoices/9", ErrorType: "database is locked"}, AreaDB},
		{"nothing matches", Context{Endpoint: "/healthz", ErrorType: "Weird"}, AreaUnknown},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyArea(tc.ctx); got != tc.want {
				t.Fatalf("classifyArea(%+v) = %v, want %v", tc.ctx, got, tc.want)
			}
		})
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "error_codes.json")
	m := New(path, nil)

	m.Classify(Context{Endpoint: "/api/auth/login", ErrorType: "JWTError"})
	m.Classify(Context{Endpoint: "/api/customers", ErrorType: "ValidationError"})
	m.Classify(Context{Endpoint: "/api/customers", ErrorType: "ValidationError"})

	reloaded := New(path, nil)

	got := reloaded.All()
	want := m.All()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d entries, want %d", len(got), len(want))
	}
	for code, w := range want {
		g, ok := got[code]
		if !ok {
			t.Fatalf("code %q missing after reload", code)
		}
		if g.OccurrenceCount != w.OccurrenceCount || g.Area != w.Area || g.DevCause != w.DevCause {
			t.Fatalf("entry %q diverged after reload: got %+v want %+v", code, g, w)
		}
	}
	if reloaded.TotalCodes() != m.TotalCodes() {
		t.Fatalf("total codes %d, want %d", reloaded.TotalCodes(), m.TotalCodes())
	}

	// Sequences continue where they left off instead of reissuing codes.
	code, _ := reloaded.Classify(Context{Endpoint: "/api/customers/77", ErrorType: "ConflictError"})
	if code != "CUSTOMER-002" {
		t.Fatalf("post-reload code = %q, want CUSTOMER-002", code)
	}
}

func TestRecent_SortedAndBounded(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)

	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	step := 0
	m.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}

	// Never-seen entries must not appear in the recent projection.
	m.registry["POS-SCAN-001"] = Entry{Title: "Scanner fault", Area: AreaPOS, Severity: SeverityLow, OccurrenceCount: 1}

	m.Classify(Context{Endpoint: "/api/auth/login", ErrorType: "JWTError"})
	m.Classify(Context{Endpoint: "/api/customers", ErrorType: "ValidationError"})
	m.Classify(Context{Endpoint: "/api/products", ErrorType: "StockError"})

	recent := m.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("len(recent) = %d, want 2", len(recent))
	}
	if recent[0].ErrorCode != "INVENTORY-001" || recent[1].ErrorCode != "CUSTOMER-001" {
		t.Fatalf("unexpected order: %q then %q", recent[0].ErrorCode, recent[1].ErrorCode)
	}
	for _, r := range recent {
		if r.LastSeenAt.IsZero() {
			t.Fatalf("recent entry %q has zero LastSeenAt", r.ErrorCode)
		}
	}
}

func TestLoad_MalformedFileRecovers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "error_codes.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed malformed file: %v", err)
	}

	m := New(path, nil)
	if n := len(m.All()); n != 0 {
		t.Fatalf("expected empty registry after malformed load, got %d entries", n)
	}
	code, _ := m.Classify(Context{Endpoint: "/api/auth/login", ErrorType: "JWTError"})
	if code != "AUTH-001" {
		t.Fatalf("code = %q, want AUTH-001 from reset counters", code)
	}
}

func TestClassify_PersistFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	// Point the backing file into a directory that does not exist: every
	// persist fails, but callers still get codes and counts keep moving.
	m := New(filepath.Join(t.TempDir(), "missing", "error_codes.json"), nil)

	code, entry := m.Classify(Context{Endpoint: "/api/sales", ErrorType: "TotalMismatch"})
	if code != "POS-001" || entry.OccurrenceCount != 1 {
		t.Fatalf("first classify: %q/%d", code, entry.OccurrenceCount)
	}
	code, entry = m.Classify(Context{Endpoint: "/api/sales", ErrorType: "TotalMismatch"})
	if code != "POS-001" || entry.OccurrenceCount != 2 {
		t.Fatalf("second classify: %q/%d, want POS-001/2", code, entry.OccurrenceCount)
	}
}
