package errorcode

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"tillpoint/internal/logger"
)

const registryVersion = 1

// registryFile is the on-disk shape: a metadata envelope plus the code map.
// The whole file is read once at construction and rewritten on every mutation.
type registryFile struct {
	Metadata Metadata         `json:"metadata"`
	Errors   map[string]Entry `json:"errors"`
}

// Manager owns the in-memory registry and its backing file. All reads and
// writes of registry/metadata go through a single exclusive mutex, and
// persistence happens inside the critical section so no caller ever
// observes a half-updated registry.
type Manager struct {
	mu       sync.Mutex
	path     string
	registry map[string]Entry
	meta     Metadata
	log      *logger.Logger
	now      func() time.Time // swappable for tests
}

// New loads the registry from path. A missing or malformed file is a
// recovery case, not an error: the manager starts with an empty registry
// and every area's sequence counter at 1.
func New(path string, log *logger.Logger) *Manager {
	m := &Manager{
		path: path,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
	m.load()
	return m
}

func (m *Manager) load() {
	m.registry = make(map[string]Entry)
	m.meta = Metadata{
		Version:      registryVersion,
		NextSequence: make(map[Area]int, len(Areas)),
	}
	for _, a := range Areas {
		m.meta.NextSequence[a] = 1
	}

	raw, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) && m.log != nil {
			m.log.Warnw("error_registry_read_failed", "path", m.path, "err", err)
		}
		return
	}

	var f registryFile
	if err := json.Unmarshal(raw, &f); err != nil {
		if m.log != nil {
			m.log.Warnw("error_registry_malformed", "path", m.path, "err", err)
		}
		return
	}

	if f.Errors != nil {
		m.registry = f.Errors
	}
	m.meta.LastUpdated = f.Metadata.LastUpdated
	m.meta.TotalCodes = f.Metadata.TotalCodes
	// Merge persisted counters over the seeded ones so new areas added in
	// later versions still start at 1.
	for a, n := range f.Metadata.NextSequence {
		if n > 0 {
			m.meta.NextSequence[a] = n
		}
	}
}

// persist rewrites the backing file wholesale. Failures are logged and
// swallowed: the in-memory registry stays authoritative for the rest of
// the process lifetime, callers still get their code.
func (m *Manager) persist() {
	m.meta.LastUpdated = m.now()

	raw, err := json.MarshalIndent(registryFile{Metadata: m.meta, Errors: m.registry}, "", "  ")
	if err != nil {
		if m.log != nil {
			m.log.Errorw("error_registry_marshal_failed", "err", err)
		}
		return
	}
	if err := os.WriteFile(m.path, raw, 0o644); err != nil {
		if m.log != nil {
			m.log.Errorw("error_registry_write_failed", "path", m.path, "err", err)
		}
	}
}

// Classify resolves a runtime error context to a stable code.
//
// Curated codes win first: a curated rule fires when its code is already
// registered and any keyword appears (case-insensitively) in
// "{error_type} {endpoint}". Otherwise the context is classified into an
// area and a fresh "{AREA}-NNN" code is generated from that area's
// monotonic sequence. Either way the registry is persisted before return.
func (m *Manager) Classify(ctx Context) (string, Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	text := matchText(ctx)

	for _, rule := range curatedRules {
		entry, known := m.registry[rule.code]
		if !known {
			continue
		}
		for _, kw := range rule.keywords {
			if containsFold(text, kw) {
				entry.OccurrenceCount++
				entry.LastSeenAt = now
				m.registry[rule.code] = entry
				m.persist()
				return rule.code, entry
			}
		}
	}

	// Dedup repeats of the same auto-detected fault: an identical
	// (endpoint, error_type) pair maps back to the code it was issued.
	cause := fmt.Sprintf("Auto-detected from %s: %s", ctx.Endpoint, ctx.ErrorType)
	if code, ok := m.findByCause(cause); ok {
		entry := m.registry[code]
		entry.OccurrenceCount++
		entry.LastSeenAt = now
		m.registry[code] = entry
		m.persist()
		return code, entry
	}

	area := classifyArea(ctx)
	seq := m.meta.NextSequence[area]
	if seq < 1 {
		seq = 1
	}
	code := fmt.Sprintf("%s-%03d", area, seq)
	m.meta.NextSequence[area] = seq + 1
	m.meta.TotalCodes++

	entry := Entry{
		Title:           fmt.Sprintf("%s error", area),
		UserMessage:     userMessageFor(area),
		DevCause:        cause,
		CommonFix:       "Review recent changes to this endpoint and the attached error message.",
		Severity:        SeverityMedium,
		Area:            area,
		LastSeenAt:      now,
		OccurrenceCount: 1,
		AutoGenerated:   true,
	}
	m.registry[code] = entry
	m.persist()
	return code, entry
}

// findByCause locates an auto-generated entry by its DevCause signature.
// Causes are unique by construction; the lowest code wins on the off
// chance two entries share one, keeping lookups deterministic.
func (m *Manager) findByCause(cause string) (string, bool) {
	best := ""
	for code, e := range m.registry {
		if !e.AutoGenerated || e.DevCause != cause {
			continue
		}
		if best == "" || code < best {
			best = code
		}
	}
	return best, best != ""
}

// Details returns the entry for an exact code, reporting presence.
func (m *Manager) Details(code string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.registry[code]
	return e, ok
}

// All returns a snapshot copy of the registry. Filtering by area, severity
// or substring is the caller's concern.
func (m *Manager) All() map[string]Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Entry, len(m.registry))
	for code, e := range m.registry {
		out[code] = e
	}
	return out
}

// TotalCodes reports how many codes the registry currently holds.
func (m *Manager) TotalCodes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta.TotalCodes
}

// Recent projects the entries that have actually been seen (non-zero
// LastSeenAt), most recent first, truncated to limit.
func (m *Manager) Recent(limit int) []RecentError {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RecentError, 0, len(m.registry))
	for code, e := range m.registry {
		if e.LastSeenAt.IsZero() {
			continue
		}
		out = append(out, RecentError{
			ErrorCode:       code,
			Title:           e.Title,
			LastSeenAt:      e.LastSeenAt,
			OccurrenceCount: e.OccurrenceCount,
			Severity:        e.Severity,
			Area:            e.Area,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastSeenAt.After(out[j].LastSeenAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Register inserts or replaces a curated entry under an explicit code.
// Used to seed curated codes from configuration or an admin tool.
func (m *Manager) Register(code string, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.registry[code]; !exists {
		m.meta.TotalCodes++
	}
	if e.OccurrenceCount < 1 {
		e.OccurrenceCount = 1
	}
	m.registry[code] = e
	m.persist()
}
