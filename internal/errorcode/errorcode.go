// Package errorcode maintains a persisted registry of stable, operator-facing
// error codes. Runtime error contexts are classified into a coarse area,
// matched against curated codes or assigned a freshly generated one, and
// every occurrence is counted.
package errorcode

import "time"

// Area is the coarse category used to namespace generated codes.
type Area string

// Closed set of areas. UNKNOWN is the fallback when no rule matches.
const (
	AreaPOS       Area = "POS"
	AreaSettings  Area = "SETTINGS"
	AreaReport    Area = "REPORT"
	AreaDB        Area = "DB"
	AreaAuth      Area = "AUTH"
	AreaPrint     Area = "PRINT"
	AreaInventory Area = "INVENTORY"
	AreaCustomer  Area = "CUSTOMER"
	AreaUnknown   Area = "UNKNOWN"
)

// Areas lists every area in a stable order, used when seeding sequence
// counters for an empty registry.
var Areas = []Area{
	AreaPOS, AreaSettings, AreaReport, AreaDB, AreaAuth,
	AreaPrint, AreaInventory, AreaCustomer, AreaUnknown,
}

// Severity of a registered error code.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Entry is the registered metadata for one error code.
type Entry struct {
	Title           string    `json:"title"`
	UserMessage     string    `json:"userMessage"`
	DevCause        string    `json:"devCause"`
	CommonFix       string    `json:"commonFix"`
	Severity        Severity  `json:"severity"`
	Area            Area      `json:"area"`
	LastSeenAt      time.Time `json:"lastSeenAt,omitempty"`
	OccurrenceCount int       `json:"occurrenceCount"`
	AutoGenerated   bool      `json:"autoGenerated"`
}

// Metadata is the registry envelope persisted alongside the entries.
type Metadata struct {
	Version      int          `json:"version"`
	LastUpdated  time.Time    `json:"lastUpdated"`
	TotalCodes   int          `json:"totalCodes"`
	NextSequence map[Area]int `json:"nextSequence"`
}

// Context carries everything the classifier may look at for one runtime
// error. Only ErrorType and Endpoint participate in matching; the rest is
// kept for operator forensics.
type Context struct {
	Endpoint       string        `json:"endpoint"`
	Method         string        `json:"method,omitempty"`
	ErrorType      string        `json:"error_type"`
	ErrorMessage   string        `json:"error_message"`
	StatusCode     int           `json:"status_code"`
	UserID         int           `json:"user_id,omitempty"`
	UserRole       string        `json:"user_role,omitempty"`
	BusinessID     int           `json:"business_id,omitempty"`
	PayloadSize    int           `json:"payload_size,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// RecentError is the projection returned by Manager.Recent.
type RecentError struct {
	ErrorCode       string    `json:"errorCode"`
	Title           string    `json:"title"`
	LastSeenAt      time.Time `json:"lastSeenAt"`
	OccurrenceCount int       `json:"occurrenceCount"`
	Severity        Severity  `json:"severity"`
	Area            Area      `json:"area"`
}
