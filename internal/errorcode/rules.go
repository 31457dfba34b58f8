package errorcode

import "strings"

// curatedRule ties a hand-authored code to the keywords that select it.
// Rules are evaluated in declaration order and the first hit wins; the
// order is a deterministic tie-break, not a severity ranking.
type curatedRule struct {
	code     string
	keywords []string
}

// curatedRules only fire for codes already present in the registry, so
// operators opt in by curating the registry file.
var curatedRules = []curatedRule{
	{code: "POS-SCAN-001", keywords: []string{"barcode", "scan"}},
	{code: "POS-PAY-001", keywords: []string{"payment", "charge declined"}},
	{code: "AUTH-TOKEN-001", keywords: []string{"jwterror", "token expired", "signature"}},
	{code: "AUTH-LOGIN-001", keywords: []string{"invalid credentials", "login failed"}},
	{code: "DB-LOCK-001", keywords: []string{"database is locked", "deadlock"}},
	{code: "PRINT-OFFLINE-001", keywords: []string{"printer offline", "printer not found"}},
	{code: "REPORT-EXPORT-001", keywords: []string{"export failed", "xlsx"}},
	{code: "INVENTORY-STOCK-001", keywords: []string{"insufficient stock", "stock below"}},
}

// areaRule maps a substring probe to an area. Precedence matters: several
// probes can be present in one context at once (e.g. "/api/pos/customers"),
// so the first matching rule in this fixed order decides.
type areaRule struct {
	area       Area
	substrings []string
}

var areaRules = []areaRule{
	{AreaAuth, []string{"/auth", "login", "token", "jwt"}},
	{AreaPOS, []string{"/pos", "/sales", "/sale", "checkout"}},
	{AreaReport, []string{"/reports", "/report", "/export"}},
	{AreaSettings, []string{"/logo", "/settings", "/business"}},
	{AreaCustomer, []string{"/customers", "/customer"}},
	{AreaInventory, []string{"/products", "/product", "/categories"}},
	{AreaPrint, []string{"print", "printer", "receipt"}},
	{AreaDB, []string{"database", "sqlite", "sql", "constraint"}},
}

// userMessages is the generic per-area user-facing text for auto-generated
// entries. AreaUnknown doubles as the fallback.
var userMessages = map[Area]string{
	AreaPOS:       "Something went wrong while processing the sale. Please try again.",
	AreaSettings:  "Business settings could not be updated. Please try again.",
	AreaReport:    "The report could not be generated. Please try again later.",
	AreaDB:        "A storage problem occurred. Your last action may not have been saved.",
	AreaAuth:      "Sign-in problem. Please sign in again.",
	AreaPrint:     "The receipt could not be printed. Check the printer and retry.",
	AreaInventory: "The product catalog could not be updated. Please try again.",
	AreaCustomer:  "The customer record could not be processed. Please try again.",
	AreaUnknown:   "An unexpected error occurred. Please try again or contact support.",
}

// matchText builds the haystack curated keywords are probed against.
func matchText(ctx Context) string {
	return strings.ToLower(ctx.ErrorType + " " + ctx.Endpoint)
}

// containsFold reports whether the lower-cased haystack contains the
// keyword, tolerating keywords authored in any case.
func containsFold(text, keyword string) bool {
	return strings.Contains(text, strings.ToLower(keyword))
}

// classifyArea derives an area from the endpoint and error type using
// the fixed precedence order above.
func classifyArea(ctx Context) Area {
	text := matchText(ctx)
	for _, r := range areaRules {
		for _, sub := range r.substrings {
			if strings.Contains(text, sub) {
				return r.area
			}
		}
	}
	return AreaUnknown
}

// userMessageFor returns the generic message for an area, falling back to
// the UNKNOWN text for areas with no dedicated entry.
func userMessageFor(area Area) string {
	if msg, ok := userMessages[area]; ok {
		return msg
	}
	return userMessages[AreaUnknown]
}
