package classifier

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Some reverse proxies answer 200 while serving their own error page.
// The checks below sniff the body for such pages. They are a heuristic:
// a regular page that happens to mention these phrases will be flagged too.

const providerMarker = "cloudflare"

type signature struct {
	label  string
	phrase string // only counts together with providerMarker
	code   string
}

var signatures = []signature{ // nolint: gochecknoglobals
	{label: "Bad Gateway", phrase: "bad gateway", code: "502"},
	{label: "Service Unavailable", phrase: "service unavailable", code: "503"},
	{label: "Gateway Timeout", phrase: "gateway timeout", code: "504"},
	{label: "Internal Server Error", code: "500"},
}

func (s signature) matches(body string, marked bool) bool {
	if marked && s.phrase != "" && strings.Contains(body, s.phrase) {
		return true
	}
	return strings.Contains(body, "error "+s.code) || strings.Contains(body, "error code "+s.code)
}

// DetectErrorPage looks for a known error page signature in the body
// and returns the reason it maps to.
func DetectErrorPage(body string) (string, bool) {
	if body == "" {
		return "", false
	}
	folded := cases.Fold().String(body)
	marked := strings.Contains(folded, providerMarker)
	for _, sig := range signatures {
		if !sig.matches(folded, marked) {
			continue
		}
		if marked {
			return fmt.Sprintf("%s (detected from Cloudflare error page)", sig.label), true
		}
		return fmt.Sprintf("%s (detected from error page)", sig.label), true
	}
	return "", false
}
