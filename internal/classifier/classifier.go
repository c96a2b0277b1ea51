// Package classifier turns raw probe outcomes into health verdicts.
//
// Classification is a pure function of its input: it performs no I/O and
// returns the same verdict for the same outcome.
package classifier

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sergeii/servermon/internal/core/entities/outcome"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
)

const (
	ReasonTimeout     = "Timeout - server not responding"
	ReasonUnreachable = "Server inactive (network error)"
	reasonInactiveFmt = "Server inactive: %s"
)

var statusLabels = map[int]string{ // nolint: gochecknoglobals
	http.StatusBadGateway:          "Bad Gateway",
	http.StatusServiceUnavailable:  "Service Unavailable",
	http.StatusGatewayTimeout:      "Gateway Timeout",
	http.StatusInternalServerError: "Internal Server Error",
	http.StatusNotFound:            "Not Found",
	http.StatusForbidden:           "Forbidden",
	http.StatusUnauthorized:        "Unauthorized",
}

// Classify decides whether the probed server is online.
func Classify(out outcome.Outcome) verdict.Verdict {
	switch o := out.(type) {
	case outcome.Failed:
		return classifyFailure(o)
	case outcome.Responded:
		return classifyResponse(o)
	}
	return verdict.NewOffline(fmt.Sprintf(reasonInactiveFmt, "unrecognized probe outcome"), verdict.CauseUnknown, 0)
}

func classifyFailure(o outcome.Failed) verdict.Verdict {
	switch o.Kind { // nolint: exhaustive
	case outcome.KindTimeout:
		return verdict.NewOffline(ReasonTimeout, verdict.CauseTimeout, o.Took)
	case outcome.KindNetworkUnreachable:
		return verdict.NewOffline(ReasonUnreachable, verdict.CauseNetworkUnreachable, o.Took)
	case outcome.KindProtocolError:
		return verdict.NewOffline(o.Message, verdict.CauseProtocol, o.Took)
	case outcome.KindRelayError:
		return verdict.NewOffline(fmt.Sprintf(reasonInactiveFmt, o.Message), verdict.CauseRelay, o.Took)
	default:
		return verdict.NewOffline(fmt.Sprintf(reasonInactiveFmt, o.Message), verdict.CauseUnknown, o.Took)
	}
}

func classifyResponse(o outcome.Responded) verdict.Verdict {
	if IsHealthyStatus(o.StatusCode) {
		if reason, ok := DetectErrorPage(o.Body); ok {
			return verdict.NewOffline(reason, verdict.CauseProtocol, o.Took)
		}
		return verdict.NewOnline(o.Took)
	}
	return verdict.NewOffline(StatusLabel(o.StatusCode, o.StatusText), verdict.CauseProtocol, o.Took)
}

// IsHealthyStatus reports whether the status code falls into [200,400).
func IsHealthyStatus(code int) bool {
	return code >= 200 && code < 400
}

// StatusLabel names an unhealthy status code.
func StatusLabel(code int, text string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return strings.TrimSpace(fmt.Sprintf("HTTP %d %s", code, text))
}
