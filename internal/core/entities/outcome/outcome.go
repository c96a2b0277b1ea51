package outcome

import (
	"fmt"
	"net/http"
	"time"
)

// Kind describes why a probe produced no usable response.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindNetworkUnreachable
	KindRelayError
	KindProtocolError // the server answered, but with an error page
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindTimeout:
		return "timeout"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindRelayError:
		return "relay_error"
	case KindProtocolError:
		return "protocol_error"
	}
	return fmt.Sprintf("%d", k)
}

// Outcome is the raw result of a single probe attempt.
// It is either Responded or Failed.
type Outcome interface {
	Elapsed() time.Duration
	isOutcome()
}

type Responded struct {
	StatusCode int
	StatusText string
	Headers    http.Header
	Body       string
	Took       time.Duration
}

func (r Responded) Elapsed() time.Duration {
	return r.Took
}

func (Responded) isOutcome() {}

type Failed struct {
	Kind    Kind
	Message string
	Took    time.Duration
}

func (f Failed) Elapsed() time.Duration {
	return f.Took
}

func (Failed) isOutcome() {}

func NewResponded(code int, text string, headers http.Header, body string, took time.Duration) Responded {
	return Responded{
		StatusCode: code,
		StatusText: text,
		Headers:    headers,
		Body:       body,
		Took:       took,
	}
}

func NewFailed(kind Kind, message string, took time.Duration) Failed {
	return Failed{
		Kind:    kind,
		Message: message,
		Took:    took,
	}
}
