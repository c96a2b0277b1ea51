// Package relay defines the wire shape of the relay endpoint.
//
// The relay probes the target on behalf of a client that cannot reach it
// directly (e.g. because of cross-origin restrictions) and always answers
// 200 with an Envelope, whatever the target did.
package relay

import (
	"net/http"
	"strings"
	"time"

	"github.com/sergeii/servermon/internal/classifier"
	"github.com/sergeii/servermon/internal/core/entities/outcome"
)

const DefaultSnippetSize = 2048

type Envelope struct {
	Success         bool              `json:"success"`
	Status          *int              `json:"status"`
	StatusText      *string           `json:"statusText"`
	ResponseTime    int64             `json:"responseTime"`
	Timestamp       time.Time         `json:"timestamp"`
	ServerURL       string            `json:"serverUrl"`
	ContentLength   int               `json:"contentLength"`
	Headers         map[string]string `json:"headers"`
	Error           *string           `json:"error"`
	ResponseSnippet string            `json:"responseSnippet,omitempty"`
}

func NewEnvelope(target string, out outcome.Outcome, now time.Time, snippetSize int) Envelope {
	env := Envelope{
		ResponseTime: out.Elapsed().Milliseconds(),
		Timestamp:    now.UTC(),
		ServerURL:    target,
		Headers:      map[string]string{},
	}

	switch o := out.(type) {
	case outcome.Responded:
		code, text := o.StatusCode, o.StatusText
		env.Status = &code
		env.StatusText = &text
		env.Success = classifier.IsHealthyStatus(code)
		env.ContentLength = len(o.Body)
		env.Headers = flattenHeaders(o.Headers)
		env.ResponseSnippet = snippet(o.Body, snippetSize)
		switch {
		case !env.Success:
			label := classifier.StatusLabel(code, text)
			env.Error = &label
		default:
			// the snippet may cut off the signature, so the full body is checked here
			if reason, ok := classifier.DetectErrorPage(o.Body); ok {
				env.Success = false
				env.Error = &reason
			}
		}
	case outcome.Failed:
		msg := o.Message
		env.Error = &msg
	}

	return env
}

// Outcome converts the envelope back into a probe outcome,
// as if the target had been probed directly.
func (e Envelope) Outcome() outcome.Outcome {
	took := time.Duration(e.ResponseTime) * time.Millisecond
	if e.Status == nil {
		msg := "relay could not reach the server"
		if e.Error != nil && *e.Error != "" {
			msg = *e.Error
		}
		return outcome.NewFailed(outcome.KindUnknown, msg, took)
	}
	// a healthy status reported as unsuccessful is an error page found by the relay
	if classifier.IsHealthyStatus(*e.Status) && !e.Success && e.Error != nil && *e.Error != "" {
		return outcome.NewFailed(outcome.KindProtocolError, *e.Error, took)
	}
	var text string
	if e.StatusText != nil {
		text = *e.StatusText
	}
	headers := make(http.Header, len(e.Headers))
	for k, v := range e.Headers {
		headers.Set(k, v)
	}
	return outcome.NewResponded(*e.Status, text, headers, e.ResponseSnippet, took)
}

func flattenHeaders(h http.Header) map[string]string {
	flat := make(map[string]string, len(h))
	for k, v := range h {
		flat[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return flat
}

func snippet(body string, size int) string {
	if size <= 0 || len(body) <= size {
		return body
	}
	return strings.ToValidUTF8(body[:size], "")
}
