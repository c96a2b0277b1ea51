package classifier_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/servermon/internal/classifier"
	"github.com/sergeii/servermon/internal/core/entities/outcome"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
)

func TestClassify_HealthyStatusCodesAreOnline(t *testing.T) {
	for code := 200; code < 400; code++ {
		out := outcome.NewResponded(code, http.StatusText(code), http.Header{}, "<html>Welcome</html>", time.Millisecond*42)
		got := classifier.Classify(out)
		assert.Equal(t, verdict.Online, got.State, "code %d", code)
		assert.Equal(t, "Server active", got.Reason)
		assert.Equal(t, time.Millisecond*42, got.Elapsed)
		assert.True(t, got.Timed)
	}
}

func TestClassify_UnhealthyStatusCodes(t *testing.T) {
	tests := []struct {
		code       int
		statusText string
		want       string
	}{
		{500, "Internal Server Error", "Internal Server Error"},
		{502, "Bad Gateway", "Bad Gateway"},
		{503, "Service Unavailable", "Service Unavailable"},
		{504, "Gateway Timeout", "Gateway Timeout"},
		{404, "Not Found", "Not Found"},
		{403, "Forbidden", "Forbidden"},
		{401, "Unauthorized", "Unauthorized"},
		{418, "I'm a teapot", "HTTP 418 I'm a teapot"},
		{520, "", "HTTP 520"},
		{199, "Weird", "HTTP 199 Weird"},
		{400, "Bad Request", "HTTP 400 Bad Request"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out := outcome.NewResponded(tt.code, tt.statusText, nil, "", time.Millisecond*10)
			got := classifier.Classify(out)
			assert.Equal(t, verdict.Offline, got.State)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, verdict.CauseProtocol, got.Cause)
			assert.Equal(t, time.Millisecond*10, got.Elapsed)
		})
	}
}

func TestClassify_StatusLabelIgnoresBody(t *testing.T) {
	out := outcome.NewResponded(503, "Service Unavailable", nil, "cloudflare bad gateway", 0)
	got := classifier.Classify(out)
	assert.Equal(t, "Service Unavailable", got.Reason)
}

func TestClassify_DisguisedErrorPages(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{
			"cloudflare bad gateway",
			200,
			"cloudflare ... Bad Gateway ... error 502",
			"Bad Gateway (detected from Cloudflare error page)",
		},
		{
			"cloudflare bad gateway without code",
			200,
			"<title>CloudFlare</title><h1>BAD GATEWAY</h1>",
			"Bad Gateway (detected from Cloudflare error page)",
		},
		{
			"cloudflare service unavailable",
			301,
			"Cloudflare: Service Unavailable",
			"Service Unavailable (detected from Cloudflare error page)",
		},
		{
			"cloudflare gateway timeout",
			200,
			"Cloudflare Ray ID 1234 gateway timeout",
			"Gateway Timeout (detected from Cloudflare error page)",
		},
		{
			"error code without marker",
			200,
			"<p>Error code 503</p>",
			"Service Unavailable (detected from error page)",
		},
		{
			"error 504 without marker",
			204,
			"upstream said ERROR 504",
			"Gateway Timeout (detected from error page)",
		},
		{
			"error 500 without marker",
			200,
			"Error 500: something broke",
			"Internal Server Error (detected from error page)",
		},
		{
			"error code 500 with marker",
			200,
			"cloudflare error code 500",
			"Internal Server Error (detected from Cloudflare error page)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := outcome.NewResponded(tt.code, "OK", http.Header{}, tt.body, time.Millisecond*300)
			got := classifier.Classify(out)
			assert.Equal(t, verdict.Offline, got.State)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, verdict.CauseProtocol, got.Cause)
			assert.Equal(t, time.Millisecond*300, got.Elapsed)
		})
	}
}

func TestClassify_PhraseWithoutMarkerIsOnline(t *testing.T) {
	bodies := []string{
		"Our bad gateway story",
		"service unavailable? never",
		"gateway timeout tips and tricks",
		"cloudflare customers welcome",
		"error 404 is not a server error",
	}
	for _, body := range bodies {
		out := outcome.NewResponded(200, "OK", nil, body, 0)
		got := classifier.Classify(out)
		assert.Equal(t, verdict.Online, got.State, body)
	}
}

func TestClassify_Failures(t *testing.T) {
	tests := []struct {
		name      string
		kind      outcome.Kind
		message   string
		wantCause verdict.Cause
		want      string
	}{
		{
			"timeout",
			outcome.KindTimeout,
			"aborted",
			verdict.CauseTimeout,
			"Timeout - server not responding",
		},
		{
			"network unreachable",
			outcome.KindNetworkUnreachable,
			"dial tcp: connection refused",
			verdict.CauseNetworkUnreachable,
			"Server inactive (network error)",
		},
		{
			"relay error",
			outcome.KindRelayError,
			"relay responded with 502",
			verdict.CauseRelay,
			"Server inactive: relay responded with 502",
		},
		{
			"error page reported by relay",
			outcome.KindProtocolError,
			"Bad Gateway (detected from Cloudflare error page)",
			verdict.CauseProtocol,
			"Bad Gateway (detected from Cloudflare error page)",
		},
		{
			"unknown",
			outcome.KindUnknown,
			"tls: handshake failure",
			verdict.CauseUnknown,
			"Server inactive: tls: handshake failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(outcome.NewFailed(tt.kind, tt.message, time.Second*10))
			assert.Equal(t, verdict.Offline, got.State)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, tt.wantCause, got.Cause)
			assert.Equal(t, time.Second*10, got.Elapsed)
		})
	}
}

func TestClassify_Scenarios(t *testing.T) {
	welcome := classifier.Classify(outcome.NewResponded(200, "OK", http.Header{}, "Welcome", time.Millisecond*120))
	assert.Equal(t, verdict.Verdict{
		State:   verdict.Online,
		Reason:  "Server active",
		Elapsed: time.Millisecond * 120,
		Timed:   true,
	}, welcome)

	disguised := classifier.Classify(
		outcome.NewResponded(200, "OK", http.Header{}, "cloudflare ... Bad Gateway ... error 502", time.Millisecond*300),
	)
	assert.Equal(t, verdict.Verdict{
		State:   verdict.Offline,
		Reason:  "Bad Gateway (detected from Cloudflare error page)",
		Cause:   verdict.CauseProtocol,
		Elapsed: time.Millisecond * 300,
		Timed:   true,
	}, disguised)

	timeout := classifier.Classify(outcome.NewFailed(outcome.KindTimeout, "aborted", time.Second*10))
	assert.Equal(t, verdict.Verdict{
		State:   verdict.Offline,
		Reason:  "Timeout - server not responding",
		Cause:   verdict.CauseTimeout,
		Elapsed: time.Second * 10,
		Timed:   true,
	}, timeout)
}

func TestClassify_IsPure(t *testing.T) {
	headers := http.Header{"Server": []string{"cloudflare"}, "Content-Type": []string{"text/html"}}
	out := outcome.NewResponded(200, "OK", headers, "Cloudflare: Bad Gateway", time.Millisecond*5)

	first := classifier.Classify(out)
	for range 10 {
		assert.Equal(t, first, classifier.Classify(out))
	}
	assert.Equal(t, http.Header{"Server": []string{"cloudflare"}, "Content-Type": []string{"text/html"}}, out.Headers)
	assert.Equal(t, "Cloudflare: Bad Gateway", out.Body)
}

func TestClassify_NeverChecking(t *testing.T) {
	outs := []outcome.Outcome{
		outcome.NewResponded(200, "OK", nil, "", 0),
		outcome.NewResponded(500, "", nil, "", 0),
		outcome.NewFailed(outcome.KindTimeout, "", 0),
		outcome.NewFailed(outcome.KindUnknown, "", 0),
	}
	for _, out := range outs {
		assert.NotEqual(t, verdict.Checking, classifier.Classify(out).State)
	}
}
