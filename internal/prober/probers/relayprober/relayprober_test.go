package relayprober_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeii/servermon/internal/classifier"
	"github.com/sergeii/servermon/internal/core/entities/outcome"
	"github.com/sergeii/servermon/internal/core/entities/verdict"
	"github.com/sergeii/servermon/internal/prober/probers/relayprober"
	"github.com/sergeii/servermon/internal/relay"
)

func serveRelay(t *testing.T, status int, body string) string {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body) // nolint: errcheck
	}))
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestRelayProber_Responded(t *testing.T) {
	url := serveRelay(t, 200, `{
		"success": true,
		"status": 200,
		"statusText": "OK",
		"responseTime": 120,
		"timestamp": "2025-01-02T03:04:05.000Z",
		"serverUrl": "http://tassby.kozow.com:8074/",
		"contentLength": 7,
		"headers": {"content-type": "text/html"},
		"error": null,
		"responseSnippet": "Welcome"
	}`)

	prober := relayprober.New(relayprober.Opts{URL: url}, clockwork.NewFakeClock())
	out := prober.Probe(context.TODO())

	resp, ok := out.(outcome.Responded)
	require.True(t, ok)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.StatusText)
	assert.Equal(t, "Welcome", resp.Body)
	assert.Equal(t, "text/html", resp.Headers.Get("Content-Type"))
	assert.Equal(t, time.Millisecond*120, resp.Took)

	assert.Equal(t, verdict.Online, classifier.Classify(out).State)
}

func TestRelayProber_DisguisedErrorInSnippet(t *testing.T) {
	url := serveRelay(t, 200, `{
		"success": true,
		"status": 200,
		"statusText": "OK",
		"responseTime": 300,
		"timestamp": "2025-01-02T03:04:05.000Z",
		"serverUrl": "http://tassby.kozow.com:8074/",
		"contentLength": 1024,
		"headers": {},
		"error": null,
		"responseSnippet": "<title>cloudflare</title> Bad Gateway error 502"
	}`)

	prober := relayprober.New(relayprober.Opts{URL: url}, clockwork.NewFakeClock())
	got := classifier.Classify(prober.Probe(context.TODO()))

	assert.Equal(t, verdict.Offline, got.State)
	assert.Equal(t, "Bad Gateway (detected from Cloudflare error page)", got.Reason)
	assert.Equal(t, time.Millisecond*300, got.Elapsed)
}

func TestRelayProber_TargetUnreachable(t *testing.T) {
	url := serveRelay(t, 200, `{
		"success": false,
		"error": "fetch failed",
		"timestamp": "2025-01-02T03:04:05.000Z",
		"serverUrl": "http://tassby.kozow.com:8074/",
		"responseTime": 15,
		"status": null,
		"statusText": null
	}`)

	prober := relayprober.New(relayprober.Opts{URL: url}, clockwork.NewFakeClock())
	out := prober.Probe(context.TODO())

	failed, ok := out.(outcome.Failed)
	require.True(t, ok)
	assert.Equal(t, outcome.KindUnknown, failed.Kind)
	assert.Equal(t, "fetch failed", failed.Message)
	assert.Equal(t, "Server inactive: fetch failed", classifier.Classify(out).Reason)
}

func TestRelayProber_RelayErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			"non-200 wrapper",
			http.StatusBadGateway,
			"<html>bad gateway</html>",
			"relay responded with HTTP 502",
		},
		{
			"malformed envelope",
			http.StatusOK,
			"<html>not json</html>",
			"malformed relay response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := serveRelay(t, tt.status, tt.body)
			prober := relayprober.New(relayprober.Opts{URL: url}, clockwork.NewFakeClock())
			out := prober.Probe(context.TODO())

			failed, ok := out.(outcome.Failed)
			require.True(t, ok)
			assert.Equal(t, outcome.KindRelayError, failed.Kind)
			assert.Equal(t, tt.wantMsg, failed.Message)

			got := classifier.Classify(out)
			assert.Equal(t, verdict.CauseRelay, got.Cause)
		})
	}
}

func TestRelayProber_RelayDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	prober := relayprober.New(relayprober.Opts{URL: url}, clockwork.NewFakeClock())
	out := prober.Probe(context.TODO())

	failed, ok := out.(outcome.Failed)
	require.True(t, ok)
	assert.Equal(t, outcome.KindRelayError, failed.Kind)
}

func TestRelayProber_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.TODO(), time.Millisecond*50)
	defer cancel()

	prober := relayprober.New(relayprober.Opts{URL: ts.URL}, clockwork.NewRealClock())
	out := prober.Probe(ctx)

	failed, ok := out.(outcome.Failed)
	require.True(t, ok)
	assert.Equal(t, outcome.KindTimeout, failed.Kind)
}

func TestRelayProber_ErrorPageBeyondSnippet(t *testing.T) {
	page := "<html><head><title>502: Bad gateway</title><style>" +
		strings.Repeat("body{margin:0;padding:0}", 125) +
		"</style></head><body><p>Performance &amp; security by Cloudflare</p></body></html>"
	require.Greater(t, strings.Index(page, "Cloudflare"), relay.DefaultSnippetSize)

	served := outcome.NewResponded(200, "OK", nil, page, time.Millisecond*250)
	env := relay.NewEnvelope("http://tassby.kozow.com:8074/", served, time.Now(), relay.DefaultSnippetSize)
	encoded, err := json.Marshal(env)
	require.NoError(t, err)
	url := serveRelay(t, 200, string(encoded))

	prober := relayprober.New(relayprober.Opts{URL: url}, clockwork.NewFakeClock())
	got := classifier.Classify(prober.Probe(context.TODO()))

	assert.Equal(t, verdict.Offline, got.State)
	assert.Equal(t, "Bad Gateway (detected from Cloudflare error page)", got.Reason)
	assert.Equal(t, verdict.CauseProtocol, got.Cause)
	assert.Equal(t, time.Millisecond*250, got.Elapsed)
	assert.Equal(t, classifier.Classify(served), got)
}
