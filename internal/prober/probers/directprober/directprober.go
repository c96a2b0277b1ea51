package directprober

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/sergeii/servermon/internal/core/entities/outcome"
	"github.com/sergeii/servermon/internal/prober/probers"
)

const defaultMaxBodySize = 4 << 20

type Opts struct {
	URL         string
	UserAgent   string
	Accept      string
	MaxBodySize int64
}

type DirectProber struct {
	opts   Opts
	client *http.Client
	clock  clockwork.Clock
}

func New(opts Opts, clock clockwork.Clock) DirectProber {
	if opts.UserAgent == "" {
		opts.UserAgent = probers.DefaultUserAgent
	}
	if opts.Accept == "" {
		opts.Accept = probers.DefaultAccept
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	return DirectProber{
		opts:   opts,
		client: &http.Client{},
		clock:  clock,
	}
}

func (p DirectProber) Probe(ctx context.Context) outcome.Outcome {
	before := p.clock.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.URL, nil)
	if err != nil {
		return outcome.NewFailed(outcome.KindUnknown, err.Error(), p.clock.Since(before))
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)
	req.Header.Set("Accept", p.opts.Accept)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.client.Do(req)
	if err != nil {
		return outcome.NewFailed(probers.ErrorKind(err), err.Error(), p.clock.Since(before))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.opts.MaxBodySize))
	if err != nil {
		return outcome.NewFailed(probers.ErrorKind(err), err.Error(), p.clock.Since(before))
	}

	return outcome.NewResponded(
		resp.StatusCode,
		statusText(resp),
		resp.Header.Clone(),
		string(body),
		p.clock.Since(before),
	)
}

// statusText extracts the reason phrase the server actually sent,
// e.g. "Bad Gateway" from "502 Bad Gateway".
func statusText(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}
