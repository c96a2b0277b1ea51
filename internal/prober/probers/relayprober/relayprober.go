package relayprober

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/sergeii/servermon/internal/core/entities/outcome"
	"github.com/sergeii/servermon/internal/prober/probers"
	"github.com/sergeii/servermon/internal/relay"
)

type Opts struct {
	URL string
}

// RelayProber asks a relay to probe the server and adapts the relay's answer.
type RelayProber struct {
	opts   Opts
	client *http.Client
	clock  clockwork.Clock
}

func New(opts Opts, clock clockwork.Clock) RelayProber {
	return RelayProber{
		opts:   opts,
		client: &http.Client{},
		clock:  clock,
	}
}

func (p RelayProber) Probe(ctx context.Context) outcome.Outcome {
	before := p.clock.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.URL, nil)
	if err != nil {
		return outcome.NewFailed(outcome.KindRelayError, err.Error(), p.clock.Since(before))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := p.client.Do(req)
	if err != nil {
		if kind := probers.ErrorKind(err); kind == outcome.KindTimeout {
			return outcome.NewFailed(kind, err.Error(), p.clock.Since(before))
		}
		return outcome.NewFailed(outcome.KindRelayError, err.Error(), p.clock.Since(before))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("relay responded with HTTP %d", resp.StatusCode)
		return outcome.NewFailed(outcome.KindRelayError, msg, p.clock.Since(before))
	}

	var env relay.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if kind := probers.ErrorKind(err); kind == outcome.KindTimeout {
			return outcome.NewFailed(kind, err.Error(), p.clock.Since(before))
		}
		return outcome.NewFailed(outcome.KindRelayError, "malformed relay response", p.clock.Since(before))
	}

	return env.Outcome()
}
