package verdict

import (
	"fmt"
	"time"
)

type State int

const (
	Checking State = iota
	Online
	Offline
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Online:
		return "online"
	case Offline:
		return "offline"
	}
	return fmt.Sprintf("%d", s)
}

// Cause tells what made the server look offline.
type Cause string

const (
	CauseNone               Cause = ""
	CauseTimeout            Cause = "timeout"
	CauseNetworkUnreachable Cause = "network_unreachable"
	CauseProtocol           Cause = "protocol_error"
	CauseRelay              Cause = "relay_error"
	CauseUnknown            Cause = "unknown"
	CauseNoConnectivity     Cause = "no_connectivity"
)

const (
	ReasonActive         = "Server active"
	ReasonChecking       = "Checking..."
	ReasonNoConnectivity = "no internet connection"
)

type Verdict struct {
	State   State
	Reason  string
	Cause   Cause
	Elapsed time.Duration
	Timed   bool // whether Elapsed was measured
}

var Blank Verdict // nolint: gochecknoglobals

func NewChecking() Verdict {
	return Verdict{
		State:  Checking,
		Reason: ReasonChecking,
	}
}

func NewOnline(elapsed time.Duration) Verdict {
	return Verdict{
		State:   Online,
		Reason:  ReasonActive,
		Elapsed: elapsed,
		Timed:   true,
	}
}

func NewOffline(reason string, cause Cause, elapsed time.Duration) Verdict {
	return Verdict{
		State:   Offline,
		Reason:  reason,
		Cause:   cause,
		Elapsed: elapsed,
		Timed:   true,
	}
}

func NewDisconnected() Verdict {
	return Verdict{
		State:  Offline,
		Reason: ReasonNoConnectivity,
		Cause:  CauseNoConnectivity,
	}
}

func (v Verdict) IsOnline() bool {
	return v.State == Online
}

// ElapsedMillis returns the measured elapsed time in milliseconds,
// or false if the verdict carries no measurement.
func (v Verdict) ElapsedMillis() (int64, bool) {
	if !v.Timed {
		return 0, false
	}
	return v.Elapsed.Milliseconds(), true
}

func (v Verdict) String() string {
	return fmt.Sprintf("%s (%s)", v.State, v.Reason)
}
