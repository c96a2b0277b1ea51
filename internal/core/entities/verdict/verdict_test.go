package verdict_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/servermon/internal/core/entities/verdict"
)

func TestVerdict_ElapsedMillis(t *testing.T) {
	tests := []struct {
		name   string
		v      verdict.Verdict
		wantMs int64
		wantOk bool
	}{
		{"online", verdict.NewOnline(time.Millisecond * 1500), 1500, true},
		{"offline", verdict.NewOffline("Forbidden", verdict.CauseProtocol, time.Millisecond*7), 7, true},
		{"offline instantly", verdict.NewOffline("Bad Gateway", verdict.CauseProtocol, 0), 0, true},
		{"checking", verdict.NewChecking(), 0, false},
		{"disconnected", verdict.NewDisconnected(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, ok := tt.v.ElapsedMillis()
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantMs, ms)
		})
	}
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "online (Server active)", verdict.NewOnline(time.Second).String())
	assert.Equal(t, "checking (Checking...)", verdict.NewChecking().String())
	assert.Equal(t, "offline (no internet connection)", verdict.NewDisconnected().String())
}

func TestVerdict_Disconnected(t *testing.T) {
	v := verdict.NewDisconnected()
	assert.Equal(t, verdict.Offline, v.State)
	assert.Equal(t, verdict.CauseNoConnectivity, v.Cause)
	assert.False(t, v.IsOnline())
}
