package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sergeii/servermon/internal/controller"
)

var (
	idle      = controller.State{Connected: true}
	scheduled = controller.State{Running: true, Scheduled: true, Connected: true}
	offline   = controller.State{Running: true, Connected: false}
	hidden    = controller.State{Running: true, Connected: true, Hidden: true}
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name     string
		state    controller.State
		event    controller.Event
		wantNext controller.State
		wantEff  controller.Effects
	}{
		{
			"start probes and schedules",
			idle,
			controller.EventStart,
			scheduled,
			controller.Effects{Probe: true, Schedule: true},
		},
		{
			"start again replaces the schedule",
			scheduled,
			controller.EventStart,
			scheduled,
			controller.Effects{Unschedule: true, Probe: true, Schedule: true},
		},
		{
			"start without connectivity reports it",
			controller.State{Connected: false},
			controller.EventStart,
			offline,
			controller.Effects{Disconnected: true},
		},
		{
			"start while hidden probes without schedule",
			controller.State{Connected: true, Hidden: true},
			controller.EventStart,
			hidden,
			controller.Effects{Probe: true},
		},
		{
			"stop cancels the schedule",
			scheduled,
			controller.EventStop,
			idle,
			controller.Effects{Unschedule: true},
		},
		{
			"stop is idempotent",
			idle,
			controller.EventStop,
			idle,
			controller.Effects{},
		},
		{
			"tick probes",
			scheduled,
			controller.EventTick,
			scheduled,
			controller.Effects{Probe: true},
		},
		{
			"stale tick is ignored",
			idle,
			controller.EventTick,
			idle,
			controller.Effects{},
		},
		{
			"refresh probes",
			scheduled,
			controller.EventRefresh,
			scheduled,
			controller.Effects{Probe: true},
		},
		{
			"refresh probes even when stopped",
			idle,
			controller.EventRefresh,
			idle,
			controller.Effects{Probe: true},
		},
		{
			"refresh without connectivity reports it",
			offline,
			controller.EventRefresh,
			offline,
			controller.Effects{Disconnected: true},
		},
		{
			"connectivity loss suspends the schedule",
			scheduled,
			controller.EventConnectivityLost,
			offline,
			controller.Effects{Unschedule: true, Disconnected: true},
		},
		{
			"repeated connectivity loss is ignored",
			offline,
			controller.EventConnectivityLost,
			offline,
			controller.Effects{},
		},
		{
			"connectivity regain probes and schedules",
			offline,
			controller.EventConnectivityRestored,
			scheduled,
			controller.Effects{Probe: true, Schedule: true},
		},
		{
			"connectivity regain while stopped only records it",
			controller.State{Connected: false},
			controller.EventConnectivityRestored,
			idle,
			controller.Effects{},
		},
		{
			"connectivity regain while hidden probes without schedule",
			controller.State{Running: true, Hidden: true},
			controller.EventConnectivityRestored,
			hidden,
			controller.Effects{Probe: true},
		},
		{
			"hiding stops the schedule",
			scheduled,
			controller.EventHidden,
			hidden,
			controller.Effects{Unschedule: true},
		},
		{
			"hidden ticks are ignored",
			hidden,
			controller.EventTick,
			hidden,
			controller.Effects{},
		},
		{
			"showing probes and schedules",
			hidden,
			controller.EventVisible,
			scheduled,
			controller.Effects{Probe: true, Schedule: true},
		},
		{
			"showing without connectivity does nothing",
			controller.State{Running: true, Hidden: true},
			controller.EventVisible,
			offline,
			controller.Effects{},
		},
		{
			"showing when already visible does nothing",
			scheduled,
			controller.EventVisible,
			scheduled,
			controller.Effects{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, eff := controller.Transition(tt.state, tt.event)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantEff, eff)
		})
	}
}

func TestTransition_AtMostOneSchedule(t *testing.T) {
	events := []controller.Event{
		controller.EventStart,
		controller.EventStart,
		controller.EventRefresh,
		controller.EventHidden,
		controller.EventVisible,
		controller.EventVisible,
		controller.EventConnectivityLost,
		controller.EventConnectivityRestored,
		controller.EventConnectivityRestored,
		controller.EventStart,
		controller.EventTick,
		controller.EventStop,
		controller.EventStop,
		controller.EventStart,
	}
	state := controller.InitialState()
	schedules := 0
	for _, ev := range events {
		next, eff := controller.Transition(state, ev)
		if eff.Unschedule {
			assert.True(t, state.Scheduled, "unschedule without schedule on %s", ev)
			schedules--
		}
		if eff.Schedule {
			schedules++
		}
		assert.LessOrEqual(t, schedules, 1, "more than one schedule after %s", ev)
		assert.Equal(t, next.Scheduled, schedules == 1, "schedule count mismatch after %s", ev)
		state = next
	}
}

func TestTransition_NoProbeWithoutConnectivity(t *testing.T) {
	events := []controller.Event{
		controller.EventStart,
		controller.EventTick,
		controller.EventRefresh,
		controller.EventVisible,
		controller.EventHidden,
		controller.EventVisible,
	}
	state := controller.State{Running: true, Connected: false}
	for _, ev := range events {
		next, eff := controller.Transition(state, ev)
		assert.False(t, eff.Probe, ev.String())
		assert.False(t, eff.Schedule, ev.String())
		state = next
	}
}

func TestEffects_None(t *testing.T) {
	assert.True(t, controller.Effects{}.None())
	assert.False(t, controller.Effects{Probe: true}.None())
}
