package controller

import (
	"fmt"
)

type Event int

const (
	EventStart Event = iota
	EventStop
	EventTick
	EventRefresh
	EventConnectivityLost
	EventConnectivityRestored
	EventHidden
	EventVisible
)

func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventTick:
		return "tick"
	case EventRefresh:
		return "refresh"
	case EventConnectivityLost:
		return "connectivity_lost"
	case EventConnectivityRestored:
		return "connectivity_restored"
	case EventHidden:
		return "hidden"
	case EventVisible:
		return "visible"
	}
	return fmt.Sprintf("%d", e)
}

type State struct {
	Running   bool // started and not stopped
	Scheduled bool // a recurring probe schedule is active
	Connected bool
	Hidden    bool
}

// InitialState is the state of a fresh controller.
// Connectivity is assumed until told otherwise.
func InitialState() State {
	return State{Connected: true}
}

// Effects lists what must happen as a result of a transition,
// in the order the fields are declared.
type Effects struct {
	Unschedule   bool
	Disconnected bool // report that there is no connectivity
	Probe        bool
	Schedule     bool
}

func (e Effects) None() bool {
	return e == Effects{}
}

// Transition computes the next state of the controller for the event.
// It has no side effects.
func Transition(s State, ev Event) (State, Effects) {
	next := s
	var eff Effects

	switch ev {
	case EventStart:
		next.Running = true
		eff.Unschedule = s.Scheduled
		next.Scheduled = false
		if !s.Connected {
			eff.Disconnected = true
			return next, eff
		}
		eff.Probe = true
		if !s.Hidden {
			eff.Schedule = true
			next.Scheduled = true
		}
	case EventStop:
		next.Running = false
		eff.Unschedule = s.Scheduled
		next.Scheduled = false
	case EventTick:
		// ticks may still arrive from a schedule that has just been cancelled
		if s.Scheduled && s.Connected && !s.Hidden {
			eff.Probe = true
		}
	case EventRefresh:
		if !s.Connected {
			eff.Disconnected = true
			return next, eff
		}
		eff.Probe = true
	case EventConnectivityLost:
		if !s.Connected {
			return next, eff
		}
		next.Connected = false
		eff.Unschedule = s.Scheduled
		next.Scheduled = false
		eff.Disconnected = true
	case EventConnectivityRestored:
		if s.Connected {
			return next, eff
		}
		next.Connected = true
		if !s.Running {
			return next, eff
		}
		eff.Probe = true
		if !s.Hidden {
			eff.Schedule = true
			next.Scheduled = true
		}
	case EventHidden:
		if s.Hidden {
			return next, eff
		}
		next.Hidden = true
		eff.Unschedule = s.Scheduled
		next.Scheduled = false
	case EventVisible:
		if !s.Hidden {
			return next, eff
		}
		next.Hidden = false
		if s.Running && s.Connected {
			eff.Probe = true
			eff.Unschedule = s.Scheduled
			eff.Schedule = true
			next.Scheduled = true
		}
	}

	return next, eff
}
