package command

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is an instruction sent to a running monitor.
type Command int

const (
	Refresh Command = iota
	Pause
	Resume
)

func (c Command) String() string {
	switch c {
	case Refresh:
		return "refresh"
	case Pause:
		return "pause"
	case Resume:
		return "resume"
	}
	return fmt.Sprintf("%d", c)
}

func Parse(name string) (Command, error) {
	switch name {
	case "refresh":
		return Refresh, nil
	case "pause":
		return Pause, nil
	case "resume":
		return Resume, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}
