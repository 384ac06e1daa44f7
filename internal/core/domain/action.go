package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/olusolaa/rds-power-scheduler/internal/errors"
)

type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// ParseAction resolves a raw action string, including the aliases the
// original scheduling contract accepted, into a canonical Action. It is
// case-insensitive and pure.
func ParseAction(raw string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "start", "enable", "running":
		return ActionStart, nil
	case "stop", "disable", "stopped":
		return ActionStop, nil
	default:
		return "", apperrors.NewUserFacing(
			apperrors.CodeInvalidAction,
			fmt.Sprintf("unrecognized action %q", raw),
			"Use one of: start, enable, running, stop, disable, stopped.",
		)
	}
}

func (a Action) String() string {
	return string(a)
}

// DesiredState names the steady lifecycle class this action drives toward.
func (a Action) DesiredState() StateClass {
	if a == ActionStart {
		return StateClassRunning
	}
	return StateClassStopped
}

// Verb is the present-progressive form used in logs and reasons.
func (a Action) Verb() string {
	if a == ActionStart {
		return "starting"
	}
	return "stopping"
}
