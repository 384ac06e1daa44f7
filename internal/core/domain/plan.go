package domain

import "fmt"

type Decision string

const (
	DecisionAct                  Decision = "ACT"
	DecisionSkipAlreadyDesired   Decision = "SKIP_ALREADY_DESIRED"
	DecisionSkipTransitional     Decision = "SKIP_TRANSITIONAL"
	DecisionSkipUnsupportedState Decision = "SKIP_UNSUPPORTED_STATE"
)

type TransitionPlan struct {
	Decision Decision
	Reason   string
}

// PlanTransition decides what to do with one resource purely from its
// reported lifecycle state. It is total and deterministic: every input
// yields a plan, and states outside the lifecycle table are skipped, never
// acted on.
func PlanTransition(ref ResourceRef, action Action) TransitionPlan {
	class := ClassifyState(ref.CurrentState)

	switch class {
	case action.DesiredState():
		return TransitionPlan{
			Decision: DecisionSkipAlreadyDesired,
			Reason:   fmt.Sprintf("already %s (state %q)", class, ref.CurrentState),
		}
	case StateClassTransitional:
		return TransitionPlan{
			Decision: DecisionSkipTransitional,
			Reason:   fmt.Sprintf("mid-transition (state %q), not safe to re-target", ref.CurrentState),
		}
	case StateClassRunning, StateClassStopped:
		// The opposite steady state: this is the one case worth a call.
		return TransitionPlan{
			Decision: DecisionAct,
			Reason:   fmt.Sprintf("%s %s %q (state %q)", action.Verb(), ref.Kind, ref.Identifier, ref.CurrentState),
		}
	default:
		return TransitionPlan{
			Decision: DecisionSkipUnsupportedState,
			Reason:   fmt.Sprintf("state %q does not permit a %s", ref.CurrentState, action),
		}
	}
}
