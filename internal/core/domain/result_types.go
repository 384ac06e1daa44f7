package domain

import "time"

type Result string

const (
	ResultSucceeded Result = "SUCCEEDED"
	ResultSkipped   Result = "SKIPPED"
	ResultFailed    Result = "FAILED"
)

// ResourceOutcome is the terminal record for one resource in one run.
type ResourceOutcome struct {
	Resource    ResourceRef
	Decision    Decision
	Result      Result
	Reason      string // carried from the plan, or the deadline-skip note
	ErrorDetail string // set only when Result is ResultFailed
}

// RunSummary aggregates every outcome of a single invocation.
type RunSummary struct {
	RunID      string
	AccountID  string
	Action     Action
	StartedAt  time.Time
	FinishedAt time.Time

	SucceededCount int
	SkippedCount   int
	FailedCount    int

	// RegionErrors records regions whose discovery failed entirely, keyed
	// by region name.
	RegionErrors map[string]string

	Outcomes []ResourceOutcome
}

func (s *RunSummary) Add(outcome ResourceOutcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.Result {
	case ResultSucceeded:
		s.SucceededCount++
	case ResultSkipped:
		s.SkippedCount++
	case ResultFailed:
		s.FailedCount++
	}
}

func (s *RunSummary) Total() int {
	return len(s.Outcomes)
}

// Failed reports the overall invocation status. Skipped-only runs are
// successful: "nothing needed to change" is never an error. A region whose
// discovery failed entirely marks the run failed, because targets in it may
// have been silently missed.
func (s *RunSummary) Failed() bool {
	return s.FailedCount > 0 || len(s.RegionErrors) > 0
}
