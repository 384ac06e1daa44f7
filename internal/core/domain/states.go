package domain

// StateClass groups the provider's loosely typed lifecycle state strings
// into the four classes the planner reasons about. Anything not in the
// table classifies as StateClassUnsupported so an unrecognized or future
// provider state is never acted on.
type StateClass int

const (
	StateClassUnsupported StateClass = iota
	StateClassRunning
	StateClassStopped
	StateClassTransitional
)

func (c StateClass) String() string {
	switch c {
	case StateClassRunning:
		return "running"
	case StateClassStopped:
		return "stopped"
	case StateClassTransitional:
		return "transitional"
	default:
		return "unsupported"
	}
}

// stateClasses covers the documented RDS DB instance and DB cluster
// lifecycle states. Instance and cluster vocabularies overlap heavily, so
// one table serves both kinds.
var stateClasses = map[string]StateClass{
	"available": StateClassRunning,
	"stopped":   StateClassStopped,

	"starting":                        StateClassTransitional,
	"stopping":                        StateClassTransitional,
	"rebooting":                       StateClassTransitional,
	"backing-up":                      StateClassTransitional,
	"modifying":                       StateClassTransitional,
	"upgrading":                       StateClassTransitional,
	"maintenance":                     StateClassTransitional,
	"renaming":                        StateClassTransitional,
	"resetting-master-credentials":    StateClassTransitional,
	"configuring-enhanced-monitoring": StateClassTransitional,
	"configuring-iam-database-auth":   StateClassTransitional,
	"configuring-log-exports":         StateClassTransitional,
	"storage-optimization":            StateClassTransitional,
	"storage-config-upgrade":          StateClassTransitional,
	"moving-to-vpc":                   StateClassTransitional,
	"converting-to-vpc":               StateClassTransitional,
	"promoting":                       StateClassTransitional,
	"failing-over":                    StateClassTransitional,
	"backtracking":                    StateClassTransitional,
	"migrating":                       StateClassTransitional,
	"preparing-data-migration":        StateClassTransitional,
	"update-hsm":                      StateClassTransitional,
	"automation-paused":               StateClassTransitional,

	"creating":                  StateClassUnsupported,
	"deleting":                  StateClassUnsupported,
	"failed":                    StateClassUnsupported,
	"migration-failed":          StateClassUnsupported,
	"restore-error":             StateClassUnsupported,
	"storage-full":              StateClassUnsupported,
	"insufficient-capacity":     StateClassUnsupported,
	"incompatible-network":      StateClassUnsupported,
	"incompatible-option-group": StateClassUnsupported,
	"incompatible-parameters":   StateClassUnsupported,
	"incompatible-restore":      StateClassUnsupported,
	"incompatible-credentials":  StateClassUnsupported,

	"inaccessible-encryption-credentials":             StateClassUnsupported,
	"inaccessible-encryption-credentials-recoverable": StateClassUnsupported,
}

// ClassifyState is total: unknown strings map to StateClassUnsupported.
func ClassifyState(state string) StateClass {
	if class, ok := stateClasses[state]; ok {
		return class
	}
	return StateClassUnsupported
}
