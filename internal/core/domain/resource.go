package domain

import "fmt"

// ResourceRef identifies one manageable RDS unit as reported by the
// provider at discovery time. Refs are rebuilt from a live query on every
// invocation and never persisted.
type ResourceRef struct {
	Kind         ResourceKind
	Identifier   string
	ARN          string
	Region       string
	CurrentState string

	// ClusterIdentifier is set only on a DBInstance that is a member of a
	// cluster; members inherit lifecycle from their parent.
	ClusterIdentifier string

	Tags map[string]string
}

// Key is unique across an inventory.
func (r ResourceRef) Key() string {
	return fmt.Sprintf("%s/%s/%s", r.Region, r.Kind, r.Identifier)
}

func (r ResourceRef) HasTag(key, value string) bool {
	v, ok := r.Tags[key]
	return ok && v == value
}

// TagFilter is the exact key/value predicate selecting which resources the
// scheduler is allowed to act on.
type TagFilter struct {
	Key   string
	Value string
}

// ActionRequest is one invocation's resolved intent.
type ActionRequest struct {
	Action    Action
	TagFilter TagFilter
	// Regions is the requested region list. Empty means the ambient SDK
	// region; the single element "all" means every enabled region.
	Regions []string
}
