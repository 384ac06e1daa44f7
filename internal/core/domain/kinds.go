package domain

type ResourceKind string

const (
	KindDBInstance ResourceKind = "DBInstance"
	KindDBCluster  ResourceKind = "DBCluster"
)

func (rk ResourceKind) String() string {
	return string(rk)
}
