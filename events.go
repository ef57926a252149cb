package butterfly

import "context"

// Well-known user-stat keys written by StateFeedback through an
// EventFirer. A monitor that recognizes these keys can render live
// state-graph coverage.
const (
	// StatNodes is the number of distinct states observed so far.
	StatNodes = "statemachine_nodes"
	// StatEdges is the number of distinct transitions observed so far.
	StatEdges = "statemachine_edges"
	// StatStateGraph is a DOT rendering of the state graph. Monitors may
	// choose not to persist this on every update; it is comparatively
	// large.
	StatStateGraph = "stategraph"
)

// UserStatKind distinguishes the payload carried by a UserStat.
type UserStatKind int

const (
	// NumberStat carries a numeric value.
	NumberStat UserStatKind = iota
	// StringStat carries a string value, e.g. a DOT document.
	StringStat
)

// UserStat is a single named statistic pushed through an EventFirer.
// Exactly one of Number/String is meaningful, selected by Kind.
type UserStat struct {
	Kind   UserStatKind
	Number uint64
	String string
}

// NumberUserStat returns a UserStat carrying a numeric value.
func NumberUserStat(v uint64) UserStat {
	return UserStat{Kind: NumberStat, Number: v}
}

// StringUserStat returns a UserStat carrying a string value.
func StringUserStat(v string) UserStat {
	return UserStat{Kind: StringStat, String: v}
}

// EventFirer is the abstract sink that a StateFeedback pushes user
// stats through. A fuzzer's event manager, a monitor's ingestion
// channel, or a no-op test stub may all implement it.
type EventFirer interface {
	FireUserStat(ctx context.Context, name string, stat UserStat) error
}
