package workflow

// State is a step of the bump pipeline.
type State int

const (
	StateIdle State = iota
	StateEventLoaded
	StateRepoFetched
	StateBranchResolved
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEventLoaded:
		return "event-loaded"
	case StateRepoFetched:
		return "repo-fetched"
	case StateBranchResolved:
		return "branch-resolved"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can happen from s.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}
