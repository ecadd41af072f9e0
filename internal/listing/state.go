package listing

// State represents the lifecycle state of a list controller
type State int

const (
	// StateIdle means no load is in flight
	StateIdle State = iota
	// StateLoading means at least one load is waiting for the backend
	StateLoading
	// StateRendered means the last load rendered backend records
	StateRendered
	// StateRenderedFallback means the last load rendered sample records after a failed read
	StateRenderedFallback
	// StateFailed means the last read failed and no sample records were available, so the empty state was rendered
	StateFailed
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateRenderedFallback:
		return "rendered_fallback"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
