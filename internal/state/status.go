package state

// ServerStatus is the observable liveness of the identity server.
type ServerStatus int

const (
	StatusUnknown ServerStatus = iota
	StatusOnline
	StatusOffline
)

func (s ServerStatus) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// StatusEvent drives ServerStatus transitions.
type StatusEvent int

const (
	// EventURLCleared fires when no identity base URL is configured.
	EventURLCleared StatusEvent = iota
	// EventURLChanged fires when polling restarts against a new URL.
	EventURLChanged
	EventProbeSucceeded
	EventProbeFailed
)

// NextStatus is the status transition function.
func NextStatus(current ServerStatus, ev StatusEvent) ServerStatus {
	switch ev {
	case EventURLCleared, EventProbeFailed:
		return StatusOffline
	case EventProbeSucceeded:
		return StatusOnline
	case EventURLChanged:
		return StatusUnknown
	default:
		return current
	}
}
