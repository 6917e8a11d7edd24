// Package dispatch routes decoded Paddle events to per-category handlers and
// aggregates per-event outcomes.
package dispatch

// Status is the tri-state outcome of handling one event.
type Status int

const (
	StatusHandled Status = iota
	StatusIgnored
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusHandled:
		return "handled"
	case StatusIgnored:
		return "ignored"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Result is the outcome of processing one event. Reason is a human-readable
// explanation, empty when there is nothing to say.
type Result struct {
	Status Status
	Reason string
}
