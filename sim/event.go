// Package sim provides the discrete-step simulation engine and the driver
// that moves packets across a topology one hop per step.
package sim

// An Event is something going to happen at a future step.
type Event interface {
	// Step returns the step at which the event should happen.
	Step() int

	// Handler returns the handler that should handle the event.
	Handler() Handler
}

// A Handler defines a domain for the events.
//
// One event is always constrained to one Handler, which means the event can
// only be scheduled by one handler and can only directly modify that handler.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	step    int
	handler Handler
}

// NewEventBase creates a new EventBase.
func NewEventBase(step int, handler Handler) EventBase {
	return EventBase{
		step:    step,
		handler: handler,
	}
}

// Step returns the step at which the event is going to happen.
func (e EventBase) Step() int {
	return e.step
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// A StepEvent triggers one simulation step of a driver.
type StepEvent struct {
	EventBase
}

// MakeStepEvent creates a StepEvent.
func MakeStepEvent(step int, handler Handler) StepEvent {
	return StepEvent{EventBase: NewEventBase(step, handler)}
}
