package sim

import (
	"log"
	"sync"
)

// StepTeller can be used to get the current step.
type StepTeller interface {
	CurrentStep() int
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	Schedule(e Event)
}

// An Engine is a unit that keeps the discrete step simulation running.
type Engine interface {
	Hookable
	StepTeller
	EventScheduler

	// Run processes all the events until no more events are scheduled.
	Run() error

	// Pause pauses the simulation until Continue is called.
	Pause()

	// Continue continues the paused simulation.
	Continue()
}

// A SerialEngine is an Engine that always runs events one after another.
type SerialEngine struct {
	HookableBase

	stepLock sync.RWMutex
	step     int

	queue EventQueue

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)
	e.queue = NewEventQueue()
	return e
}

// Schedule registers an event to happen in the future.
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Step() < e.readNow() {
		log.Panic("scheduling an event earlier than the current step")
	}

	e.queue.Push(evt)
}

func (e *SerialEngine) readNow() int {
	e.stepLock.RLock()
	s := e.step
	e.stepLock.RUnlock()
	return s
}

func (e *SerialEngine) writeNow(s int) {
	e.stepLock.Lock()
	e.step = s
	e.stepLock.Unlock()
}

// Run processes all the events scheduled in the SerialEngine.
func (e *SerialEngine) Run() error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for e.queue.Len() > 0 {
		e.pauseLock.Lock()

		evt := e.queue.Pop()
		e.writeNow(evt.Step())

		hookCtx := HookCtx{
			Domain: e,
			Pos:    HookPosBeforeEvent,
			Item:   evt,
		}
		e.InvokeHook(hookCtx)

		handler := evt.Handler()
		_ = handler.Handle(evt)

		hookCtx.Pos = HookPosAfterEvent
		e.InvokeHook(hookCtx)

		e.pauseLock.Unlock()
	}

	return nil
}

// Pause prevents the SerialEngine from triggering more events.
func (e *SerialEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue allows the SerialEngine to trigger more events.
func (e *SerialEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// CurrentStep returns the step the engine is at.
func (e *SerialEngine) CurrentStep() int {
	return e.readNow()
}
