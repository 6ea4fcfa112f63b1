package sim

import "log"

// StepLogger is a hook that prints a one-line summary of every completed
// step.
type StepLogger struct {
	Logger *log.Logger
}

// NewStepLogger returns a StepLogger that writes into the given logger.
func NewStepLogger(logger *log.Logger) *StepLogger {
	return &StepLogger{Logger: logger}
}

// Func writes the step summary into the logger.
func (h *StepLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosStepComplete {
		return
	}

	snapshot, ok := ctx.Item.(Snapshot)
	if !ok {
		return
	}

	active, blocked := 0, 0
	for _, state := range snapshot.Nodes {
		switch state {
		case NodeActive:
			active++
		case NodeBlocked:
			blocked++
		}
	}

	h.Logger.Printf("step %d, %d active nodes, %d blocked nodes",
		snapshot.Step, active, blocked)
}
