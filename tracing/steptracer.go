// Package tracing records simulation output into a data recorder through
// driver hooks.
package tracing

import (
	"sort"

	"github.com/sarchlab/icnsim/datarecording"
	"github.com/sarchlab/icnsim/sim"
	"github.com/sarchlab/icnsim/topology"
)

const stepStateTable = "step_states"

type stepStateEntry struct {
	Step  int
	Node  string
	State string
}

// A StepTracer is a hook that records the classification of every node after
// every step.
type StepTracer struct {
	backend datarecording.DataRecorder
}

// NewStepTracer creates a StepTracer writing into the given recorder.
func NewStepTracer(backend datarecording.DataRecorder) *StepTracer {
	backend.CreateTable(stepStateTable, stepStateEntry{})

	return &StepTracer{backend: backend}
}

// Func records one row per node for the completed step.
func (t *StepTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosStepComplete {
		return
	}

	snapshot, ok := ctx.Item.(sim.Snapshot)
	if !ok {
		return
	}

	// Map iteration order is random; sort for stable row order.
	nodes := make([]string, 0, len(snapshot.Nodes))
	for node := range snapshot.Nodes {
		nodes = append(nodes, string(node))
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		t.backend.InsertData(stepStateTable, stepStateEntry{
			Step:  snapshot.Step,
			Node:  node,
			State: string(snapshot.Nodes[topology.Node(node)]),
		})
	}
}
