package tracing

import (
	"strings"

	"github.com/sarchlab/icnsim/datarecording"
	"github.com/sarchlab/icnsim/sim"
)

const (
	packetTraceTable = "packet_traces"
	runInfoTable     = "run_info"
)

type packetTraceEntry struct {
	PacketID     string
	Src          string
	Dst          string
	Path         string
	Status       string
	BlockedSteps int
}

// RunInfo describes one simulation run. One row is written per database.
type RunInfo struct {
	RunID     string
	Topology  string
	Size      int
	Packets   int
	Switching string
	MaxSteps  int
	Seed      int64
}

// A TraceRecorder is a hook that records the final trace of every packet
// when the run ends.
type TraceRecorder struct {
	backend datarecording.DataRecorder
}

// NewTraceRecorder creates a TraceRecorder writing into the given recorder.
func NewTraceRecorder(backend datarecording.DataRecorder) *TraceRecorder {
	backend.CreateTable(packetTraceTable, packetTraceEntry{})

	return &TraceRecorder{backend: backend}
}

// Func records the per-packet traces at the end of the run.
func (t *TraceRecorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosSimulationEnd {
		return
	}

	results, ok := ctx.Item.([]sim.PacketResult)
	if !ok {
		return
	}

	for _, r := range results {
		path := make([]string, 0, len(r.Path))
		for _, n := range r.Path {
			path = append(path, string(n))
		}

		t.backend.InsertData(packetTraceTable, packetTraceEntry{
			PacketID:     r.ID,
			Src:          string(r.Src),
			Dst:          string(r.Dst),
			Path:         strings.Join(path, " -> "),
			Status:       string(r.Status),
			BlockedSteps: r.BlockedSteps,
		})
	}

	t.backend.Flush()
}

// WriteRunInfo records the run parameters.
func WriteRunInfo(backend datarecording.DataRecorder, info RunInfo) {
	backend.CreateTable(runInfoTable, info)
	backend.InsertData(runInfoTable, info)
}
