// Package simulation wires engines, drivers, tracers, and monitors into
// complete simulator runs.
package simulation

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/sarchlab/icnsim/datarecording"
	"github.com/sarchlab/icnsim/id"
	"github.com/sarchlab/icnsim/monitoring"
	"github.com/sarchlab/icnsim/routing"
	"github.com/sarchlab/icnsim/sim"
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/tracing"
	"github.com/sarchlab/icnsim/traffic"
)

// Builder can be used to build a simulation.
type Builder struct {
	topologyKind topology.Kind
	size         int
	packetCount  int
	switching    sim.SwitchingTechnique

	seed             int64
	maxSteps         int
	stopOnCompletion bool
	pacing           time.Duration

	monitorOn   bool
	monitorPort int

	recordingOn    bool
	outputFileName string

	verbose bool
}

// MakeBuilder creates a new Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		topologyKind: topology.Mesh,
		size:         3,
		packetCount:  3,
		switching:    sim.PacketSwitching,
	}
}

// WithTopology sets the topology kind.
func (b Builder) WithTopology(kind topology.Kind) Builder {
	b.topologyKind = kind
	return b
}

// WithSize sets the per-dimension size parameter.
func (b Builder) WithSize(size int) Builder {
	b.size = size
	return b
}

// WithPacketCount sets the number of packets to simulate.
func (b Builder) WithPacketCount(count int) Builder {
	b.packetCount = count
	return b
}

// WithSwitching sets the switching technique label.
func (b Builder) WithSwitching(s sim.SwitchingTechnique) Builder {
	b.switching = s
	return b
}

// WithSeed sets the random seed. Runs with the same seed and parameters are
// identical. When no seed is given, the wall clock seeds the run.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithMaxSteps overrides the default step bound.
func (b Builder) WithMaxSteps(maxSteps int) Builder {
	b.maxSteps = maxSteps
	return b
}

// WithStopOnCompletion stops the run once all packets have completed.
func (b Builder) WithStopOnCompletion() Builder {
	b.stopOnCompletion = true
	return b
}

// WithPacing inserts a delay after every step so that the run can be watched
// live. The delay belongs to presentation; it does not change the result.
func (b Builder) WithPacing(d time.Duration) Builder {
	b.pacing = d
	return b
}

// WithMonitoring enables the web monitor.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithRecording enables SQLite trace recording.
func (b Builder) WithRecording() Builder {
	b.recordingOn = true
	return b
}

// WithOutputFileName sets the recording file name (without suffix).
func (b Builder) WithOutputFileName(name string) Builder {
	b.outputFileName = name
	return b
}

// WithStepLogging logs a one-line summary of every step to stderr.
func (b Builder) WithStepLogging() Builder {
	b.verbose = true
	return b
}

// Build validates the parameters and wires up the simulation. All input
// validation happens here, before the run starts; the step loop itself does
// not fail under valid input.
func (b Builder) Build() (*Simulation, error) {
	topo, err := topology.MakeBuilder().
		WithKind(b.topologyKind).
		WithSize(b.size).
		Build()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:   id.NewXIDGenerator().Generate(),
		seed: b.seed,
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	s.engine = sim.NewSerialEngine()

	generator := traffic.NewGenerator(
		topo,
		rand.New(rand.NewSource(s.seed)),
		id.NewSequentialIDGenerator(),
	)
	packets, err := generator.Generate(b.packetCount)
	if err != nil {
		return nil, err
	}

	driverBuilder := sim.MakeDriverBuilder().
		WithEngine(s.engine).
		WithTopology(topo).
		WithRouter(routing.NewCongestionAware(topo)).
		WithPackets(packets).
		WithSwitching(b.switching).
		WithMaxSteps(b.maxSteps)
	if b.stopOnCompletion {
		driverBuilder = driverBuilder.WithStopOnCompletion()
	}
	s.driver = driverBuilder.Build()

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "icnsim_" + s.id
		}
		s.recorder = datarecording.NewSQLiteRecorder(outputPath)

		tracing.WriteRunInfo(s.recorder, tracing.RunInfo{
			RunID:     s.id,
			Topology:  string(topo.Kind()),
			Size:      topo.Size(),
			Packets:   len(packets),
			Switching: string(b.switching),
			MaxSteps:  s.driver.MaxSteps(),
			Seed:      s.seed,
		})
		s.driver.AcceptHook(tracing.NewStepTracer(s.recorder))
		s.driver.AcceptHook(tracing.NewTraceRecorder(s.recorder))
	}

	if b.verbose {
		s.driver.AcceptHook(sim.NewStepLogger(
			log.New(os.Stderr, "icnsim ", log.LstdFlags)))
	}

	if b.pacing > 0 {
		s.driver.AcceptHook(&pacingHook{delay: b.pacing})
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterEngine(s.engine)
		s.monitor.RegisterDriver(s.driver)
		s.monitor.StartServer()
	}

	return s, nil
}

// pacingHook sleeps after every step. It is presentation support, attached
// only when a pacing duration is configured.
type pacingHook struct {
	delay time.Duration
}

func (h *pacingHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosStepComplete {
		return
	}

	time.Sleep(h.delay)
}
