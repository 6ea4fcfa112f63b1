package simulation

import (
	"fmt"
	"io"

	"github.com/sarchlab/icnsim/datarecording"
	"github.com/sarchlab/icnsim/monitoring"
	"github.com/sarchlab/icnsim/sim"
)

// A Simulation is one fully wired simulator run.
type Simulation struct {
	id   string
	seed int64

	engine   sim.Engine
	driver   *sim.Driver
	recorder datarecording.DataRecorder
	monitor  *monitoring.Monitor
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Seed returns the seed the run's traffic was generated with.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDriver returns the driver used in the simulation.
func (s *Simulation) GetDriver() *sim.Driver {
	return s.driver
}

// GetMonitor returns the monitor, or nil when monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// Run performs the whole simulation run.
func (s *Simulation) Run() error {
	s.driver.Start()
	return s.engine.Run()
}

// Results lists the end-of-run trace of every packet.
func (s *Simulation) Results() []sim.PacketResult {
	return s.driver.Results()
}

// WriteSummary writes the end-of-run report: run parameters first, then one
// line per packet with its full path and final status.
func (s *Simulation) WriteSummary(w io.Writer) {
	t := s.driver.Topology()

	fmt.Fprintln(w, "### Simulation Summary")
	fmt.Fprintf(w, "Topology: %s\n", t.Kind())
	fmt.Fprintf(w, "Switching: %s\n", s.driver.Switching())
	fmt.Fprintf(w, "Packets simulated: %d\n", len(s.driver.Packets()))
	fmt.Fprintln(w, "Packet paths and status:")

	for _, r := range s.driver.Results() {
		fmt.Fprintf(w, "Packet %s: %v -> %s\n", r.ID, r.Path, r.Status)
	}
}

// Terminate flushes and closes the simulation's output.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		s.recorder.Close()
	}
}
