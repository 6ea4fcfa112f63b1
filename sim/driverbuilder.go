package sim

import (
	"github.com/sarchlab/icnsim/routing"
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

// DriverBuilder builds Drivers.
type DriverBuilder struct {
	engine           Engine
	topology         topology.Topology
	router           routing.Router
	packets          []*traffic.Packet
	maxSteps         int
	stopOnCompletion bool
	switching        SwitchingTechnique
}

// MakeDriverBuilder creates a DriverBuilder with default parameters.
func MakeDriverBuilder() DriverBuilder {
	return DriverBuilder{
		switching: PacketSwitching,
	}
}

// WithEngine sets the engine the driver schedules step events on.
func (b DriverBuilder) WithEngine(engine Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithTopology sets the topology the packets move on.
func (b DriverBuilder) WithTopology(t topology.Topology) DriverBuilder {
	b.topology = t
	return b
}

// WithRouter sets the router consulted for every active packet.
func (b DriverBuilder) WithRouter(r routing.Router) DriverBuilder {
	b.router = r
	return b
}

// WithPackets sets the packets to simulate.
func (b DriverBuilder) WithPackets(packets []*traffic.Packet) DriverBuilder {
	b.packets = packets
	return b
}

// WithMaxSteps overrides the default step bound.
func (b DriverBuilder) WithMaxSteps(maxSteps int) DriverBuilder {
	b.maxSteps = maxSteps
	return b
}

// WithStopOnCompletion makes the driver stop scheduling steps once every
// packet has completed, instead of running the full fixed-length run.
func (b DriverBuilder) WithStopOnCompletion() DriverBuilder {
	b.stopOnCompletion = true
	return b
}

// WithSwitching sets the switching technique label.
func (b DriverBuilder) WithSwitching(s SwitchingTechnique) DriverBuilder {
	b.switching = s
	return b
}

// Build creates the Driver.
//
// When no explicit step bound is given, the bound is size*size*2 for every
// topology kind. For hypercubes the size parameter is the dimension, not the
// node count, so the default bound is not tied to 2^n. Use WithMaxSteps when
// a node-count-proportional bound is wanted.
func (b DriverBuilder) Build() *Driver {
	if b.engine == nil {
		panic("engine is not set")
	}

	if b.topology == nil {
		panic("topology is not set")
	}

	if b.router == nil {
		panic("router is not set")
	}

	maxSteps := b.maxSteps
	if maxSteps == 0 {
		maxSteps = b.topology.Size() * b.topology.Size() * 2
	}

	return &Driver{
		engine:           b.engine,
		topology:         b.topology,
		router:           b.router,
		packets:          b.packets,
		maxSteps:         maxSteps,
		stopOnCompletion: b.stopOnCompletion,
		switching:        b.switching,
	}
}
