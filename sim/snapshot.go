package sim

import (
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

// DeadlockThreshold is the number of blocked steps after which a packet is
// classified as deadlocked or livelocked. The classification is purely
// presentational: the driver keeps routing the packet, and it may recover
// once the congesting packets move away.
const DeadlockThreshold = 3

// NodeState classifies one node in a step snapshot.
type NodeState string

// Possible node states.
const (
	// NodeEmpty means no active packet occupies the node.
	NodeEmpty NodeState = "Empty"

	// NodeActive means at least one active packet occupies the node.
	NodeActive NodeState = "Active"

	// NodeBlocked means at least one co-located active packet has been
	// blocked for DeadlockThreshold steps or more.
	NodeBlocked NodeState = "Blocked"
)

// A Snapshot is the per-step view of the network handed to reporters. It is
// built after all packets have moved, and is never mutated afterwards.
type Snapshot struct {
	Step  int                         `json:"step"`
	Nodes map[topology.Node]NodeState `json:"nodes"`
}

// TakeSnapshot classifies every node of the topology from the current packet
// positions.
func TakeSnapshot(
	step int,
	t topology.Topology,
	packets []*traffic.Packet,
) Snapshot {
	s := Snapshot{
		Step:  step,
		Nodes: make(map[topology.Node]NodeState, len(t.Nodes())),
	}

	for _, node := range t.Nodes() {
		s.Nodes[node] = NodeEmpty
	}

	for _, p := range packets {
		if !p.Active() {
			continue
		}

		if p.BlockedSteps >= DeadlockThreshold {
			s.Nodes[p.Current] = NodeBlocked
			continue
		}

		if s.Nodes[p.Current] == NodeEmpty {
			s.Nodes[p.Current] = NodeActive
		}
	}

	return s
}
