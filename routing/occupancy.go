package routing

import (
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

// Occupancy is a read-only snapshot of how many non-completed packets occupy
// each node. It is rebuilt once per step from the previous settled positions
// and shared by all routing decisions within that step.
type Occupancy map[topology.Node]int

// CountOccupancy builds an Occupancy snapshot from the current packet
// positions. Completed packets do not occupy nodes.
func CountOccupancy(packets []*traffic.Packet) Occupancy {
	occ := make(Occupancy)
	for _, p := range packets {
		if p.Active() {
			occ[p.Current]++
		}
	}

	return occ
}

// At returns the number of active packets at the given node.
func (o Occupancy) At(n topology.Node) int {
	return o[n]
}
