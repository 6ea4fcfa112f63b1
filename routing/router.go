// Package routing selects the next hop for packets moving through a
// topology, preferring less congested neighbors.
package routing

import (
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

// A Router decides the next hop for a packet. Returning the packet's current
// node means the packet cannot advance this step.
type Router interface {
	NextHop(p *traffic.Packet, occ Occupancy) topology.Node
}

// NewCongestionAware creates a Router that picks the least occupied unvisited
// neighbor.
func NewCongestionAware(t topology.Topology) Router {
	return &congestionAware{topology: t}
}

type congestionAware struct {
	topology topology.Topology
}

// NextHop picks the unvisited neighbor with the fewest active packets on it,
// ties broken by neighbor enumeration order. Nodes already on the packet's
// path are never revisited, so a packet whose current node has only visited
// neighbors cannot advance even if its destination is still reachable
// through one of them. NextHop never mutates the packet; the caller applies
// the blocked-step accounting when the returned node equals the current one.
func (r *congestionAware) NextHop(
	p *traffic.Packet,
	occ Occupancy,
) topology.Node {
	visited := make(map[topology.Node]bool, len(p.Path))
	for _, n := range p.Path {
		visited[n] = true
	}

	var (
		best      topology.Node
		bestCount int
		found     bool
	)

	for _, neighbor := range r.topology.Neighbors(p.Current) {
		if visited[neighbor] {
			continue
		}

		count := occ.At(neighbor)
		if !found || count < bestCount {
			best = neighbor
			bestCount = count
			found = true
		}
	}

	if !found {
		return p.Current
	}

	return best
}
