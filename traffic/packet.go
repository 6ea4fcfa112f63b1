// Package traffic provides the packet state model and random traffic
// generation for interconnection-network simulations.
package traffic

import "github.com/sarchlab/icnsim/topology"

// A Packet is one transit job moving through the network. It is created at
// its source node and moves one hop per simulation step until it reaches its
// destination. Once completed, a packet is read-only.
type Packet struct {
	ID  string
	Src topology.Node
	Dst topology.Node

	// Current is the node the packet occupies. It starts at Src.
	Current topology.Node

	// Path is the ordered list of visited nodes, starting with Src. A blocked
	// step appends the current node again, so the path can contain
	// consecutive duplicates.
	Path []topology.Node

	// Completed becomes true once Current equals Dst, and never reverts.
	Completed bool

	// BlockedSteps counts the steps on which the packet had no viable
	// forward move. It never resets within a run.
	BlockedSteps int
}

// NewPacket creates a packet at its source node.
func NewPacket(pktID string, src, dst topology.Node) *Packet {
	return &Packet{
		ID:      pktID,
		Src:     src,
		Dst:     dst,
		Current: src,
		Path:    []topology.Node{src},
	}
}

// Active returns true until the packet completes.
func (p *Packet) Active() bool {
	return !p.Completed
}

// RecordHop moves the packet to the given node and appends it to the path.
// The node may equal the current node; the no-op hop is still appended.
func (p *Packet) RecordHop(n topology.Node) {
	p.Current = n
	p.Path = append(p.Path, n)
}

// RecordBlocked counts one step without a viable forward move.
func (p *Packet) RecordBlocked() {
	p.BlockedSteps++
}

// MarkCompleted transitions the packet to its terminal state.
func (p *Packet) MarkCompleted() {
	p.Completed = true
}

// StepsTaken returns the number of hops recorded so far, blocked no-op hops
// included.
func (p *Packet) StepsTaken() int {
	return len(p.Path) - 1
}
