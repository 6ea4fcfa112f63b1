package traffic

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/sarchlab/icnsim/id"
	"github.com/sarchlab/icnsim/topology"
)

// Errors returned by the Generator before a run starts.
var (
	ErrInsufficientNodes  = errors.New("fewer than 2 nodes available")
	ErrInvalidPacketCount = errors.New("invalid packet count")
)

// A Generator creates packets with random source and destination nodes. The
// random source is injected so that runs are reproducible under a fixed seed.
type Generator struct {
	nodes       []topology.Node
	rand        *rand.Rand
	idGenerator id.IDGenerator
}

// NewGenerator creates a Generator drawing endpoints from the given
// topology's node set.
func NewGenerator(
	t topology.Topology,
	r *rand.Rand,
	idGen id.IDGenerator,
) *Generator {
	return &Generator{
		nodes:       t.Nodes(),
		rand:        r,
		idGenerator: idGen,
	}
}

// Generate creates count packets. Each packet independently draws a uniformly
// random (source, destination) pair with source != destination; pairs may
// repeat across packets.
func (g *Generator) Generate(count int) ([]*Packet, error) {
	if len(g.nodes) < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrInsufficientNodes,
			len(g.nodes))
	}

	if count < 1 {
		return nil, fmt.Errorf("%w: %d, must be at least 1",
			ErrInvalidPacketCount, count)
	}

	packets := make([]*Packet, 0, count)
	for i := 0; i < count; i++ {
		src, dst := g.samplePair()
		packets = append(packets,
			NewPacket(g.idGenerator.Generate(), src, dst))
	}

	return packets, nil
}

func (g *Generator) samplePair() (src, dst topology.Node) {
	srcIdx := g.rand.Intn(len(g.nodes))
	dstIdx := g.rand.Intn(len(g.nodes) - 1)
	if dstIdx >= srcIdx {
		dstIdx++
	}

	return g.nodes[srcIdx], g.nodes[dstIdx]
}
