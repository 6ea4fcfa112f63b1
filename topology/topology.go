// Package topology provides generators for static interconnection-network
// topologies. All generated topologies are connected, undirected, and
// unweighted, and are immutable once built.
package topology

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the shape of an interconnection network.
type Kind string

// Supported topology kinds.
const (
	Mesh      Kind = "Mesh"
	Torus     Kind = "Torus"
	Hypercube Kind = "Hypercube"
)

// ParseKind converts a string into a Kind. The match is case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "mesh":
		return Mesh, nil
	case "torus":
		return Torus, nil
	case "hypercube":
		return Hypercube, nil
	default:
		return "", fmt.Errorf("unknown topology kind %q", s)
	}
}

// A Node identifies one network node. Grid nodes (mesh, torus) are formatted
// as "x,y". Hypercube nodes are n-bit binary strings.
type Node string

// GridNode returns the identifier of the grid node at (x, y).
func GridNode(x, y int) Node {
	return Node(strconv.Itoa(x) + "," + strconv.Itoa(y))
}

// A Topology is a fixed undirected graph of network nodes. Neighbor
// enumeration order is deterministic and never changes for the lifetime of
// the topology.
type Topology interface {
	Kind() Kind

	// Size returns the size parameter the topology was built with. For mesh
	// and torus this is the per-dimension node count; for hypercube it is the
	// dimension (node count is 2^size).
	Size() int

	Nodes() []Node
	Neighbors(n Node) []Node
	Has(n Node) bool
}

type graph struct {
	kind  Kind
	size  int
	nodes []Node
	edges map[Node][]Node
}

func (g *graph) Kind() Kind {
	return g.kind
}

func (g *graph) Size() int {
	return g.size
}

func (g *graph) Nodes() []Node {
	return g.nodes
}

func (g *graph) Neighbors(n Node) []Node {
	return g.edges[n]
}

func (g *graph) Has(n Node) bool {
	_, found := g.edges[n]
	return found
}

// ErrInvalidTopologySize is returned when the size parameter is smaller than
// 2 or the kind is not supported.
var ErrInvalidTopologySize = errors.New("invalid topology size")
