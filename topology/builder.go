package topology

import "fmt"

// gridOffsets is the fixed neighbor enumeration order for grid topologies.
var gridOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Builder builds topologies.
type Builder struct {
	kind Kind
	size int
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		kind: Mesh,
		size: 3,
	}
}

// WithKind sets the topology kind to build.
func (b Builder) WithKind(kind Kind) Builder {
	b.kind = kind
	return b
}

// WithSize sets the size parameter. For mesh and torus, the network has
// size x size nodes. For hypercube, the network has 2^size nodes.
func (b Builder) WithSize(size int) Builder {
	b.size = size
	return b
}

// Build creates the topology. It returns ErrInvalidTopologySize if the size
// parameter is smaller than 2 or the kind is unknown.
func (b Builder) Build() (Topology, error) {
	if b.size < 2 {
		return nil, fmt.Errorf("%w: size %d, must be at least 2",
			ErrInvalidTopologySize, b.size)
	}

	switch b.kind {
	case Mesh:
		return b.buildGrid(false), nil
	case Torus:
		return b.buildGrid(true), nil
	case Hypercube:
		return b.buildHypercube(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q",
			ErrInvalidTopologySize, b.kind)
	}
}

// MustBuild is a Build that panics on invalid parameters.
func (b Builder) MustBuild() Topology {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}

	return t
}

func (b Builder) buildGrid(periodic bool) *graph {
	n := b.size
	g := &graph{
		kind:  b.kind,
		size:  n,
		edges: make(map[Node][]Node),
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			g.nodes = append(g.nodes, GridNode(x, y))
		}
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			node := GridNode(x, y)
			g.edges[node] = gridNeighbors(x, y, n, periodic)
		}
	}

	return g
}

// gridNeighbors lists the adjacent grid nodes in offset order. Periodic grids
// wrap coordinates; wrapping can map two offsets to the same node (n=2), so
// duplicates are dropped to keep adjacency a set.
func gridNeighbors(x, y, n int, periodic bool) []Node {
	neighbors := make([]Node, 0, 4)
	seen := make(map[Node]bool, 4)

	for _, offset := range gridOffsets {
		nx, ny := x+offset[0], y+offset[1]

		if periodic {
			nx, ny = (nx+n)%n, (ny+n)%n
		} else if nx < 0 || nx >= n || ny < 0 || ny >= n {
			continue
		}

		neighbor := GridNode(nx, ny)
		if neighbor == GridNode(x, y) || seen[neighbor] {
			continue
		}

		seen[neighbor] = true
		neighbors = append(neighbors, neighbor)
	}

	return neighbors
}

func (b Builder) buildHypercube() *graph {
	dim := b.size
	count := 1 << dim
	g := &graph{
		kind:  Hypercube,
		size:  dim,
		edges: make(map[Node][]Node),
	}

	for i := 0; i < count; i++ {
		g.nodes = append(g.nodes, hypercubeNode(i, dim))
	}

	for i := 0; i < count; i++ {
		node := hypercubeNode(i, dim)
		neighbors := make([]Node, 0, dim)

		// Flip one bit at a time, leftmost first.
		for bit := dim - 1; bit >= 0; bit-- {
			neighbors = append(neighbors, hypercubeNode(i^(1<<bit), dim))
		}

		g.edges[node] = neighbors
	}

	return g
}

func hypercubeNode(i, dim int) Node {
	bits := make([]byte, dim)
	for b := 0; b < dim; b++ {
		if i&(1<<(dim-1-b)) != 0 {
			bits[b] = '1'
		} else {
			bits[b] = '0'
		}
	}

	return Node(bits)
}
