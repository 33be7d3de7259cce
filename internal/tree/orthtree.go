package tree

import (
	"iter"

	"github.com/san-kum/gravsim/internal/vec"
)

type NodeID int32

// None marks an absent child or an empty tree.
const None NodeID = -1

type Node[S vec.Scalar, V vec.Vector[S, V]] struct {
	// Internal nodes have 2^D children; External nodes have none.
	Internal bool
	Children []NodeID
	Box      BoundingBox[S, V]
}

type Orthtree[S vec.Scalar, V vec.Vector[S, V], D any] struct {
	Nodes []Node[S, V]
	Data  []D
}

// Build subdivides space around particles and aggregates each subtree with
// aggregate. coords extracts the position used for subdivision.
func Build[S vec.Scalar, V vec.Vector[S, V], P any, D any](
	particles []P,
	coords func(P) V,
	aggregate func([]P) D,
) (NodeID, *Orthtree[S, V, D]) {
	positions := make([]V, len(particles))
	for i, p := range particles {
		positions[i] = coords(p)
	}
	b := &builder[S, V, P, D]{
		tree:      &Orthtree[S, V, D]{},
		coords:    coords,
		aggregate: aggregate,
	}
	if len(particles) > 0 {
		b.children = 1 << positions[0].Dim()
	}
	root := b.build(SquareAround[S](positions), particles)
	return root, b.tree
}

type builder[S vec.Scalar, V vec.Vector[S, V], P any, D any] struct {
	tree      *Orthtree[S, V, D]
	coords    func(P) V
	aggregate func([]P) D
	children  int
}

func (b *builder[S, V, P, D]) build(box BoundingBox[S, V], particles []P) NodeID {
	if len(particles) == 0 {
		return None
	}

	id := NodeID(len(b.tree.Nodes))
	b.tree.Nodes = append(b.tree.Nodes, Node[S, V]{Box: box})
	b.tree.Data = append(b.tree.Data, b.aggregate(particles))

	if b.coincident(particles) {
		return id
	}

	center := box.Center()
	buckets := make([][]P, b.children)
	for _, p := range particles {
		o := OrthantOf(b.coords(p), center)
		buckets[o] = append(buckets[o], p)
	}

	children := make([]NodeID, b.children)
	for o := range children {
		sub := box.Orthant(o, center)
		if sub == box && len(buckets[o]) == len(particles) {
			// Distinct positions closer than float resolution; stop here.
			return id
		}
		children[o] = b.build(sub, buckets[o])
	}

	b.tree.Nodes[id] = Node[S, V]{Internal: true, Children: children, Box: box}
	return id
}

func (b *builder[S, V, P, D]) coincident(particles []P) bool {
	first := b.coords(particles[0])
	for _, p := range particles[1:] {
		if b.coords(p) != first {
			return false
		}
	}
	return true
}

// Len is the number of nodes in the tree.
func (t *Orthtree[S, V, D]) Len() int { return len(t.Nodes) }

// Depth is the number of levels below and including node.
func (t *Orthtree[S, V, D]) Depth(node NodeID) int {
	if node == None {
		return 0
	}
	deepest := 0
	for _, c := range t.Nodes[node].Children {
		deepest = max(deepest, t.Depth(c))
	}
	return deepest + 1
}

// Leaves yields every External node under node, depth-first in child order.
func (t *Orthtree[S, V, D]) Leaves(node NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		t.leaves(node, yield)
	}
}

func (t *Orthtree[S, V, D]) leaves(node NodeID, yield func(NodeID) bool) bool {
	if node == None {
		return true
	}
	n := t.Nodes[node]
	if !n.Internal {
		return yield(node)
	}
	for _, c := range n.Children {
		if !t.leaves(c, yield) {
			return false
		}
	}
	return true
}
