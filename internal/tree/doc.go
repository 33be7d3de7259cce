// Package tree builds N-dimensional orthtrees (quadtrees in 2D, octrees in 3D)
// over particle slices and evaluates the Barnes-Hut approximation on them.
//
// The tree is an arena: Nodes and Data are parallel slices indexed by NodeID,
// children are NodeIDs and an absent child is None. Trees are rebuilt from
// scratch for every computation and never mutated afterwards.
//
//	root, t := tree.BuildGravity(particles)
//	acc := tree.AccelerationAt(t, root, query, 0.5)
package tree
