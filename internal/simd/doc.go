// Package simd provides fixed-width lane types and the lane-batched
// acceleration kernel.
//
// Affecting particles are packed into groups of L lanes in
// structure-of-arrays form. A query position is splatted across all lanes, the
// inverse-square fold runs lane-wise, and a horizontal reduce-add collapses
// the accumulator back to one vector.
package simd
