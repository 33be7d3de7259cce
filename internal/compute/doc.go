// Package compute provides interchangeable methods for computing the
// gravitational acceleration a set of affecting particles induces on a set of
// affected ones.
//
// Every method satisfies Method and returns one acceleration per affected
// particle in input order:
//
//	m := compute.BarnesHut[float64, vec.Vec3]{Theta: 0.5}
//	accs := m.Compute(storage.Self(ordered))
//
// Methods can also be chosen at runtime from a textual spec:
//
//	spec, _ := compute.ParseSpec("parallel_simd:8")
//	m, _ := compute.New[float64, vec.Vec3](spec)
//
// Exact methods are BruteForce, BruteForcePairs, SIMD and their parallel
// variants; BarnesHut trades accuracy for speed through Theta; GPU runs the
// brute force sum as a compute shader. Results are not bit-identical across
// methods since the order of operations differs.
package compute
