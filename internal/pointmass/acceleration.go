package pointmass

import "github.com/san-kum/gravsim/internal/vec"

// Acceleration returns the acceleration at position caused by other. A query
// coinciding with other gets a zero contribution instead of a division by zero.
func Acceleration[S vec.Scalar, V vec.Vector[S, V]](position V, other PointMass[S, V]) V {
	dir := other.Position.Sub(position)
	mag2 := dir.NormSquared()
	if mag2 == 0 {
		return dir
	}
	return dir.Scale(other.Mass / (mag2 * vec.Sqrt(mag2)))
}

// AccelerationUnchecked skips the coincidence guard. Callers must guarantee
// position differs from other.Position.
func AccelerationUnchecked[S vec.Scalar, V vec.Vector[S, V]](position V, other PointMass[S, V]) V {
	dir := other.Position.Sub(position)
	mag2 := dir.NormSquared()
	return dir.Scale(other.Mass / (mag2 * vec.Sqrt(mag2)))
}

// AccelerationSoftened adds eps2 to the squared distance, bounding the
// magnitude near coincident points.
func AccelerationSoftened[S vec.Scalar, V vec.Vector[S, V]](position V, other PointMass[S, V], eps2 S) V {
	dir := other.Position.Sub(position)
	mag2 := dir.NormSquared()
	if mag2 == 0 {
		return dir
	}
	soft := mag2 + eps2
	return dir.Scale(other.Mass / (soft * vec.Sqrt(soft)))
}

// AccelerationSum folds Acceleration over every particle in others.
func AccelerationSum[S vec.Scalar, V vec.Vector[S, V]](position V, others []PointMass[S, V]) V {
	var acc V
	for _, o := range others {
		acc = acc.Add(Acceleration(position, o))
	}
	return acc
}

func AccelerationSumSoftened[S vec.Scalar, V vec.Vector[S, V]](position V, others []PointMass[S, V], eps2 S) V {
	var acc V
	for _, o := range others {
		acc = acc.Add(AccelerationSoftened(position, o, eps2))
	}
	return acc
}
