// Package vec defines the numeric vector contract every gravity algorithm is
// generic over, plus the fixed set of concrete vectors used in practice.
//
// Algorithms are written once against [Vector] and instantiated per
// representation:
//
//	func sum[S vec.Scalar, V vec.Vector[S, V]](vs []V) V {
//	    var acc V
//	    for _, v := range vs {
//	        acc = acc.Add(v)
//	    }
//	    return acc
//	}
//
// Concrete types are fixed-size arrays so they are comparable and cheap to
// copy: [Vec2], [Vec3], [Vec4] hold float64 components, [Vec2f] and [Vec3f]
// hold float32 components and match the GPU buffer element type.
package vec
