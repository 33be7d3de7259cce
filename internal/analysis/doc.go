// Package analysis extracts periodic structure from recorded trajectories.
//
// The orbit regression uses DominantPeriod to check that a simulated orbit
// has the Kepler period:
//
//	xs := analysis.Series(result, func(bs sim.Bodies[float64, vec.Vec2]) float64 {
//	    return float64(bs[1].Pos[0] - bs[0].Pos[0])
//	})
//	period := analysis.DominantPeriod(xs, sampleDt)
package analysis
