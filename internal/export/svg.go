// Package export renders stored runs as standalone images.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/san-kum/gravsim/internal/store"
)

var palette = []string{"#00ffff", "#ffcc00", "#ff00ff", "#00ff88", "#ff4444", "#8888ff"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

// pad grows b by 10% per side, keeping a square aspect.
func (b bounds) pad() bounds {
	cx, cy := (b.minX+b.maxX)/2, (b.minY+b.maxY)/2
	half := math.Max(b.maxX-b.minX, b.maxY-b.minY) / 2
	if half == 0 {
		half = 1
	}
	half *= 1.2
	return bounds{cx - half, cx + half, cy - half, cy + half}
}

func trajectoryBounds(traj *store.Trajectory) bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for i := range traj.Rows {
		for body := 0; body < traj.Bodies; body++ {
			p := traj.Position(i, body)
			b.minX, b.maxX = math.Min(b.minX, p[0]), math.Max(b.maxX, p[0])
			b.minY, b.maxY = math.Min(b.minY, p[1]), math.Max(b.maxY, p[1])
		}
	}
	return b.pad()
}

// TrajectorySVG draws the path of the first maxBodies bodies in the plane of
// axes 0 and 1.
func TrajectorySVG(w io.Writer, traj *store.Trajectory, size, maxBodies int) error {
	if len(traj.Rows) == 0 || traj.Dim < 2 {
		return errors.New("trajectory has no planar snapshots")
	}
	b := trajectoryBounds(traj)
	scale := float64(size) / (b.maxX - b.minX)
	project := func(p []float64) (float64, float64) {
		return (p[0] - b.minX) * scale, float64(size) - (p[1]-b.minY)*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size)

	last := len(traj.Rows) - 1
	for body := 0; body < min(traj.Bodies, maxBodies); body++ {
		color := palette[body%len(palette)]
		sb.WriteString(`<path fill="none" stroke="` + color + `" stroke-width="1.5" d="`)
		for i := range traj.Rows {
			x, y := project(traj.Position(i, body))
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
		x, y := project(traj.Position(last, body))
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, color)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write svg")
}
