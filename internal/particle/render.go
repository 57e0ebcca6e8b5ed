package particle

import "image/color"

// maxLinkOpacity is the opacity of a link between two coincident particles.
const maxLinkOpacity = 0.5

// Surface is the drawing target of a frame. Hosts implement it on top of
// an ebiten image, a terminal cell buffer or an HTML canvas.
type Surface interface {
	Clear()
	FillCircle(cx, cy, r float64, c color.NRGBA)
	// StrokeLine draws a segment; alpha scales the color's own alpha the
	// way canvas globalAlpha does.
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64)
}

// Style is the renderer configuration.
type Style struct {
	ParticleColor   color.NRGBA
	LineColor       color.NRGBA
	LineWidth       float64
	MaxLinkDistance float64
	// IndexThreshold is the particle count at which link search switches
	// from the pairwise scan to the spatial grid. Zero disables the grid.
	IndexThreshold int
}

// FrameStats summarizes a drawn frame.
type FrameStats struct {
	Particles int
	Links     int
}

// LinkOpacity returns the line opacity for two particles dist apart and
// whether a line is drawn at all. The threshold itself is excluded.
func LinkOpacity(dist, maxDist float64) (float64, bool) {
	if dist >= maxDist {
		return 0, false
	}
	return (1 - dist/maxDist) * maxLinkOpacity, true
}

// DrawFrame clears s and draws ps with their connecting lines. It keeps no
// state between calls.
func DrawFrame(s Surface, ps []Particle, st Style) FrameStats {
	s.Clear()

	for _, p := range ps {
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, st.ParticleColor)
	}

	links := FindLinks(ps, st.MaxLinkDistance, st.IndexThreshold)
	for _, l := range links {
		a, b := ps[l.I].Pos, ps[l.J].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, st.LineWidth, st.LineColor, l.Opacity)
	}

	return FrameStats{Particles: len(ps), Links: len(links)}
}
