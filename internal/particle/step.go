package particle

// Repulsion describes how the pointer pushes nearby particles away.
type Repulsion struct {
	Radius   float64
	Strength float64
}

// DefaultRepulsion matches the field's fixed pointer interaction.
var DefaultRepulsion = Repulsion{Radius: 100, Strength: 2}

// Advance moves every particle by one tick: integrate velocity, wrap at
// the canvas edges, then push the particle away from the pointer when it
// is inside the repulsion radius.
func Advance(ps []Particle, width, height float64, pointer Vec, rep Repulsion) {
	for i := range ps {
		ps[i].step(width, height, pointer, rep)
	}
}

func (p *Particle) step(width, height float64, pointer Vec, rep Repulsion) {
	p.Pos = p.Pos.Add(p.Vel)

	// Wrap is intentionally asymmetric: falling below zero lands exactly on
	// the far edge, while only strictly passing the far edge returns to zero.
	if p.Pos.X < 0 {
		p.Pos.X = width
	}
	if p.Pos.X > width {
		p.Pos.X = 0
	}
	if p.Pos.Y < 0 {
		p.Pos.Y = height
	}
	if p.Pos.Y > height {
		p.Pos.Y = 0
	}

	d := pointer.Sub(p.Pos)
	dist := d.Len()
	if dist <= 0 || dist >= rep.Radius {
		return
	}
	force := (rep.Radius - dist) / rep.Radius
	p.Pos.X -= (d.X / dist) * force * rep.Strength
	p.Pos.Y -= (d.Y / dist) * force * rep.Strength
}
