package particle

import (
	"math"
	"sort"
)

// Link is a pair of particles close enough to be connected, I < J.
type Link struct {
	I, J    int
	Dist    float64
	Opacity float64
}

// FindLinks returns every pair closer than maxDist, ordered by (I, J).
// Below threshold particles (or when threshold <= 0) it compares all pairs;
// above it a uniform grid bounds the search. Both paths return the same list.
func FindLinks(ps []Particle, maxDist float64, threshold int) []Link {
	if maxDist <= 0 || len(ps) < 2 {
		return nil
	}
	if threshold <= 0 || len(ps) < threshold {
		return pairLinks(ps, maxDist)
	}
	return gridLinks(ps, maxDist)
}

func pairLinks(ps []Particle, maxDist float64) []Link {
	var links []Link
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if l, ok := link(ps, i, j, maxDist); ok {
				links = append(links, l)
			}
		}
	}
	return links
}

func link(ps []Particle, i, j int, maxDist float64) (Link, bool) {
	dist := ps[i].Pos.Sub(ps[j].Pos).Len()
	opacity, ok := LinkOpacity(dist, maxDist)
	if !ok {
		return Link{}, false
	}
	return Link{I: i, J: j, Dist: dist, Opacity: opacity}, true
}

type cellKey struct {
	x, y int
}

// gridLinks bins particles into cells of side maxDist so each particle only
// needs to be compared against its own and the eight neighbouring cells.
func gridLinks(ps []Particle, maxDist float64) []Link {
	cellOf := func(p Vec) cellKey {
		return cellKey{int(math.Floor(p.X / maxDist)), int(math.Floor(p.Y / maxDist))}
	}

	bins := make(map[cellKey][]int, len(ps))
	for i, p := range ps {
		k := cellOf(p.Pos)
		bins[k] = append(bins[k], i)
	}

	var links []Link
	for i, p := range ps {
		k := cellOf(p.Pos)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range bins[cellKey{k.x + dx, k.y + dy}] {
					if j <= i {
						continue
					}
					if l, ok := link(ps, i, j, maxDist); ok {
						links = append(links, l)
					}
				}
			}
		}
	}

	sort.Slice(links, func(a, b int) bool {
		if links[a].I != links[b].I {
			return links[a].I < links[b].I
		}
		return links[a].J < links[b].J
	})
	return links
}
