package photo

import (
	"math"
	"math/rand"
	"sync"
)

// Scene dimensions, matched to the renderer's tree and scatter volume.
const (
	// TreeHeight is the vertical extent of the cone photos hang on.
	TreeHeight = 4.0
	// TreeBaseRadius is the cone radius at the bottom of the tree.
	TreeBaseRadius = 1.6
	// TreeTopRadius is the cone radius near the top of the tree.
	TreeTopRadius = 0.3
	// ScatterMinRadius is the inner radius of the explosion shell.
	ScatterMinRadius = 4.0
	// ScatterMaxRadius is the outer radius of the explosion shell.
	ScatterMaxRadius = 8.0
)

// Layout assigns display positions to imported photos. Assignments are
// random but fixed for the life of the photo.
type Layout struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLayout creates a Layout seeded for this session.
func NewLayout(seed int64) *Layout {
	return &Layout{rng: rand.New(rand.NewSource(seed))}
}

// Assign fills in the photo's tree position, scatter position and rest
// rotation.
func (l *Layout) Assign(p *Photo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p.TreePosition = l.treePosition()
	p.ScatterPosition = l.scatterPosition()
	p.RestRotation = Vec3{
		X: l.rng.Float64() * 2 * math.Pi,
		Y: l.rng.Float64() * 2 * math.Pi,
		Z: l.rng.Float64() * 2 * math.Pi,
	}
}

// treePosition picks a point on the tree cone's surface. The square root
// biases placements toward the wider bottom so the tree doesn't look
// top-heavy.
func (l *Layout) treePosition() Vec3 {
	t := math.Sqrt(l.rng.Float64())
	y := (1 - t) * TreeHeight
	radius := TreeTopRadius + t*(TreeBaseRadius-TreeTopRadius)
	angle := l.rng.Float64() * 2 * math.Pi

	return Vec3{
		X: radius * math.Cos(angle),
		Y: y,
		Z: radius * math.Sin(angle),
	}
}

// scatterPosition picks a uniformly distributed direction into a spherical
// shell around the tree.
func (l *Layout) scatterPosition() Vec3 {
	// Uniform direction on the unit sphere
	u := l.rng.Float64()*2 - 1
	theta := l.rng.Float64() * 2 * math.Pi
	s := math.Sqrt(1 - u*u)

	radius := ScatterMinRadius + l.rng.Float64()*(ScatterMaxRadius-ScatterMinRadius)

	return Vec3{
		X: radius * s * math.Cos(theta),
		Y: radius * u,
		Z: radius * s * math.Sin(theta),
	}
}
