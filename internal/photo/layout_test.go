package photo

import (
	"math"
	"testing"
)

func TestLayout_TreePositionBounds(t *testing.T) {
	layout := NewLayout(1)

	for i := 0; i < 200; i++ {
		p := &Photo{}
		layout.Assign(p)

		pos := p.TreePosition
		if pos.Y < 0 || pos.Y > TreeHeight {
			t.Fatalf("tree position y = %v outside [0, %v]", pos.Y, TreeHeight)
		}

		radius := math.Hypot(pos.X, pos.Z)
		if radius < TreeTopRadius-1e-9 || radius > TreeBaseRadius+1e-9 {
			t.Fatalf("tree radius = %v outside [%v, %v]", radius, TreeTopRadius, TreeBaseRadius)
		}
	}
}

func TestLayout_ScatterPositionBounds(t *testing.T) {
	layout := NewLayout(2)

	for i := 0; i < 200; i++ {
		p := &Photo{}
		layout.Assign(p)

		pos := p.ScatterPosition
		radius := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
		if radius < ScatterMinRadius-1e-9 || radius > ScatterMaxRadius+1e-9 {
			t.Fatalf("scatter radius = %v outside [%v, %v]", radius, ScatterMinRadius, ScatterMaxRadius)
		}
	}
}

func TestLayout_RestRotationRange(t *testing.T) {
	layout := NewLayout(3)

	for i := 0; i < 50; i++ {
		p := &Photo{}
		layout.Assign(p)

		for _, v := range []float64{p.RestRotation.X, p.RestRotation.Y, p.RestRotation.Z} {
			if v < 0 || v >= 2*math.Pi {
				t.Fatalf("rest rotation %v outside [0, 2pi)", v)
			}
		}
	}
}

func TestLayout_DeterministicPerSeed(t *testing.T) {
	a := NewLayout(42)
	b := NewLayout(42)

	for i := 0; i < 10; i++ {
		pa, pb := &Photo{}, &Photo{}
		a.Assign(pa)
		b.Assign(pb)

		if pa.TreePosition != pb.TreePosition ||
			pa.ScatterPosition != pb.ScatterPosition ||
			pa.RestRotation != pb.RestRotation {
			t.Fatalf("assignment %d differs between identically seeded layouts", i)
		}
	}
}
