package placement

import (
	"testing"

	"github.com/tagcloud/tagcloud/pkg/errors"
	"github.com/tagcloud/tagcloud/pkg/geom"
)

func TestSpiralFirstRectIsCentered(t *testing.T) {
	p := Spiral{}.NewPlacer(geom.Pt(100, 50), geom.Size{})

	r, err := p.PlaceNext(geom.Sz(20, 10))
	if err != nil {
		t.Fatalf("PlaceNext() error: %v", err)
	}
	want := geom.R(90, 45, 20, 10)
	if r != want {
		t.Errorf("PlaceNext() = %v, want %v", r, want)
	}
}

func TestSpiralNoOverlap(t *testing.T) {
	spacing := geom.Sz(2, 1)
	p := Spiral{}.NewPlacer(geom.Pt(0, 0), spacing)

	sizes := []geom.Size{
		{W: 80, H: 30}, {W: 60, H: 24}, {W: 60, H: 24}, {W: 40, H: 16}, {W: 40, H: 16},
		{W: 30, H: 12}, {W: 30, H: 12}, {W: 30, H: 12}, {W: 20, H: 10}, {W: 20, H: 10},
		{W: 12, H: 8}, {W: 12, H: 8}, {W: 12, H: 8}, {W: 12, H: 8}, {W: 12, H: 8},
	}

	var placed []geom.Rect
	for _, sz := range sizes {
		r, err := p.PlaceNext(sz)
		if err != nil {
			t.Fatalf("PlaceNext(%v) error: %v", sz, err)
		}
		if r.Size != sz {
			t.Errorf("PlaceNext(%v) returned size %v", sz, r.Size)
		}
		for _, prev := range placed {
			if prev.Inflate(spacing).Intersects(r) {
				t.Fatalf("%v overlaps %v (spacing %v)", r, prev, spacing)
			}
		}
		placed = append(placed, r)
	}
}

func TestSpiralGrowsOutward(t *testing.T) {
	p := Spiral{}.NewPlacer(geom.Pt(0, 0), geom.Size{})

	first, _ := p.PlaceNext(geom.Sz(10, 10))
	second, err := p.PlaceNext(geom.Sz(10, 10))
	if err != nil {
		t.Fatalf("PlaceNext() error: %v", err)
	}
	if first.Intersects(second) {
		t.Fatalf("second rect %v overlaps first %v", second, first)
	}
}

func TestSpiralRejectsEmptySize(t *testing.T) {
	p := Spiral{}.NewPlacer(geom.Pt(0, 0), geom.Size{})
	if _, err := p.PlaceNext(geom.Sz(0, 10)); err == nil {
		t.Error("PlaceNext(0x10) should fail")
	}
}

func TestSpiralExhaustion(t *testing.T) {
	p := Spiral{MaxSteps: 1}.NewPlacer(geom.Pt(0, 0), geom.Size{})

	if _, err := p.PlaceNext(geom.Sz(10, 10)); err != nil {
		t.Fatalf("first PlaceNext() error: %v", err)
	}
	_, err := p.PlaceNext(geom.Sz(10, 10))
	if !errors.Is(err, errors.ErrCodePlacementFailed) {
		t.Errorf("PlaceNext() error = %v, want PLACEMENT_FAILED", err)
	}
}

func TestByName(t *testing.T) {
	if _, ok := ByName("spiral"); !ok {
		t.Error("ByName(spiral) should succeed")
	}
	if _, ok := ByName(""); !ok {
		t.Error("ByName(\"\") should default to spiral")
	}
	if _, ok := ByName("treemap"); ok {
		t.Error("ByName(treemap) should fail")
	}
}
