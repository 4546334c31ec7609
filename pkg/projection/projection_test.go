package projection

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

type point struct{ x, y float64 }

func checkCoords(t *testing.T, p Projection, data, pixel point) {
	t.Helper()
	if x, y := p.DataToPixel(data.x, data.y); x != pixel.x || y != pixel.y {
		t.Errorf("DataToPixel(%v, %v) = (%v, %v), want (%v, %v)", data.x, data.y, x, y, pixel.x, pixel.y)
	}
	if x, y := p.PixelToData(pixel.x, pixel.y); x != data.x || y != data.y {
		t.Errorf("PixelToData(%v, %v) = (%v, %v), want (%v, %v)", pixel.x, pixel.y, x, y, data.x, data.y)
	}
}

func TestProjection(t *testing.T) {
	b := bounds.FromPoints(10, 10, 90, 90)

	tests := []struct {
		name  string
		max   float64
		cases [][2]point
	}{
		{
			name: "unit scale",
			max:  100,
			cases: [][2]point{
				{{0, 0}, {10, 90}},
				{{100, 0}, {90, 90}},
				{{0, 100}, {10, 10}},
				{{100, 100}, {90, 10}},
				{{50, 50}, {50, 50}},
			},
		},
		{
			name: "double range",
			max:  200,
			cases: [][2]point{
				{{0, 0}, {10, 90}},
				{{200, 0}, {90, 90}},
				{{0, 200}, {10, 10}},
				{{200, 200}, {90, 10}},
				{{100, 100}, {50, 50}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(b, 0, tt.max, 0, tt.max)
			for _, c := range tt.cases {
				checkCoords(t, p, c[0], c[1])
			}
		})
	}
}

func TestProjectionOffsetRange(t *testing.T) {
	p := New(bounds.FromPoints(0, 0, 100, 50), -50, 50, 10, 20)
	checkCoords(t, p, point{-50, 10}, point{0, 50})
	checkCoords(t, p, point{50, 20}, point{100, 0})
	checkCoords(t, p, point{0, 15}, point{50, 25})
}

func TestProjectionZeroRange(t *testing.T) {
	p := New(bounds.FromPoints(0, 0, 100, 100), 5, 5, 3, 3)
	if p.XMult != 200 || p.YMult != 200 {
		t.Fatalf("mult = (%v, %v), want (200, 200)", p.XMult, p.YMult)
	}
	checkCoords(t, p, point{5, 3}, point{0, 100})
}

func TestProjectionRoundTrip(t *testing.T) {
	p := New(bounds.FromPoints(0, 0, 512, 256), 0, 8, 0, 4)
	for x := 0.0; x <= 8; x += 0.25 {
		for y := 0.0; y <= 4; y += 0.5 {
			px, py := p.DataToPixel(x, y)
			gx, gy := p.PixelToData(px, py)
			if gx != x || gy != y {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", x, y, gx, gy)
			}
		}
	}
}

func TestFromRanges(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rx := ticks.NewRange(start, start.Add(100*time.Second))
	ry := ticks.NewRange(0.0, 10.0)

	p := FromRanges(bounds.New(100, 10), rx, ry)
	if p.XMult != 1 || p.YMult != 1 {
		t.Errorf("mult = (%v, %v), want (1, 1)", p.XMult, p.YMult)
	}
	if x, _ := p.DataToPixel(ticks.Position(start.Add(40*time.Second)), 0); x != 40 {
		t.Errorf("x = %v, want 40", x)
	}

	invalid := FromRanges(bounds.New(100, 10), ticks.Range[float64]{}, ticks.Range[float64]{})
	if invalid.XMult != 200 || invalid.LeftX != 0 {
		t.Errorf("invalid ranges = %+v", invalid)
	}
}

func TestProjectionOverflowingRange(t *testing.T) {
	p := New(bounds.FromPoints(0, 0, 400, 200), -math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64, math.MaxFloat64)

	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	cases := []struct{ data, pixel point }{
		{point{-math.MaxFloat64, -math.MaxFloat64}, point{0, 200}},
		{point{0, 0}, point{200, 100}},
		{point{math.MaxFloat64, math.MaxFloat64}, point{400, 0}},
	}
	for _, c := range cases {
		x, y := p.DataToPixel(c.data.x, c.data.y)
		if !near(x, c.pixel.x) || !near(y, c.pixel.y) {
			t.Errorf("DataToPixel(%v, %v) = (%v, %v), want (%v, %v)", c.data.x, c.data.y, x, y, c.pixel.x, c.pixel.y)
		}
	}
	for _, px := range []point{{200, 100}, {100, 150}, {300, 50}} {
		dx, dy := p.PixelToData(px.x, px.y)
		if math.IsInf(dx, 0) || math.IsNaN(dx) || math.IsInf(dy, 0) || math.IsNaN(dy) {
			t.Errorf("PixelToData(%v, %v) = (%v, %v), want finite", px.x, px.y, dx, dy)
		}
	}
}

func TestPixelToDataZeroArea(t *testing.T) {
	p := New(bounds.FromPoints(10, 10, 10, 90), 0, 1, 0, 1)
	if x, _ := p.PixelToData(20, 50); !math.IsInf(x, 1) {
		t.Errorf("PixelToData on zero width = %v, want +Inf", x)
	}
}
