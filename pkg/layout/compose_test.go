package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartlayout/pkg/aspect"
	"github.com/matzehuels/chartlayout/pkg/bounds"
	"github.com/matzehuels/chartlayout/pkg/ticks"
)

// fixed is a component with a constant size that records the space it
// was offered.
type fixed struct {
	size       float64
	availWidth *float64
	availH     *float64
}

func (f fixed) Kind() Kind { return KindRotatedLabel }

func (f fixed) FixedHeight(Context[float64]) float64 { return f.size }

func (f fixed) Horizontal(_ Context[float64], availWidth float64) Use {
	if f.availWidth != nil {
		*f.availWidth = availWidth
	}
	return Use{Kind: KindRotatedLabel}
}

func (f fixed) Vertical(_ Context[float64], availHeight float64) (float64, Use) {
	if f.availH != nil {
		*f.availH = availHeight
	}
	return f.size, Use{Kind: KindRotatedLabel}
}

type offered struct{ width, height float64 }

func sampleEdges(o *offered) EdgeSet[float64, float64] {
	return EdgeSet[float64, float64]{
		Top:    []Component[float64]{fixed{size: 10, availWidth: &o.width}, fixed{size: 5}},
		Bottom: []Component[float64]{fixed{size: 20}},
		Left:   []Component[float64]{fixed{size: 30, availH: &o.height}},
		Right:  []Component[float64]{fixed{size: 15}, fixed{size: 5}},
	}
}

func TestMeasure(t *testing.T) {
	var o offered
	m := Measure(sampleEdges(&o), aspect.OuterRatio(200, 100).Resolve(0, 0), State[float64, float64]{})

	assert.Equal(t, 15.0, m.Total(Top))
	assert.Equal(t, 20.0, m.Total(Right))
	assert.Equal(t, 20.0, m.Total(Bottom))
	assert.Equal(t, 30.0, m.Total(Left))
	assert.Equal(t, 65.0, m.InnerHeight)
	assert.Equal(t, 150.0, m.InnerWidth)
	assert.Equal(t, 65.0, o.height)
	assert.Equal(t, 150.0, o.width)
	assert.Len(t, m.Uses[Top], 2)
	assert.Len(t, m.Uses[Right], 2)
}

func TestComposeOuter(t *testing.T) {
	var o offered
	l := Compose(sampleEdges(&o), aspect.OuterRatio(200, 100).Resolve(0, 0), State[float64, float64]{})

	assert.Equal(t, bounds.New(200, 100), l.Outer)
	assert.Equal(t, bounds.Bounds{Top: 15, Right: 180, Bottom: 80, Left: 30}, l.Inner)

	assert.Equal(t, bounds.Bounds{Top: 0, Right: 180, Bottom: 15, Left: 30}, l.Top.Bounds)
	assert.Equal(t, bounds.Bounds{Top: 15, Right: 200, Bottom: 80, Left: 180}, l.Right.Bounds)
	assert.Equal(t, bounds.Bounds{Top: 80, Right: 180, Bottom: 100, Left: 30}, l.Bottom.Bounds)
	assert.Equal(t, bounds.Bounds{Top: 15, Right: 30, Bottom: 80, Left: 0}, l.Left.Bounds)

	// The first component on an edge sits against the plot area.
	require.Len(t, l.Top.Components, 2)
	assert.Equal(t, bounds.Bounds{Top: 5, Right: 180, Bottom: 15, Left: 30}, l.Top.Components[0].Bounds)
	assert.Equal(t, bounds.Bounds{Top: 0, Right: 180, Bottom: 5, Left: 30}, l.Top.Components[1].Bounds)

	require.Len(t, l.Right.Components, 2)
	assert.Equal(t, bounds.Bounds{Top: 15, Right: 195, Bottom: 80, Left: 180}, l.Right.Components[0].Bounds)
	assert.Equal(t, bounds.Bounds{Top: 15, Right: 200, Bottom: 80, Left: 195}, l.Right.Components[1].Bounds)

	assert.Equal(t, l.Bottom.Bounds, l.Bottom.Components[0].Bounds)
	assert.Equal(t, l.Left.Bounds, l.Left.Components[0].Bounds)
}

func TestComposeInner(t *testing.T) {
	var o offered
	l := Compose(sampleEdges(&o), aspect.InnerRatio(100, 50).Resolve(0, 0), State[float64, float64]{})

	assert.Equal(t, bounds.New(150, 85), l.Outer)
	assert.Equal(t, bounds.Bounds{Top: 15, Right: 130, Bottom: 65, Left: 30}, l.Inner)
	assert.Equal(t, 100.0, o.width)
	assert.Equal(t, 50.0, o.height)
}

func TestComposeOverConstrained(t *testing.T) {
	var o offered
	l := Compose(sampleEdges(&o), aspect.OuterRatio(40, 20).Resolve(0, 0), State[float64, float64]{})

	assert.Equal(t, 0.0, o.width)
	assert.Equal(t, 0.0, o.height)
	assert.Equal(t, bounds.New(40, 20), l.Outer)
	assert.True(t, l.Inner.IsZero())

	for _, b := range l.Bands() {
		assert.GreaterOrEqual(t, b.Bounds.Width(), 0.0, b.Edge.String())
		assert.GreaterOrEqual(t, b.Bounds.Height(), 0.0, b.Edge.String())
		for _, c := range b.Components {
			assert.GreaterOrEqual(t, c.Bounds.Width(), 0.0, b.Edge.String())
			assert.GreaterOrEqual(t, c.Bounds.Height(), 0.0, b.Edge.String())
		}
	}
}

func TestComposeEmpty(t *testing.T) {
	l := Compose(EdgeSet[float64, float64]{}, aspect.OuterRatio(300, 200).Resolve(0, 0), State[float64, float64]{})
	assert.Equal(t, l.Outer, l.Inner)
	for _, e := range Edges {
		assert.Empty(t, l.Band(e).Components)
	}
}

func TestComposeTickLabels(t *testing.T) {
	state := State[float64, float64]{
		Font:   DefaultFont(),
		RangeX: ticks.NewRange(0.0, 1.0),
		RangeY: ticks.NewRange(0.0, 1.0),
	}
	edges := EdgeSet[float64, float64]{
		Bottom: []Component[float64]{FloatTickLabels()},
		Left:   []Component[float64]{FloatTickLabels()},
	}
	// 16px of bottom labels leave 176px: eleven left labels of three
	// characters. 30px of left labels leave 330px: eleven bottom labels.
	l := Compose(edges, aspect.OuterRatio(360, 192).Resolve(0, 0), state)

	assert.Equal(t, bounds.Bounds{Top: 0, Right: 360, Bottom: 176, Left: 30}, l.Inner)
	assert.Len(t, l.Left.Components[0].Use.Labels, 11)
	assert.Len(t, l.Bottom.Components[0].Use.Labels, 11)
}

func TestXWidth(t *testing.T) {
	l := Layout{Inner: bounds.Bounds{Top: 0, Right: 110, Bottom: 50, Left: 10}}
	assert.Equal(t, 25.0, l.XWidth(4))
	assert.Equal(t, 100.0, l.XWidth(0))
	assert.Equal(t, bounds.Bounds{Top: 0, Right: 97.5, Bottom: 50, Left: 22.5}, l.BarInner(4))
}
