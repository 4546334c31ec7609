package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartlayout/pkg/errors"
)

func TestParseEdge(t *testing.T) {
	for _, e := range Edges {
		got, err := ParseEdge(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	got, err := ParseEdge(" Bottom ")
	require.NoError(t, err)
	assert.Equal(t, Bottom, got)

	_, err = ParseEdge("middle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidEdge))
}

func TestEdgeIsHorizontal(t *testing.T) {
	assert.True(t, Top.IsHorizontal())
	assert.True(t, Bottom.IsHorizontal())
	assert.False(t, Left.IsHorizontal())
	assert.False(t, Right.IsHorizontal())
}

func TestAnchor(t *testing.T) {
	a, err := ParseAnchor("")
	require.NoError(t, err)
	assert.Equal(t, Middle, a)

	require.NoError(t, a.UnmarshalText([]byte("end")))
	assert.Equal(t, End, a)
	assert.Equal(t, 30.0, a.Pick(10, 20, 30))
	assert.Equal(t, 10.0, Start.Pick(10, 20, 30))
	assert.Equal(t, 20.0, Middle.Pick(10, 20, 30))

	_, err = ParseAnchor("centre")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindTickLabels, KindRotatedLabel, KindLegend} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("grid")
	assert.Error(t, err)
}
