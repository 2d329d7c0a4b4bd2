package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlapsAndContains(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name     string
		other    Rect
		overlaps bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching_edge", Rect{X: 10, Y: 0, W: 5, H: 5}, true},
		{"apart", Rect{X: 11, Y: 11, W: 5, H: 5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, base.Overlaps(tc.other))
			assert.Equal(t, tc.overlaps, tc.other.Overlaps(base))
		})
	}

	assert.True(t, base.Contains(Vec2{X: 10, Y: 10}))
	assert.False(t, base.Contains(Vec2{X: 10.5, Y: 3}))
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 5}

	assert.Equal(t, Rect{X: 7, Y: 1, W: 4, H: 5}, r.Offset(Vec2{X: 5, Y: -2}))
	assert.Equal(t, Rect{X: 0, Y: 0, W: 6, H: 8}, r.Combine(Rect{X: 0, Y: 0, W: 1, H: 1}))
	assert.Equal(t, Rect{X: 4, Y: 6, W: 8, H: 10}, r.Scale(2))
	assert.Equal(t, Rect{X: 1, Y: 2, W: 2, H: 3}, Rect{X: 1.2, Y: 1.6, W: 1.6, H: 3.1}.Align())
	assert.Equal(t, Rect{X: 1, Y: 2, W: 3, H: 4}, Rect{X: 4, Y: 6, W: -3, H: -4}.Normalize())
	assert.Equal(t, Rect{W: 16, H: 16}, DefaultRect())
}

func TestMinAbs(t *testing.T) {
	assert.Equal(t, -1.0, MinAbs(-1, 2))
	assert.Equal(t, 2.0, MinAbs(-3, 2))
	assert.Equal(t, 3.0, MinAbs(3, -3))
}
