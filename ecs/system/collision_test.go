package system

import (
	"testing"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitBox = common.Rect{W: 10, H: 10}

func TestResolvePenetrationsNoOverlapIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		other common.Vec2
	}{
		{name: "far away", other: common.Vec2{X: 100, Y: 100}},
		{name: "touching right edge", other: common.Vec2{X: 10, Y: 0}},
		{name: "touching bottom edge", other: common.Vec2{X: 3, Y: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			a := spawnBox(t, w, 0, 0, unitBox)
			spawnBox(t, w, tt.other.X, tt.other.Y, unitBox)

			ResolvePenetrations(w, a)
			assert.Equal(t, component.Position{X: 0, Y: 0}, position(t, w, a))
		})
	}
}

func TestResolvePenetrationsSingleAxis(t *testing.T) {
	tests := []struct {
		name  string
		a     common.Vec2
		b     common.Vec2
		wantX float64
		wantY float64
	}{
		{name: "push left", a: common.Vec2{X: 2, Y: 0}, b: common.Vec2{X: 10, Y: 1}, wantX: 0, wantY: 0},
		{name: "push right", a: common.Vec2{X: 17, Y: 0}, b: common.Vec2{X: 10, Y: 1}, wantX: 20, wantY: 0},
		{name: "push up", a: common.Vec2{X: 11, Y: -8}, b: common.Vec2{X: 10, Y: 0}, wantX: 11, wantY: -10},
		{name: "push down", a: common.Vec2{X: 11, Y: 7}, b: common.Vec2{X: 10, Y: 0}, wantX: 11, wantY: 10},
		{name: "tie goes horizontal", a: common.Vec2{X: 5, Y: 5}, b: common.Vec2{X: 10, Y: 10}, wantX: 0, wantY: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			a := spawnBox(t, w, tt.a.X, tt.a.Y, unitBox)
			spawnBox(t, w, tt.b.X, tt.b.Y, unitBox)

			ResolvePenetrations(w, a)
			got := position(t, w, a)
			assert.Equal(t, tt.wantX, got.X)
			assert.Equal(t, tt.wantY, got.Y)

			dx, dy := got.X-tt.a.X, got.Y-tt.a.Y
			assert.True(t, dx == 0 || dy == 0, "correction must be single axis, got (%v, %v)", dx, dy)
		})
	}
}

func TestResolvePenetrationsAccumulatesFromOriginalBox(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnBox(t, w, 0, 0, unitBox)
	// Overlaps by 2 on the right and by 3 below.
	spawnBox(t, w, 8, -20, common.Rect{W: 10, H: 40})
	spawnBox(t, w, -20, 7, common.Rect{W: 40, H: 10})

	ResolvePenetrations(w, a)
	assert.Equal(t, component.Position{X: -2, Y: -3}, position(t, w, a))
}

func TestResolvePenetrationsUsesBoundsOffset(t *testing.T) {
	w := ecs.NewWorld()
	a := spawnBox(t, w, 0, 0, common.Rect{X: 4, Y: 4, W: 4, H: 4})
	spawnBox(t, w, 7, 0, common.Rect{W: 10, H: 20})

	ResolvePenetrations(w, a)
	assert.Equal(t, component.Position{X: -1, Y: 0}, position(t, w, a))
}

func TestResolvePenetrationsWithoutCollisionIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	a := spawn(t, w, 0, 0)
	spawnBox(t, w, 0, 0, unitBox)

	ResolvePenetrations(w, a)
	assert.Equal(t, component.Position{}, position(t, w, a))
}

func TestCollisionSystemMovesOnlyPlayers(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnBox(t, w, 2, 0, unitBox)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	rock := spawnBox(t, w, 10, 1, unitBox)

	NewCollisionSystem().Update(w)
	assert.Equal(t, component.Position{X: 0, Y: 0}, position(t, w, player))
	assert.Equal(t, component.Position{X: 10, Y: 1}, position(t, w, rock))
}
