package system

import (
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowThreshold(t *testing.T) {
	tests := []struct {
		name     string
		follower component.Position
		target   component.Position
		maxDist  float64
		speed    float64
		want     component.Position
	}{
		{name: "within range", follower: component.Position{X: 0, Y: 0}, target: component.Position{X: 10, Y: 10}, maxDist: 20, want: component.Position{X: 0, Y: 0}},
		{name: "exactly at range", follower: component.Position{X: 0, Y: 0}, target: component.Position{X: 12, Y: 8}, maxDist: 20, speed: 2, want: component.Position{X: 0, Y: 0}},
		{name: "x dominant", follower: component.Position{X: 0, Y: 0}, target: component.Position{X: 30, Y: 10}, maxDist: 20, speed: 2, want: component.Position{X: 2, Y: 0}},
		{name: "y dominant negative", follower: component.Position{X: 0, Y: 0}, target: component.Position{X: 5, Y: -40}, maxDist: 20, speed: 3, want: component.Position{X: 0, Y: -3}},
		{name: "step capped by delta", follower: component.Position{X: 0, Y: 0}, target: component.Position{X: 0, Y: 4}, maxDist: 1, speed: 10, want: component.Position{X: 0, Y: 4}},
		{name: "tie moves x", follower: component.Position{X: 0, Y: 0}, target: component.Position{X: -15, Y: 15}, maxDist: 20, speed: 1, want: component.Position{X: -1, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			target := spawn(t, w, tt.target.X, tt.target.Y)
			follower := spawn(t, w, tt.follower.X, tt.follower.Y)
			require.NoError(t, ecs.Add(w, follower, component.FollowComponent.Kind(), &component.Follow{
				Target:      uint64(target),
				MaxDistance: tt.maxDist,
				Speed:       tt.speed,
			}))

			NewFollowSystem().Update(w)
			assert.Equal(t, tt.want, position(t, w, follower))
			assert.Equal(t, tt.target, position(t, w, target))
		})
	}
}

func TestFollowZigZags(t *testing.T) {
	w := ecs.NewWorld()
	target := spawn(t, w, 10, 9)
	follower := spawn(t, w, 0, 0)
	require.NoError(t, ecs.Add(w, follower, component.FollowComponent.Kind(), &component.Follow{Target: uint64(target), Speed: 2}))

	sys := NewFollowSystem()
	sys.Update(w)
	assert.Equal(t, component.Position{X: 2, Y: 0}, position(t, w, follower))
	sys.Update(w)
	assert.Equal(t, component.Position{X: 2, Y: 2}, position(t, w, follower))
}

func TestFollowMissingTargetIsSkipped(t *testing.T) {
	w := ecs.NewWorld()
	target := spawn(t, w, 100, 0)
	noPos := ecs.CreateEntity(w)
	a := spawn(t, w, 0, 0)
	b := spawn(t, w, 0, 0)
	require.NoError(t, ecs.Add(w, a, component.FollowComponent.Kind(), &component.Follow{Target: uint64(target), Speed: 1}))
	require.NoError(t, ecs.Add(w, b, component.FollowComponent.Kind(), &component.Follow{Target: uint64(noPos), Speed: 1}))
	require.True(t, ecs.DestroyEntity(w, target))

	// A recycled slot must not be mistaken for the dead target.
	spawn(t, w, 50, 0)

	NewFollowSystem().Update(w)
	assert.Equal(t, component.Position{}, position(t, w, a))
	assert.Equal(t, component.Position{}, position(t, w, b))
}
