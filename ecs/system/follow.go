package system

import (
	"math"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// FollowSystem steps followers toward their targets one axis at a time.
type FollowSystem struct{}

func NewFollowSystem() *FollowSystem {
	return &FollowSystem{}
}

func (f *FollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.FollowComponent.Kind(), func(e ecs.Entity, pos *component.Position, follow *component.Follow) {
		target, ok := ecs.Get(w, ecs.Entity(follow.Target), component.PositionComponent.Kind())
		if !ok {
			return
		}
		step(pos, target, follow)
	})
}

func step(pos, target *component.Position, follow *component.Follow) {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	if math.Abs(dx)+math.Abs(dy) <= follow.MaxDistance {
		return
	}
	if math.Abs(dx) >= math.Abs(dy) {
		pos.X += math.Copysign(math.Min(math.Abs(dx), follow.Speed), dx)
		return
	}
	pos.Y += math.Copysign(math.Min(math.Abs(dy), follow.Speed), dy)
}
