package system

import (
	"math"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// CollisionSystem pushes every player-tagged entity out of the solid
// entities it overlaps.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (c *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range ecs.Query(w, component.PlayerTagComponent.Kind().ID()) {
		ResolvePenetrations(w, e)
	}
}

// WorldBox returns the collision box of e in world coordinates.
func WorldBox(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	col, ok := ecs.Get(w, e, component.CollisionComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	return col.Bounds.Offset(common.Vec2{X: pos.X, Y: pos.Y}), true
}

// ResolvePenetrations moves e out of every collider its box overlaps. Each
// overlap contributes the smallest single-axis push, measured against e's
// box before any correction; the pushes are summed onto e's position.
func ResolvePenetrations(w *ecs.World, e ecs.Entity) {
	box, ok := WorldBox(w, e)
	if !ok {
		return
	}
	pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())

	ecs.ForEach2(w, component.PositionComponent.Kind(), component.CollisionComponent.Kind(), func(other ecs.Entity, op *component.Position, oc *component.Collision) {
		if other == e {
			return
		}
		obox := oc.Bounds.Offset(common.Vec2{X: op.X, Y: op.Y})
		if !box.Overlaps(obox) {
			return
		}
		push := minimumTranslation(box, obox)
		pos.X += push.X
		pos.Y += push.Y
	})
}

// minimumTranslation returns the shortest single-axis vector that separates
// box from other. Ties go to the horizontal axis.
func minimumTranslation(box, other common.Rect) common.Vec2 {
	x := common.MinAbs(other.Left()-box.Right(), other.Right()-box.Left())
	y := common.MinAbs(other.Top()-box.Bottom(), other.Bottom()-box.Top())
	if math.Abs(x) <= math.Abs(y) {
		return common.Vec2{X: x}
	}
	return common.Vec2{Y: y}
}
