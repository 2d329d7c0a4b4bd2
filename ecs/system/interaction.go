package system

import (
	"sort"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// InteractionSystem turns the player's interact press into an interaction
// event for the best interactable under the player.
type InteractionSystem struct{}

func NewInteractionSystem() *InteractionSystem {
	return &InteractionSystem{}
}

func (i *InteractionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, input *component.Input) {
		if !input.Interact || input.Locked {
			return
		}
		evt, ok := Dispatch(w, e)
		if !ok {
			return
		}
		w.Events().Push(ecs.Event{Type: ecs.EventInteraction, Data: evt})
	})
}

// Dispatch finds the interactable whose bounds contain actor's position.
// Higher priority wins; among equal priorities the lower slot id wins.
func Dispatch(w *ecs.World, actor ecs.Entity) (ecs.InteractionEvent, bool) {
	pos, ok := ecs.Get(w, actor, component.PositionComponent.Kind())
	if !ok {
		return ecs.InteractionEvent{}, false
	}
	at := common.Vec2{X: pos.X, Y: pos.Y}

	type candidate struct {
		e     ecs.Entity
		pos   common.Vec2
		inter *component.Interactable
	}
	var candidates []candidate
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.InteractableComponent.Kind(), func(e ecs.Entity, p *component.Position, inter *component.Interactable) {
		candidates = append(candidates, candidate{e: e, pos: common.Vec2{X: p.X, Y: p.Y}, inter: inter})
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].inter.Priority != candidates[j].inter.Priority {
			return candidates[i].inter.Priority < candidates[j].inter.Priority
		}
		return candidates[i].e.Slot() > candidates[j].e.Slot()
	})

	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		if c.e == actor {
			continue
		}
		if c.inter.Bounds.Offset(c.pos).Contains(at) {
			return ecs.InteractionEvent{Entity: c.e, Kind: c.inter.Kind}, true
		}
	}
	return ecs.InteractionEvent{}, false
}
