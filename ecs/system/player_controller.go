package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const defaultMoveSpeed = 1.0

// PlayerControllerSystem moves the player from its Input and picks the
// walk animation for the direction held.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := ecs.Query(w,
		component.PlayerComponent.Kind().ID(),
		component.InputComponent.Kind().ID(),
		component.PositionComponent.Kind().ID(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok || input.Locked {
			continue
		}
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())

		speed := player.MoveSpeed
		if speed <= 0 {
			speed = defaultMoveSpeed
		}
		pos.X += input.MoveX * speed
		pos.Y += input.MoveY * speed

		anim, hasAnim := ecs.Get(w, e, component.AnimationComponent.Kind())
		sprite, hasSprite := ecs.Get(w, e, component.SpriteComponent.Kind())

		name, flip := "", false
		switch {
		case input.MoveX < 0:
			name, flip = player.SideAnim, true
		case input.MoveX > 0:
			name = player.SideAnim
		case input.MoveY < 0:
			name = player.UpAnim
		case input.MoveY > 0:
			name = player.IdleAnim
		default:
			continue
		}
		if hasAnim && name != "" {
			anim.Play(name)
		}
		if hasSprite {
			sprite.FlipH = flip
		}
	}
}
