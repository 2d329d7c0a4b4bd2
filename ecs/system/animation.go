package system

import (
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// SheetSource looks up animated sprite sheets by id.
type SheetSource interface {
	Sheet(id string) (*assets.SpriteSheet, bool)
}

// AnimationSystem advances every animation by one tick and copies the
// current frame's source rect and offset onto the entity's sprite.
type AnimationSystem struct {
	sheets SheetSource
}

func NewAnimationSystem(sheets SheetSource) *AnimationSystem {
	return &AnimationSystem{sheets: sheets}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		anim.Frame++
		if anim.Frame >= a.sheet(anim.Sheet).AnimLength(anim.Name) {
			anim.Frame = 0
		}
	})

	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.AnimationComponent.Kind(), func(e ecs.Entity, sprite *component.Sprite, anim *component.Animation) {
		frame := a.sheet(anim.Sheet).AnimFrame(anim.Name, anim.Frame)
		offset := frame.Offset.Add(anim.Offset)
		if sprite.Centered {
			offset = offset.Sub(frame.SourceSize.Scale(0.5))
		}
		src := frame.Src
		sprite.Source = &src
		sprite.Offset = offset
	})
}

func (a *AnimationSystem) sheet(id string) *assets.SpriteSheet {
	if a.sheets == nil {
		return nil
	}
	s, ok := a.sheets.Sheet(id)
	if !ok {
		return nil
	}
	return s
}
