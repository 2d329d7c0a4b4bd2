package editor

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
)

var (
	ErrNothingSelected = errors.New("editor: nothing selected")
	ErrUnknownField    = errors.New("editor: unknown field")
	ErrFieldMissing    = errors.New("editor: selected entity has no such field")
)

// Field is one editable number of the selected entity.
type Field struct {
	Name  string
	Value float64
}

type fieldDef struct {
	name string
	ref  func(w *ecs.World, e ecs.Entity) (get func() float64, set func(float64), ok bool)
}

func floatField[T any](name string, kind component.ComponentKind[T], ptr func(*T) *float64) fieldDef {
	return fieldDef{name: name, ref: func(w *ecs.World, e ecs.Entity) (func() float64, func(float64), bool) {
		c, ok := ecs.Get(w, e, kind)
		if !ok {
			return nil, nil, false
		}
		p := ptr(c)
		if p == nil {
			return nil, nil, false
		}
		return func() float64 { return *p }, func(v float64) { *p = v }, true
	}}
}

func intField[T any](name string, kind component.ComponentKind[T], ptr func(*T) *int) fieldDef {
	return fieldDef{name: name, ref: func(w *ecs.World, e ecs.Entity) (func() float64, func(float64), bool) {
		c, ok := ecs.Get(w, e, kind)
		if !ok {
			return nil, nil, false
		}
		p := ptr(c)
		return func() float64 { return float64(*p) }, func(v float64) { *p = int(math.Round(v)) }, true
	}}
}

func sourceField(name string, ptr func(*common.Rect) *float64) fieldDef {
	return floatField(name, component.SpriteComponent.Kind(), func(s *component.Sprite) *float64 {
		if s.Source == nil {
			return nil
		}
		return ptr(s.Source)
	})
}

var inspectorFields = []fieldDef{
	floatField("position.x", component.PositionComponent.Kind(), func(p *component.Position) *float64 { return &p.X }),
	floatField("position.y", component.PositionComponent.Kind(), func(p *component.Position) *float64 { return &p.Y }),
	floatField("sprite.offset.x", component.SpriteComponent.Kind(), func(s *component.Sprite) *float64 { return &s.Offset.X }),
	floatField("sprite.offset.y", component.SpriteComponent.Kind(), func(s *component.Sprite) *float64 { return &s.Offset.Y }),
	sourceField("sprite.source.x", func(r *common.Rect) *float64 { return &r.X }),
	sourceField("sprite.source.y", func(r *common.Rect) *float64 { return &r.Y }),
	sourceField("sprite.source.w", func(r *common.Rect) *float64 { return &r.W }),
	sourceField("sprite.source.h", func(r *common.Rect) *float64 { return &r.H }),
	intField("sprite.layer", component.SpriteComponent.Kind(), func(s *component.Sprite) *int { return &s.Layer }),
	floatField("animation.offset.x", component.AnimationComponent.Kind(), func(a *component.Animation) *float64 { return &a.Offset.X }),
	floatField("animation.offset.y", component.AnimationComponent.Kind(), func(a *component.Animation) *float64 { return &a.Offset.Y }),
	intField("animation.frame", component.AnimationComponent.Kind(), func(a *component.Animation) *int { return &a.Frame }),
	floatField("collision.x", component.CollisionComponent.Kind(), func(c *component.Collision) *float64 { return &c.Bounds.X }),
	floatField("collision.y", component.CollisionComponent.Kind(), func(c *component.Collision) *float64 { return &c.Bounds.Y }),
	floatField("collision.w", component.CollisionComponent.Kind(), func(c *component.Collision) *float64 { return &c.Bounds.W }),
	floatField("collision.h", component.CollisionComponent.Kind(), func(c *component.Collision) *float64 { return &c.Bounds.H }),
}

// Fields lists the editable numbers of the selected entity in a fixed order.
// Components the entity lacks are left out.
func (e *Editor) Fields() []Field {
	if e.selected == 0 {
		return nil
	}
	w := e.game.World.World
	var out []Field
	for _, def := range inspectorFields {
		get, _, ok := def.ref(w, e.selected)
		if !ok {
			continue
		}
		out = append(out, Field{Name: def.name, Value: get()})
	}
	return out
}

// SetField writes v into the named field of the selected entity. Integer
// fields round to the nearest whole number.
func (e *Editor) SetField(name string, v float64) error {
	if e.selected == 0 {
		return ErrNothingSelected
	}
	for _, def := range inspectorFields {
		if def.name != name {
			continue
		}
		_, set, ok := def.ref(e.game.World.World, e.selected)
		if !ok {
			return fmt.Errorf("%w: %s", ErrFieldMissing, name)
		}
		set(v)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

func (e *Editor) selectedSprite() (*component.Sprite, bool) {
	if e.selected == 0 {
		return nil, false
	}
	return ecs.Get(e.game.World.World, e.selected, component.SpriteComponent.Kind())
}

// Centered reports the selected sprite's centering flag.
func (e *Editor) Centered() bool {
	s, ok := e.selectedSprite()
	return ok && s.Centered
}

func (e *Editor) SetCentered(centered bool) {
	if s, ok := e.selectedSprite(); ok {
		s.Centered = centered
	}
}

// AddSource gives the selected sprite a default source rect when it draws
// the whole texture.
func (e *Editor) AddSource() bool {
	s, ok := e.selectedSprite()
	if !ok || s.Source != nil {
		return false
	}
	r := common.DefaultRect()
	s.Source = &r
	return true
}

// AddCollision makes the selected entity solid with default bounds.
func (e *Editor) AddCollision() bool {
	if e.selected == 0 {
		return false
	}
	w := e.game.World.World
	if ecs.Has(w, e.selected, component.CollisionComponent.Kind()) {
		return false
	}
	err := ecs.Add(w, e.selected, component.CollisionComponent.Kind(), &component.Collision{Bounds: common.DefaultRect()})
	return err == nil
}

// Textures lists the plain textures a sprite can be switched to.
func (e *Editor) Textures() []string {
	a := e.game.Assets()
	if a == nil {
		return nil
	}
	return a.TextureNames()
}

// CycleTexture switches the selected plain sprite to the next texture name.
// Animated sprites are left alone.
func (e *Editor) CycleTexture() (string, bool) {
	s, ok := e.selectedSprite()
	names := e.Textures()
	if !ok || s.Texture.Animated() || len(names) == 0 {
		return "", false
	}
	next := names[0]
	for i, name := range names {
		if name == s.Texture.Name {
			next = names[(i+1)%len(names)]
			break
		}
	}
	s.Texture.Name = next
	return next, true
}

// SelectionBounds covers both the sprite and the collision box of ent.
func (e *Editor) SelectionBounds(ent ecs.Entity) (common.Rect, bool) {
	w := e.game.World.World
	sprite, hasSprite := system.SpriteBounds(w, ent, e.game.Assets())
	box, hasBox := system.WorldBox(w, ent)
	switch {
	case hasSprite && hasBox:
		return sprite.Combine(box), true
	case hasSprite:
		return sprite, true
	case hasBox:
		return box, true
	}
	return common.Rect{}, false
}
