package system

import (
	"image"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// TextureSizer reports the pixel size of a texture reference.
type TextureSizer interface {
	TextureSize(ref component.TextureRef) (w, h float64, ok bool)
}

// TextureSource resolves texture references to GPU images.
type TextureSource interface {
	TextureSizer
	Texture(ref component.TextureRef) *ebiten.Image
}

// DrawOrder returns every drawable entity sorted back to front: by layer,
// then by y, then by slot id.
func DrawOrder(w *ecs.World) []ecs.Entity {
	entities := ecs.Query(w, component.PositionComponent.Kind().ID(), component.SpriteComponent.Kind().ID())
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.Get(w, entities[i], component.SpriteComponent.Kind())
		sj, _ := ecs.Get(w, entities[j], component.SpriteComponent.Kind())
		if si.Layer != sj.Layer {
			return si.Layer < sj.Layer
		}
		pi, _ := ecs.Get(w, entities[i], component.PositionComponent.Kind())
		pj, _ := ecs.Get(w, entities[j], component.PositionComponent.Kind())
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return entities[i].Slot() < entities[j].Slot()
	})
	return entities
}

// SpriteBounds returns the world-space rect covered by e's sprite.
func SpriteBounds(w *ecs.World, e ecs.Entity, sizes TextureSizer) (common.Rect, bool) {
	pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	var tw, th float64
	if sprite.Source == nil && sizes != nil {
		tw, th, _ = sizes.TextureSize(sprite.Texture)
	}
	return sprite.Bounds(tw, th).Offset(common.Vec2{X: pos.X, Y: pos.Y}), true
}

type RenderSystem struct {
	textures TextureSource
}

func NewRenderSystem(textures TextureSource) *RenderSystem {
	return &RenderSystem{textures: textures}
}

// Draw renders every sprite relative to the camera's top-left corner.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, cam common.Vec2) {
	if r == nil || w == nil || screen == nil || r.textures == nil {
		return
	}

	for _, e := range DrawOrder(w) {
		pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}

		img := r.textures.Texture(s.Texture)
		if img == nil {
			continue
		}
		if s.Source != nil {
			rect := image.Rect(int(s.Source.Left()), int(s.Source.Top()), int(s.Source.Right()), int(s.Source.Bottom()))
			if sub, ok := img.SubImage(rect).(*ebiten.Image); ok {
				img = sub
			}
		}

		op := &ebiten.DrawImageOptions{}
		if s.FlipH {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(img.Bounds().Dx()), 0)
		}
		op.GeoM.Translate(pos.X+s.Offset.X-cam.X, pos.Y+s.Offset.Y-cam.Y)
		screen.DrawImage(img, op)
	}
}

// DrawCollisions outlines every collision box.
func DrawCollisions(w *ecs.World, screen *ebiten.Image, cam common.Vec2, clr color.Color) {
	ecs.ForEach2(w, component.PositionComponent.Kind(), component.CollisionComponent.Kind(), func(e ecs.Entity, pos *component.Position, col *component.Collision) {
		StrokeRect(screen, col.Bounds.Offset(common.Vec2{X: pos.X, Y: pos.Y}), cam, clr)
	})
}

// StrokeRect draws a one pixel outline of a world-space rect, snapped to
// whole screen pixels.
func StrokeRect(screen *ebiten.Image, r common.Rect, cam common.Vec2, clr color.Color) {
	r = r.Offset(cam.Scale(-1)).Align()
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, clr, false)
}
