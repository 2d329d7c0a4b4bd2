package system

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	ViewWidth  = 640
	ViewHeight = 360

	cameraLerp = 0.1
	tickDelta  = float32(1.0 / 60.0)
)

type cameraPan struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	done   func(finished bool)
}

// CameraSystem keeps a ViewWidth x ViewHeight view centered on the player.
// A pan takes over from following until Release is called.
type CameraSystem struct {
	Center common.Vec2

	pan    *cameraPan
	held   bool
	snap   bool
	target ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{snap: true}
}

// TopLeft returns the world position drawn at the screen origin.
func (cs *CameraSystem) TopLeft() common.Vec2 {
	return common.Vec2{X: cs.Center.X - ViewWidth/2, Y: cs.Center.Y - ViewHeight/2}
}

// ScreenToWorld converts a screen position to world coordinates.
func (cs *CameraSystem) ScreenToWorld(x, y float64) common.Vec2 {
	return cs.TopLeft().Add(common.Vec2{X: x, Y: y})
}

// Pan moves the view center to (x, y) over duration seconds. done runs once:
// with true when the tween finishes, with false when the pan is released or
// replaced before that.
func (cs *CameraSystem) Pan(x, y float64, duration float32, fn ease.TweenFunc, done func(finished bool)) {
	if fn == nil {
		fn = ease.InOutQuad
	}
	cs.abortPan()
	cs.pan = &cameraPan{
		tweenX: gween.New(float32(cs.Center.X), float32(x), duration, fn),
		tweenY: gween.New(float32(cs.Center.Y), float32(y), duration, fn),
		done:   done,
	}
	cs.held = true
}

// Release returns the camera to following the player.
func (cs *CameraSystem) Release() {
	cs.abortPan()
	cs.held = false
}

func (cs *CameraSystem) abortPan() {
	p := cs.pan
	cs.pan = nil
	if p != nil && p.done != nil {
		p.done(false)
	}
}

// Snap jumps straight to the player on the next update, looking the player
// up again in case the world was replaced.
func (cs *CameraSystem) Snap() {
	cs.snap = true
	cs.target = 0
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs.pan != nil {
		cs.updatePan()
		return
	}
	if cs.held || w == nil {
		return
	}

	if !ecs.IsAlive(w, cs.target) {
		target, ok := ecs.First(w, component.PlayerTagComponent.Kind())
		if !ok {
			return
		}
		cs.target = target
	}
	pos, ok := ecs.Get(w, cs.target, component.PositionComponent.Kind())
	if !ok {
		return
	}
	if cs.snap {
		cs.Center = common.Vec2{X: pos.X, Y: pos.Y}
		cs.snap = false
		return
	}
	cs.Center.X = common.Lerp(cs.Center.X, pos.X, cameraLerp)
	cs.Center.Y = common.Lerp(cs.Center.Y, pos.Y, cameraLerp)
}

func (cs *CameraSystem) updatePan() {
	p := cs.pan
	if !p.doneX {
		val, done := p.tweenX.Update(tickDelta)
		cs.Center.X = float64(val)
		p.doneX = done
	}
	if !p.doneY {
		val, done := p.tweenY.Update(tickDelta)
		cs.Center.Y = float64(val)
		p.doneY = done
	}
	if p.doneX && p.doneY {
		cs.pan = nil
		if p.done != nil {
			p.done(true)
		}
	}
}
