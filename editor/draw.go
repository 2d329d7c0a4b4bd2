package editor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
	"golang.org/x/image/colornames"
)

const crosshairSize = 6

// Draw overlays hover and selection highlights and the side panel on top
// of the game's own drawing.
func (e *Editor) Draw(screen *ebiten.Image) {
	if !e.active {
		return
	}
	cam := e.game.Camera.TopLeft()
	w := e.game.World.World
	sizes := e.game.Assets()

	if e.hovered != 0 && e.hovered != e.selected {
		if r, ok := system.SpriteBounds(w, e.hovered, sizes); ok {
			system.StrokeRect(screen, r, cam, colornames.Yellow)
		}
	}
	if e.selected != 0 {
		if r, ok := e.SelectionBounds(e.selected); ok {
			system.StrokeRect(screen, r, cam, colornames.Cyan)
		}
		if pos, ok := ecs.Get(w, e.selected, component.PositionComponent.Kind()); ok {
			drawCrosshair(screen, float32(pos.X-cam.X), float32(pos.Y-cam.Y), colornames.Cyan)
		}
	}

	if e.panel != nil {
		e.panel.draw(screen)
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[%s] %s", e.tool, e.prefab), 4, 4)
}

func drawCrosshair(screen *ebiten.Image, x, y float32, clr color.Color) {
	vector.StrokeLine(screen, x-crosshairSize, y, x+crosshairSize, y, 1, clr, false)
	vector.StrokeLine(screen, x, y-crosshairSize, x, y+crosshairSize, 1, clr, false)
}
