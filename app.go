package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/editor"
	"github.com/milk9111/overworld/game"
	"github.com/milk9111/overworld/input"
)

const (
	viewWidth  = system.ViewWidth
	viewHeight = system.ViewHeight
)

// app adapts the game and the optional editor to ebiten.Game. The world is
// paused while the editor is active.
type app struct {
	game   *game.Game
	editor *editor.Editor
}

func (a *app) Update() error {
	in := input.Poll()
	if a.editor != nil {
		if err := a.editor.Update(in); err != nil {
			return err
		}
		if a.editor.Active() {
			return nil
		}
	}
	return a.game.Update(in)
}

func (a *app) Draw(screen *ebiten.Image) {
	a.game.Draw(screen)
	if a.editor != nil {
		a.editor.Draw(screen)
	}
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewWidth, viewHeight
}
