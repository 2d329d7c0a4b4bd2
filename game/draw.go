package game

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	boxMargin   = 8
	boxHeight   = 96
	boxPadding  = 8
	portraitBox = 64
	lineHeight  = 14
	wrapColumns = 70
)

var (
	face        ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	boxColor                = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xe0}
	groundColor             = colornames.Darkolivegreen
)

// Draw renders the world and, when shown, the dialogue box.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(groundColor)
	cam := g.Camera.TopLeft()
	g.render.Draw(g.World.World, screen, cam)
	if g.showCollisions {
		system.DrawCollisions(g.World.World, screen, cam, colornames.Red)
	}
	g.drawDialogue(screen)
}

func (g *Game) drawDialogue(screen *ebiten.Image) {
	d := g.Dialogue
	if !d.Shown() {
		return
	}

	x := float32(boxMargin)
	y := float32(system.ViewHeight - boxHeight - boxMargin)
	w := float32(system.ViewWidth - 2*boxMargin)
	vector.DrawFilledRect(screen, x, y, w, boxHeight, boxColor, false)
	vector.StrokeRect(screen, x, y, w, boxHeight, 1, colornames.White, false)

	textX := float64(x + boxPadding)
	if p := d.Portrait(); p != "" && g.assets != nil {
		if img := g.assets.Texture(component.TextureRef{Name: p}); img != nil {
			op := &ebiten.DrawImageOptions{}
			b := img.Bounds()
			scale := float64(portraitBox) / float64(max(b.Dx(), b.Dy(), 1))
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(textX, float64(y+boxPadding))
			screen.DrawImage(img, op)
			textX += portraitBox + boxPadding
		}
	}

	lineY := float64(y + boxPadding)
	for _, line := range wrap(d.Visible(), wrapColumns) {
		drawText(screen, line, textX, lineY, colornames.White)
		lineY += lineHeight
	}

	if !d.Revealed() {
		return
	}
	for i, choice := range d.Choices() {
		prefix, clr := "  ", color.Color(colornames.Lightgray)
		if i == d.Selected() {
			prefix, clr = "> ", colornames.Gold
		}
		drawText(screen, prefix+choice, textX, lineY, clr)
		lineY += lineHeight
	}
}

func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, face, op)
}

// wrap breaks s into lines of at most columns runes, splitting on spaces.
func wrap(s string, columns int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			if len(line) > 0 && len(line)+1+len(w) > columns {
				lines = append(lines, string(line))
				line = nil
			}
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = append(line, w...)
		}
		lines = append(lines, string(line))
	}
	return lines
}
