// Command sheetview previews the animations of one sprite sheet with the
// current frame's bounds outlined. Left and right cycle through its tags;
// R reloads the assets from disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	viewSize = 256
	zoom     = 4
)

type viewer struct {
	lib     *assets.Library
	sheet   string
	tags    []string
	current int

	world  *ecs.World
	entity ecs.Entity
	anim   *system.AnimationSystem
	render *system.RenderSystem
	canvas *ebiten.Image
}

func newViewer(lib *assets.Library, sheet, tag string) (*viewer, error) {
	s, ok := lib.Sheet(sheet)
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q", sheet)
	}
	v := &viewer{
		lib:    lib,
		sheet:  sheet,
		tags:   s.Tags(),
		world:  ecs.NewWorld(),
		anim:   system.NewAnimationSystem(lib),
		render: system.NewRenderSystem(lib),
		canvas: ebiten.NewImage(viewSize/zoom, viewSize/zoom),
	}
	for i, name := range v.tags {
		if name == tag {
			v.current = i
		}
	}

	v.entity = ecs.CreateEntity(v.world)
	if err := ecs.Add(v.world, v.entity, component.PositionComponent.Kind(), &component.Position{}); err != nil {
		return nil, err
	}
	if err := ecs.Add(v.world, v.entity, component.SpriteComponent.Kind(), &component.Sprite{
		Texture:  component.TextureRef{Sheet: sheet},
		Centered: true,
	}); err != nil {
		return nil, err
	}
	if err := ecs.Add(v.world, v.entity, component.AnimationComponent.Kind(), &component.Animation{
		Sheet: sheet,
		Name:  v.tag(),
	}); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) tag() string {
	if len(v.tags) == 0 {
		return ""
	}
	return v.tags[v.current]
}

func (v *viewer) Update() error {
	if n := len(v.tags); n > 0 {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyRight):
			v.current = (v.current + 1) % n
		case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
			v.current = (v.current - 1 + n) % n
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if _, err := v.lib.Reload(context.Background()); err != nil {
			log.Printf("reload: %v", err)
		}
	}
	if anim, ok := ecs.Get(v.world, v.entity, component.AnimationComponent.Kind()); ok {
		anim.Play(v.tag())
	}
	v.anim.Update(v.world)
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xff})
	v.canvas.Clear()
	half := float64(viewSize / zoom / 2)
	v.render.Draw(v.world, v.canvas, common.Vec2{X: -half, Y: -half})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(v.canvas, op)

	if bounds, ok := system.SpriteBounds(v.world, v.entity, v.lib); ok {
		bounds = bounds.Offset(common.Vec2{X: half, Y: half}).Scale(zoom)
		system.StrokeRect(screen, bounds, common.Vec2{}, colornames.Lime)
	}

	frame := 0
	if anim, ok := ecs.Get(v.world, v.entity, component.AnimationComponent.Kind()); ok {
		frame = anim.Frame
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s/%s tick %d", v.sheet, v.tag(), frame))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

func main() {
	assetDir := flag.String("assets", "assets", "asset directory; the embedded assets are used when it does not exist")
	sheet := flag.String("sheet", "player", "sprite sheet id from the asset manifest")
	tag := flag.String("tag", "", "animation to start on")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	lib, err := assets.Load(context.Background(), assets.FS(*assetDir), assets.ManifestPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	v, err := newViewer(lib, *sheet, *tag)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(2*viewSize, 2*viewSize)
	ebiten.SetWindowTitle("sheetview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
