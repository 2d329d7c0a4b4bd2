package editor

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/overworld/ecs/system"
	"golang.org/x/image/font/gofont/goregular"
)

const panelWidth = 150

// panel is the editor's side panel: tool buttons, the spawnable prefab
// list, save and load. The inspector sits on the opposite edge.
type panel struct {
	ui        *ebitenui.UI
	status    *widget.Text
	editor    *Editor
	inspector *inspector
	x         float64
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newTheme(face *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: face,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.White,
				Selected:            color.RGBA{255, 215, 0, 255},
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{60, 60, 90, 255},
				SelectedBackground:  color.RGBA{50, 50, 80, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{30, 30, 30, 255}),
				Mask: solidNineSlice(color.RGBA{30, 30, 30, 255}),
			},
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: face,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}

func newPanel(e *Editor) *panel {
	ui := &ebitenui.UI{}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("editor: load font: " + err.Error())
	}
	var face text.Face = &text.GoTextFace{Source: src, Size: 11}
	ui.PrimaryTheme = newTheme(&face)

	p := &panel{ui: ui, editor: e, x: system.ViewWidth - panelWidth}

	side := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 230})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, system.ViewHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				StretchVertical:    true,
			}),
		),
	)

	p.status = widget.NewText(
		widget.TextOpts.Text("", &face, color.White),
	)
	side.AddChild(p.status)

	side.AddChild(p.toolBar(&face))

	prefabEntries := make([]any, 0, len(e.Prefabs()))
	for _, name := range e.Prefabs() {
		prefabEntries = append(prefabEntries, name)
	}
	prefabList := widget.NewList(
		widget.ListOpts.Entries(prefabEntries),
		widget.ListOpts.EntryLabelFunc(func(entry any) string {
			name, _ := entry.(string)
			return name
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if name, ok := args.Entry.(string); ok {
				e.SetPrefab(name)
				e.SetTool(ToolSpawn)
			}
		}),
	)
	prefabList.GetWidget().MinHeight = 140
	side.AddChild(prefabList)

	side.AddChild(p.button(&face, "Save", func() { _ = e.Save() }))
	side.AddChild(p.button(&face, "Load", func() { _ = e.Load() }))
	side.AddChild(p.button(&face, "Collisions", e.game.ToggleCollisions))

	p.inspector = newInspector(e, ui.PrimaryTheme, &face)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(side)
	root.AddChild(p.inspector.container)
	ui.Container = root
	return p
}

func (p *panel) toolBar(face *text.Face) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)

	tools := []Tool{ToolSelect, ToolMove, ToolSpawn}
	buttons := make([]*widget.Button, 0, len(tools))
	for _, tool := range tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(p.ui.PrimaryTheme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), face, p.ui.PrimaryTheme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(44, 22)),
		)
		buttons = append(buttons, btn)
		bar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for i, b := range buttons {
				if args.Active == b {
					p.editor.SetTool(tools[i])
					return
				}
			}
		}),
	)
	group.SetActive(buttons[p.editor.Tool()])
	return bar
}

func (p *panel) button(face *text.Face, label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.ui.PrimaryTheme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, face, p.ui.PrimaryTheme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(panelWidth-12, 22)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
}

func (p *panel) contains(x, _ float64) bool {
	if p.inspector.visible() && x < inspectorWidth {
		return true
	}
	return x >= p.x
}

func (p *panel) update() {
	e := p.editor
	p.status.Label = fmt.Sprintf("Tool: %s\nPrefab: %s\nSelected: %s", e.Tool(), e.Prefab(), e.Selected())
	p.inspector.refresh()
	p.ui.Update()
}

func (p *panel) draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}
