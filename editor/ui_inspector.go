package editor

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/system"
	"go.uber.org/zap"
)

const inspectorWidth = 150

type inspectorRow struct {
	row   *widget.Container
	input *widget.TextInput
}

// inspector is the left panel editing the selected entity's components.
type inspector struct {
	editor    *Editor
	container *widget.Container
	title     *widget.Text
	rows      map[string]inspectorRow
	centered  *widget.Button
	texture   *widget.Button
	shown     ecs.Entity
	dirty     bool
}

func newInspector(e *Editor, theme *widget.Theme, face *text.Face) *inspector {
	in := &inspector{editor: e, rows: make(map[string]inspectorRow), dirty: true}

	in.container = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 230})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(2),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 6, Bottom: 6, Left: 6, Right: 6}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(inspectorWidth, system.ViewHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	in.title = widget.NewText(widget.TextOpts.Text("", face, color.White))
	in.container.AddChild(in.title)

	for _, def := range inspectorFields {
		in.rows[def.name] = in.addRow(def.name, face)
	}

	in.centered = in.button(theme, face, "Centered", func() {
		e.SetCentered(!e.Centered())
		in.dirty = true
	})
	in.button(theme, face, "Add source", func() {
		if e.AddSource() {
			in.dirty = true
		}
	})
	in.button(theme, face, "Add collision", func() {
		if e.AddCollision() {
			in.dirty = true
		}
	})
	in.texture = in.button(theme, face, "Texture", func() {
		if _, ok := e.CycleTexture(); ok {
			in.dirty = true
		}
	})
	return in
}

func (in *inspector) addRow(name string, face *text.Face) inspectorRow {
	row := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
		widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
		widget.RowLayoutOpts.Spacing(4),
	)))
	row.AddChild(widget.NewLabel(
		widget.LabelOpts.Text(name, face, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	))
	input := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(40, 16)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{Idle: color.Black, Disabled: color.Gray{Y: 120}, Caret: color.Black}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			v, err := strconv.ParseFloat(args.InputText, 64)
			if err != nil {
				in.dirty = true
				return
			}
			if err := in.editor.SetField(name, v); err != nil {
				in.editor.log.Warn("set field failed", zap.String("field", name), zap.Error(err))
			}
			in.dirty = true
		}),
	)
	row.AddChild(input)
	in.container.AddChild(row)
	return inspectorRow{row: row, input: input}
}

func (in *inspector) button(theme *widget.Theme, face *text.Face, label string, onClick func()) *widget.Button {
	btn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, face, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(inspectorWidth-12, 18)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
	in.container.AddChild(btn)
	return btn
}

// refresh reloads the field values when the selection changed, an edit was
// applied, or the selection is being dragged.
func (in *inspector) refresh() {
	e := in.editor
	if e.Selected() == in.shown && !in.dirty && !e.dragging {
		return
	}
	in.shown, in.dirty = e.Selected(), false

	if in.shown == 0 {
		in.container.GetWidget().Visibility = widget.Visibility_Hide
		return
	}
	in.container.GetWidget().Visibility = widget.Visibility_Show
	in.title.Label = fmt.Sprintf("Entity %s", in.shown)

	for _, row := range in.rows {
		row.row.GetWidget().Visibility = widget.Visibility_Hide
	}
	for _, f := range e.Fields() {
		row := in.rows[f.Name]
		row.row.GetWidget().Visibility = widget.Visibility_Show
		row.input.SetText(strconv.FormatFloat(f.Value, 'f', -1, 64))
	}

	setButtonLabel(in.centered, fmt.Sprintf("Centered: %t", e.Centered()))
	if s, ok := e.selectedSprite(); ok && !s.Texture.Animated() {
		setButtonLabel(in.texture, "Texture: "+s.Texture.Name)
	} else {
		setButtonLabel(in.texture, "Texture: -")
	}
}

func setButtonLabel(btn *widget.Button, label string) {
	if text := btn.Text(); text != nil {
		text.Label = label
	}
}

func (in *inspector) visible() bool {
	return in.shown != 0
}
