package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/game"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/overworld"
	"github.com/milk9111/overworld/prefabs"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
)

// DefaultSavePath is where the editor writes overworld snapshots.
const DefaultSavePath = "assets/overworld.json"

type Tool int

const (
	ToolSelect Tool = iota
	ToolMove
	ToolSpawn
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolMove:
		return "Move"
	case ToolSpawn:
		return "Spawn"
	default:
		return "Unknown"
	}
}

type Options struct {
	Log      *zap.Logger
	SavePath string
	// UI builds the ebitenui side panel. Requires a running ebiten game.
	UI bool
}

// Editor edits the overworld in place: picking, moving, spawning and
// removing entities, and saving or loading snapshots.
type Editor struct {
	game *game.Game
	log  *zap.Logger

	active   bool
	tool     Tool
	hovered  ecs.Entity
	selected ecs.Entity
	dragging bool
	grab     common.Vec2

	prefabs  []string
	prefab   string
	savePath string

	panel     *panel
	clipboard bool
}

func New(g *game.Game, opts Options) (*Editor, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	savePath := opts.SavePath
	if savePath == "" {
		savePath = DefaultSavePath
	}

	spawn, err := prefabs.LoadSpawnSpec()
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}

	e := &Editor{
		game:     g,
		log:      log,
		prefabs:  spawn.Prefabs,
		prefab:   spawn.Default,
		savePath: savePath,
	}
	if opts.UI {
		if err := clipboard.Init(); err != nil {
			log.Warn("clipboard unavailable", zap.Error(err))
		} else {
			e.clipboard = true
		}
		e.panel = newPanel(e)
	}
	return e, nil
}

func (e *Editor) Active() bool { return e.active }

func (e *Editor) Tool() Tool { return e.tool }

func (e *Editor) Selected() ecs.Entity { return e.selected }

func (e *Editor) Hovered() ecs.Entity { return e.hovered }

func (e *Editor) Prefab() string { return e.prefab }

func (e *Editor) Prefabs() []string { return e.prefabs }

func (e *Editor) SetActive(active bool) {
	e.active = active
	e.dragging = false
}

func (e *Editor) SetTool(t Tool) {
	e.tool = t
	e.dragging = false
}

func (e *Editor) SetPrefab(name string) {
	e.prefab = name
}

// Update applies one frame of editor input. The world itself is paused
// while the editor is active.
func (e *Editor) Update(in input.State) error {
	if in.ToggleEditor {
		e.SetActive(!e.active)
	}
	if !e.active {
		return nil
	}
	if e.panel != nil {
		e.panel.update()
	}

	switch {
	case in.ToolSelect:
		e.SetTool(ToolSelect)
	case in.ToolMove:
		e.SetTool(ToolMove)
	case in.ToolSpawn:
		e.SetTool(ToolSpawn)
	}
	if in.ToggleCollision {
		e.game.ToggleCollisions()
	}
	if in.Delete {
		e.DeleteSelected()
	}
	if in.Duplicate {
		e.DuplicateSelected()
	}
	if in.SpawnAtPlayer {
		e.SpawnAtPlayer()
	}
	if in.Save {
		e.Save()
	}
	if in.Load {
		e.Load()
	}
	if in.Copy {
		e.CopySelected()
	}

	if e.panel != nil && e.panel.contains(in.CursorX, in.CursorY) {
		e.hovered = 0
		return nil
	}
	cursor := e.game.Camera.ScreenToWorld(in.CursorX, in.CursorY)
	e.Pointer(cursor, in.MousePressed, in.MouseHeld)
	return nil
}

// Pointer handles the mouse at world position cursor for the current tool.
func (e *Editor) Pointer(cursor common.Vec2, pressed, held bool) {
	w := e.game.World
	hit, offset, ok := w.QueryCursorPos(e.game.Assets(), cursor)
	if ok {
		e.hovered = hit
	} else {
		e.hovered = 0
	}

	switch e.tool {
	case ToolSelect:
		if pressed {
			e.selected = e.hovered
		}
	case ToolMove:
		if pressed {
			e.selected = e.hovered
			e.dragging = ok
			e.grab = offset
		}
		if !held {
			e.dragging = false
		}
		if e.dragging {
			e.moveSelected(cursor.Add(e.grab))
		}
	case ToolSpawn:
		if pressed {
			e.spawn(cursor)
		}
	}
}

func (e *Editor) moveSelected(to common.Vec2) {
	pos, ok := ecs.Get(e.game.World.World, e.selected, component.PositionComponent.Kind())
	if !ok {
		e.dragging = false
		return
	}
	pos.X, pos.Y = to.X, to.Y
}

func (e *Editor) spawn(at common.Vec2) {
	if e.prefab == "" {
		return
	}
	ent, err := e.game.World.Spawn(e.prefab, at.X, at.Y)
	if err != nil {
		e.log.Error("spawn failed", zap.String("prefab", e.prefab), zap.Error(err))
		return
	}
	e.selected = ent
	e.log.Debug("spawned", zap.String("prefab", e.prefab), zap.Stringer("entity", ent))
}

// SpawnAtPlayer places the current prefab on the player.
func (e *Editor) SpawnAtPlayer() {
	e.spawn(e.game.World.PlayerPosition())
}

func (e *Editor) DeleteSelected() {
	if e.selected == 0 {
		return
	}
	if !e.game.World.Despawn(e.selected) {
		e.log.Warn("cannot delete entity", zap.Stringer("entity", e.selected))
		return
	}
	if e.hovered == e.selected {
		e.hovered = 0
	}
	e.selected = 0
	e.dragging = false
}

func (e *Editor) DuplicateSelected() {
	if e.selected == 0 {
		return
	}
	dup, err := e.game.World.Duplicate(e.selected)
	if err != nil {
		e.log.Error("duplicate failed", zap.Error(err))
		return
	}
	e.selected = dup
}

// Save writes the overworld to the save path, replacing any previous file.
func (e *Editor) Save() error {
	if err := os.MkdirAll(filepath.Dir(e.savePath), 0o755); err != nil {
		e.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("editor: save: %w", err)
	}
	f, err := os.Create(e.savePath)
	if err != nil {
		e.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("editor: save: %w", err)
	}
	defer f.Close()

	if err := e.game.World.Save(f); err != nil {
		e.log.Error("save failed", zap.Error(err))
		return fmt.Errorf("editor: save: %w", err)
	}
	e.log.Info("overworld saved", zap.String("path", e.savePath))
	return nil
}

// Load replaces the overworld with the saved snapshot. On error the current
// world is kept.
func (e *Editor) Load() error {
	f, err := os.Open(e.savePath)
	if err != nil {
		e.log.Error("load failed", zap.Error(err))
		return fmt.Errorf("editor: load: %w", err)
	}
	defer f.Close()

	w, err := overworld.Load(f, e.game.Assets())
	if err != nil {
		e.log.Error("load failed", zap.Error(err))
		return fmt.Errorf("editor: load: %w", err)
	}
	e.game.SetWorld(w)
	e.selected, e.hovered, e.dragging = 0, 0, false
	e.log.Info("overworld loaded", zap.String("path", e.savePath))
	return nil
}

// SelectedJSON encodes the selected entity as a snapshot record.
func (e *Editor) SelectedJSON() ([]byte, error) {
	rec, err := e.game.World.Record(e.selected)
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	return json.MarshalIndent(rec, "", "  ")
}

// CopySelected puts the selected entity's JSON on the system clipboard.
func (e *Editor) CopySelected() {
	if e.selected == 0 {
		return
	}
	data, err := e.SelectedJSON()
	if err != nil {
		e.log.Error("copy failed", zap.Error(err))
		return
	}
	if !e.clipboard {
		e.log.Info("selected entity", zap.ByteString("json", data))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
}
