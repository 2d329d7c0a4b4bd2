package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/overworld"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/task"
	"go.uber.org/zap"
)

// StartTrigger is fired once when a game starts.
const StartTrigger = "start"

// Assets is the texture and sprite sheet source the game draws from.
type Assets interface {
	system.SheetSource
	system.TextureSource
	TextureNames() []string
	Reload(ctx context.Context) (int, error)
}

type Options struct {
	Log    *zap.Logger
	Assets Assets
	// Layout is the world prefab layout. Defaults to overworld.DefaultWorld.
	Layout string
	// Watcher delivers changed file paths for hot reload. Optional.
	Watcher *prefabs.Watcher
}

// Game owns the overworld, the camera, the dialogue box and the scripts
// that drive it.
type Game struct {
	World    *overworld.Overworld
	Camera   *system.CameraSystem
	Dialogue *dialogue.Dialogue

	info    *dialogue.Info
	runner  *task.Runner
	trees   *dialogue.Library
	scripts map[string]Script
	calls   map[string]CallFunc
	busy    map[string]bool

	assets  Assets
	render  *system.RenderSystem
	watcher *prefabs.Watcher
	log     *zap.Logger

	showCollisions bool
}

func New(opts Options) (*Game, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	layout := opts.Layout
	if layout == "" {
		layout = overworld.DefaultWorld
	}

	world, err := overworld.New(opts.Assets, layout)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	trees, err := dialogue.LoadLibrary(log)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		World:    world,
		Camera:   system.NewCameraSystem(),
		Dialogue: dialogue.New(),
		info:     dialogue.NewInfo(),
		runner:   task.NewRunner(log.Named("script")),
		trees:    trees,
		scripts:  make(map[string]Script),
		calls:    make(map[string]CallFunc),
		busy:     make(map[string]bool),
		assets:   opts.Assets,
		render:   system.NewRenderSystem(opts.Assets),
		watcher:  opts.Watcher,
		log:      log,
	}
	g.registerBuiltins()
	g.Camera.Update(g.World.World)
	g.Trigger(StartTrigger)
	return g, nil
}

// Info returns the narrative state shared by every script.
func (g *Game) Info() *dialogue.Info {
	return g.info
}

// Locked reports whether the player has lost control to a script.
func (g *Game) Locked() bool {
	return g.Dialogue.Shown() || g.runner.Len() > 0
}

// Update runs one frame: hot reload, the world systems, scripts triggered by
// this frame's interactions, the dialogue box, every script, then the camera.
func (g *Game) Update(in input.State) error {
	g.drainWatcher()
	if in.Reload {
		g.reloadAssets()
	}

	events := g.World.Update(component.Input{
		MoveX:    in.MoveX,
		MoveY:    in.MoveY,
		Interact: in.Interact,
		Locked:   g.Locked(),
	})
	for _, evt := range events {
		if evt.Type != ecs.EventInteraction {
			continue
		}
		if ie, ok := evt.Data.(ecs.InteractionEvent); ok {
			g.Trigger(string(ie.Kind))
		}
	}

	g.Dialogue.Update(dialogue.Input{Up: in.Up, Down: in.Down, Confirm: in.Confirm})
	g.runner.Step()
	g.Camera.Update(g.World.World)
	return nil
}

// Trigger starts the script for trigger unless one is already running for
// it. The best matching dialogue tree wins over a coded script.
func (g *Game) Trigger(trigger string) bool {
	if g.busy[trigger] {
		return false
	}

	fn, ok := g.selectScript(trigger)
	if !ok {
		return false
	}

	g.busy[trigger] = true
	t := g.runner.Spawn(trigger, func(t *task.Task) error {
		defer delete(g.busy, trigger)
		return fn(t)
	})
	if t.Done() {
		delete(g.busy, trigger)
		return false
	}
	return true
}

func (g *Game) selectScript(trigger string) (task.Func, bool) {
	tree, ok, err := g.trees.Select(trigger, g.info)
	if err != nil {
		g.log.Error("dialogue condition failed", zap.String("trigger", trigger), zap.Error(err))
		return nil, false
	}
	if ok {
		g.log.Debug("starting dialogue", zap.String("trigger", trigger), zap.String("tree", tree.Name))
		return func(t *task.Task) error { return tree.Run(t, g) }, true
	}

	script, ok := g.scripts[trigger]
	if !ok || (script.When != nil && !script.When(g.info)) {
		return nil, false
	}
	g.log.Debug("starting script", zap.String("trigger", trigger))
	return func(t *task.Task) error {
		err := script.Run(t, g)
		if err != nil && !errors.Is(err, task.ErrCancelled) {
			g.EndDialogue()
		}
		return err
	}, true
}

// Busy reports whether a script is running for trigger.
func (g *Game) Busy(trigger string) bool {
	return g.busy[trigger]
}

// SetWorld swaps in a new overworld, e.g. after loading a snapshot.
func (g *Game) SetWorld(w *overworld.Overworld) {
	g.World = w
	g.Camera.Snap()
}

// Assets returns the asset source, or nil when running headless.
func (g *Game) Assets() Assets {
	return g.assets
}

func (g *Game) ToggleCollisions() {
	g.showCollisions = !g.showCollisions
}

// Close cancels every running script and stops watching for file changes.
func (g *Game) Close() error {
	g.runner.Close()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
