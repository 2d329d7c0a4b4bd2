package game

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/input"
	"github.com/milk9111/overworld/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const maxFrames = 600

func newGame(t *testing.T, log *zap.Logger) *Game {
	t.Helper()
	if log == nil {
		log = zaptest.NewLogger(t)
	}
	g, err := New(Options{Log: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })

	for i := 0; g.Locked(); i++ {
		require.Less(t, i, maxFrames, "intro did not finish")
		require.NoError(t, g.Update(input.State{}))
	}
	return g
}

func step(t *testing.T, g *Game, in input.State) {
	t.Helper()
	require.NoError(t, g.Update(in))
}

func waitFor(t *testing.T, g *Game, w dialogue.Waiting) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		if g.Dialogue.Waiting() == w && g.Dialogue.Revealed() {
			return
		}
		step(t, g, input.State{})
	}
	t.Fatalf("dialogue never waited for %s", w)
}

func confirm(t *testing.T, g *Game) string {
	t.Helper()
	waitFor(t, g, dialogue.WaitConfirm)
	text := g.Dialogue.Text()
	step(t, g, input.State{Confirm: true})
	return text
}

func choose(t *testing.T, g *Game, idx int) {
	t.Helper()
	waitFor(t, g, dialogue.WaitChoice)
	for range idx {
		step(t, g, input.State{Down: true})
	}
	require.Equal(t, idx, g.Dialogue.Selected())
	step(t, g, input.State{Confirm: true})
}

func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Locked(); i++ {
		require.Less(t, i, maxFrames, "script did not finish")
		step(t, g, input.State{})
	}
}

func interactableOf(t *testing.T, g *Game, kind component.InteractionKind) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	ecs.ForEach(g.World.World, component.InteractableComponent.Kind(), func(e ecs.Entity, inter *component.Interactable) {
		if inter.Kind == kind {
			found = e
		}
	})
	require.NotZero(t, found)
	return found
}

func TestIntroRunsOnStart(t *testing.T) {
	g, err := New(Options{Log: zaptest.NewLogger(t)})
	require.NoError(t, err)
	defer g.Close()

	assert.True(t, g.Busy(StartTrigger))
	assert.True(t, g.Locked())

	start := g.World.PlayerPosition()
	step(t, g, input.State{MoveX: 1})
	step(t, g, input.State{MoveX: 1})
	assert.True(t, g.Dialogue.Shown())
	assert.Equal(t, start, g.World.PlayerPosition())

	settle(t, g)
	assert.True(t, g.Info().Flag("intro_seen"))
	assert.False(t, g.Dialogue.Shown())
	assert.False(t, g.Busy(StartTrigger))
	assert.False(t, g.Trigger(StartTrigger))

	step(t, g, input.State{MoveX: 1})
	assert.Equal(t, start.Add(common.Vec2{X: 1}), g.World.PlayerPosition())
}

func TestInteractionPicksHighestPriority(t *testing.T) {
	g := newGame(t, nil)
	w := g.World.World
	mirror := interactableOf(t, g, component.InteractionMirror)
	require.NoError(t, entity.SetEntityPosition(w, mirror, 0, 0))
	require.NoError(t, entity.SetEntityPosition(w, g.World.Ghost, 0, 0))
	require.NoError(t, entity.SetEntityPosition(w, g.World.Player, 0, 0))

	step(t, g, input.State{Interact: true})
	assert.True(t, g.Busy("ghost"))
	assert.False(t, g.Busy("mirror"))
	assert.Equal(t, "portrait_ghost", g.Dialogue.Portrait())

	assert.Equal(t, "Oh! You can see me?", confirm(t, g))
	confirm(t, g)
	choose(t, g, 1)
	assert.Equal(t, "wisp", g.Info().Companion)
	assert.Equal(t, "Ooh, mysterious. I like that.", confirm(t, g))

	// The camera pans to the mirror before the next line.
	waitFor(t, g, dialogue.WaitConfirm)
	assert.InDelta(t, 64, g.Camera.Center.X, 0.01)
	assert.InDelta(t, -40, g.Camera.Center.Y, 0.01)
	confirm(t, g)

	settle(t, g)
	assert.True(t, g.Info().Flag("met_ghost"))
	assert.False(t, g.Dialogue.Shown())
	assert.Empty(t, g.Dialogue.Portrait())

	// Once met, the ghost has something else to say.
	step(t, g, input.State{Interact: true})
	assert.Equal(t, "*flickers*", confirm(t, g))
	assert.Equal(t, "Have you visited the mirror yet?", confirm(t, g))
	settle(t, g)
}

func TestMirrorTemplatesPlayerName(t *testing.T) {
	g := newGame(t, nil)
	require.True(t, g.Trigger("mirror"))

	assert.Equal(t, "A dusty mirror. The reflection is blurry.", confirm(t, g))
	choose(t, g, 0)
	settle(t, g)
	assert.Equal(t, "knight", g.Info().Player)

	require.True(t, g.Trigger("mirror"))
	assert.Equal(t, "You see a knight looking back.", confirm(t, g))
	choose(t, g, 2)
	settle(t, g)
	assert.Equal(t, "knight", g.Info().Player)
}

func TestTriggerIgnoresBusyAndUnknown(t *testing.T) {
	g := newGame(t, nil)

	assert.True(t, g.Trigger("sign"))
	assert.False(t, g.Trigger("sign"))
	assert.False(t, g.Trigger("nothing_here"))

	assert.Equal(t, "NORTH: the old house.", confirm(t, g))
	settle(t, g)
	assert.True(t, g.Trigger("sign"))
}

func TestEndDialogueCancelsScript(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := newGame(t, zap.New(core))

	require.True(t, g.Trigger("ghost"))
	waitFor(t, g, dialogue.WaitConfirm)

	g.EndDialogue()
	step(t, g, input.State{})

	assert.False(t, g.Busy("ghost"))
	assert.False(t, g.Locked())
	assert.False(t, g.Info().Flag("met_ghost"))
	assert.Equal(t, 1, logs.FilterMessage("task cancelled").FilterField(zap.String("task", "ghost")).Len())
	assert.Zero(t, logs.FilterMessage("task failed").Len())
}

func TestEndDialogueStopsWaitingScript(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := newGame(t, zap.New(core))

	require.True(t, g.Trigger("bed"))
	confirm(t, g)
	choose(t, g, 0)
	for i := 0; g.Dialogue.Text() != "Zzz..." || g.Dialogue.Waiting() != dialogue.WaitNone; i++ {
		require.Less(t, i, maxFrames, "bed never started sleeping")
		step(t, g, input.State{})
	}
	step(t, g, input.State{})

	g.EndDialogue()
	for range 90 {
		step(t, g, input.State{})
	}

	assert.False(t, g.Info().Flag("rested"))
	assert.False(t, g.Dialogue.Shown())
	assert.False(t, g.Busy("bed"))
	assert.False(t, g.Locked())
	assert.Equal(t, 1, logs.FilterMessage("task cancelled").FilterField(zap.String("task", "bed")).Len())
}

func TestEndDialogueStopsCameraPan(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := newGame(t, zap.New(core))

	require.True(t, g.Trigger("ghost"))
	confirm(t, g)
	confirm(t, g)
	choose(t, g, 0)
	assert.Equal(t, "A sheet! How cozy.", confirm(t, g))
	step(t, g, input.State{})

	g.EndDialogue()
	for range 120 {
		step(t, g, input.State{})
	}

	assert.False(t, g.Info().Flag("met_ghost"))
	assert.False(t, g.Dialogue.Shown())
	assert.Empty(t, g.Dialogue.Text())
	assert.False(t, g.Busy("ghost"))
	assert.Equal(t, 1, logs.FilterMessage("task cancelled").FilterField(zap.String("task", "ghost")).Len())

	// The camera went back to the player instead of finishing the pan.
	player := g.World.PlayerPosition()
	assert.InDelta(t, player.X, g.Camera.Center.X, 1)
	assert.InDelta(t, player.Y, g.Camera.Center.Y, 1)
}

func TestCodedBedScript(t *testing.T) {
	g := newGame(t, nil)

	require.True(t, g.Trigger("bed"))
	assert.Equal(t, "A neatly made bed.", confirm(t, g))
	choose(t, g, 0)
	assert.Equal(t, "You feel rested.", confirm(t, g))
	settle(t, g)
	assert.True(t, g.Info().Flag("rested"))

	require.True(t, g.Trigger("bed"))
	assert.Equal(t, "You already feel rested.", confirm(t, g))
	settle(t, g)
}

func TestCodedScriptWhen(t *testing.T) {
	g := newGame(t, nil)
	ran := 0
	g.RegisterScript("test", Script{
		When: func(info *dialogue.Info) bool { return info.Flag("ready") },
		Run: func(_ *task.Task, g *Game) error {
			ran++
			return nil
		},
	})

	assert.False(t, g.Trigger("test"))
	g.Info().Set("ready", true)
	assert.True(t, g.Trigger("test"))
	step(t, g, input.State{})
	assert.Equal(t, 1, ran)
	assert.False(t, g.Busy("test"))
}

func TestCallErrors(t *testing.T) {
	g := newGame(t, nil)

	tests := []struct {
		name string
		call string
		args []string
	}{
		{name: "unknown", call: "nope"},
		{name: "pan arity", call: "pan_camera", args: []string{"1"}},
		{name: "pan number", call: "pan_camera", args: []string{"a", "0", "1"}},
		{name: "wait arity", call: "wait"},
		{name: "wait number", call: "wait", args: []string{"soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, g.Call(nil, tt.call, tt.args))
		})
	}
}

func TestCloseCancelsRunningScripts(t *testing.T) {
	g, err := New(Options{Log: zaptest.NewLogger(t)})
	require.NoError(t, err)
	step(t, g, input.State{})
	require.True(t, g.Busy(StartTrigger))

	require.NoError(t, g.Close())
	assert.False(t, g.Busy(StartTrigger))
	assert.False(t, g.Trigger("sign"))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in   string
		cols int
		want []string
	}{
		{in: "", cols: 10, want: []string{""}},
		{in: "short line", cols: 20, want: []string{"short line"}},
		{in: "one two three four", cols: 9, want: []string{"one two", "three", "four"}},
		{in: "a\nb c", cols: 10, want: []string{"a", "b c"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wrap(tt.in, tt.cols), tt.in)
	}
}

type countingAssets struct {
	reloads int
}

func (*countingAssets) Sheet(string) (*assets.SpriteSheet, bool) { return nil, false }

func (*countingAssets) TextureSize(component.TextureRef) (float64, float64, bool) {
	return 16, 16, true
}

func (*countingAssets) Texture(component.TextureRef) *ebiten.Image { return nil }

func (*countingAssets) TextureNames() []string { return []string{"rock"} }

func (a *countingAssets) Reload(context.Context) (int, error) {
	a.reloads++
	return 1, nil
}

func TestFileChangedRoutesByKind(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := &countingAssets{}
	g, err := New(Options{Log: zap.New(core), Assets: a})
	require.NoError(t, err)
	defer g.Close()

	g.fileChanged("/home/me/game/assets/sprites/rock.png")
	assert.Equal(t, 1, a.reloads)
	assert.Equal(t, 1, logs.FilterMessage("asset changed").FilterField(zap.String("asset", "sprites/rock.png")).Len())

	g.fileChanged("prefabs/rock.yaml")
	assert.Equal(t, 1, a.reloads)
	assert.Equal(t, 1, logs.FilterMessage("prefab changed").Len())

	g.fileChanged("prefabs/dialogue/sign.yaml")
	assert.Equal(t, 1, a.reloads)
	assert.Equal(t, 1, logs.FilterMessage("dialogue reloaded").Len())
}
