package system

import (
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerController(t *testing.T) {
	tests := []struct {
		name     string
		input    component.Input
		wantPos  component.Position
		wantAnim string
		wantFlip bool
	}{
		{name: "up", input: component.Input{MoveY: -1}, wantPos: component.Position{Y: -2}, wantAnim: "Back"},
		{name: "down", input: component.Input{MoveY: 1}, wantPos: component.Position{Y: 2}, wantAnim: "Idle"},
		{name: "left", input: component.Input{MoveX: -1}, wantPos: component.Position{X: -2}, wantAnim: "Right", wantFlip: true},
		{name: "right", input: component.Input{MoveX: 1, MoveY: 1}, wantPos: component.Position{X: 2, Y: 2}, wantAnim: "Right"},
		{name: "idle keeps animation", input: component.Input{}, wantAnim: "Start", wantFlip: true},
		{name: "locked", input: component.Input{MoveX: 1, Locked: true}, wantAnim: "Start", wantFlip: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawn(t, w, 0, 0)
			sprite := &component.Sprite{FlipH: true}
			anim := &component.Animation{Name: "Start"}
			input := tt.input
			require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 2, IdleAnim: "Idle", UpAnim: "Back", SideAnim: "Right"}))
			require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &input))
			require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), sprite))
			require.NoError(t, ecs.Add(w, e, component.AnimationComponent.Kind(), anim))

			NewPlayerControllerSystem().Update(w)
			assert.Equal(t, tt.wantPos, position(t, w, e))
			assert.Equal(t, tt.wantAnim, anim.Name)
			assert.Equal(t, tt.wantFlip, sprite.FlipH)
		})
	}
}

func TestInputSystemCopiesFrame(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Interact: true}))

	sys := NewInputSystem()
	sys.Set(component.Input{MoveX: -1, Locked: true})
	sys.Update(w)

	got, ok := ecs.Get(w, e, component.InputComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Input{MoveX: -1, Locked: true}, *got)
}
