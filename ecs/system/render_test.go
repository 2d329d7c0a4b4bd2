package system

import (
	"testing"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnSprite(t *testing.T, w *ecs.World, x, y float64, sprite component.Sprite) ecs.Entity {
	t.Helper()
	e := spawn(t, w, x, y)
	require.NoError(t, ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite))
	return e
}

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	front := spawnSprite(t, w, 0, 50, component.Sprite{Layer: 0})
	ground := spawnSprite(t, w, 0, 100, component.Sprite{Layer: -1})
	back := spawnSprite(t, w, 0, 10, component.Sprite{Layer: 0})
	sameA := spawnSprite(t, w, 5, 50, component.Sprite{Layer: 0})
	spawn(t, w, 0, 0)
	top := spawnSprite(t, w, 0, -100, component.Sprite{Layer: 2})

	assert.Equal(t, []ecs.Entity{ground, back, front, sameA, top}, DrawOrder(w))
}

func TestSpriteBounds(t *testing.T) {
	w := ecs.NewWorld()
	sizes := sizeMap{"rock": {16, 8}}

	whole := spawnSprite(t, w, 10, 20, component.Sprite{Texture: component.TextureRef{Name: "rock"}, Offset: common.Vec2{X: -2}})
	got, ok := SpriteBounds(w, whole, sizes)
	require.True(t, ok)
	assert.Equal(t, common.Rect{X: 8, Y: 20, W: 16, H: 8}, got)

	src := common.Rect{X: 32, W: 4, H: 6}
	part := spawnSprite(t, w, 1, 1, component.Sprite{Texture: component.TextureRef{Name: "rock"}, Source: &src})
	got, ok = SpriteBounds(w, part, sizes)
	require.True(t, ok)
	assert.Equal(t, common.Rect{X: 1, Y: 1, W: 4, H: 6}, got)

	_, ok = SpriteBounds(w, spawn(t, w, 0, 0), sizes)
	assert.False(t, ok)
}
