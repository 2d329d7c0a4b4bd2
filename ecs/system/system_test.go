package system

import (
	"testing"

	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/require"
)

func spawn(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{X: x, Y: y}))
	return e
}

func spawnBox(t *testing.T, w *ecs.World, x, y float64, bounds common.Rect) ecs.Entity {
	t.Helper()
	e := spawn(t, w, x, y)
	require.NoError(t, ecs.Add(w, e, component.CollisionComponent.Kind(), &component.Collision{Bounds: bounds}))
	return e
}

func position(t *testing.T, w *ecs.World, e ecs.Entity) component.Position {
	t.Helper()
	pos, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	require.True(t, ok)
	return *pos
}

type sheetMap map[string]*assets.SpriteSheet

func (m sheetMap) Sheet(id string) (*assets.SpriteSheet, bool) {
	s, ok := m[id]
	return s, ok
}

type sizeMap map[string][2]float64

func (m sizeMap) TextureSize(ref component.TextureRef) (float64, float64, bool) {
	s, ok := m[ref.Name]
	return s[0], s[1], ok
}
