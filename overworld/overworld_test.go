package overworld

import (
	"testing"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sizeMap map[string][2]float64

func (m sizeMap) TextureSize(ref component.TextureRef) (float64, float64, bool) {
	s, ok := m[ref.Name]
	return s[0], s[1], ok
}

func emptyOverworld(t *testing.T) *Overworld {
	t.Helper()
	o := newOverworld(ecs.NewWorld(), nil)
	player, err := o.Spawn("player.yaml", 0, 0)
	require.NoError(t, err)
	o.Player = player
	return o
}

func TestNewBuildsLayout(t *testing.T) {
	o, err := New(nil, DefaultWorld)
	require.NoError(t, err)

	assert.True(t, ecs.Has(o.World, o.Player, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(o.World, o.Ghost, component.GhostTagComponent.Kind()))

	follow, ok := ecs.Get(o.World, o.Ghost, component.FollowComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, o.Player, ecs.Entity(follow.Target))

	mirrors := 0
	ecs.ForEach(o.World, component.InteractableComponent.Kind(), func(_ ecs.Entity, inter *component.Interactable) {
		if inter.Kind == component.InteractionMirror {
			mirrors++
		}
	})
	assert.Equal(t, 1, mirrors)
}

func TestNewUnknownLayout(t *testing.T) {
	_, err := New(nil, "missing_world.yaml")
	assert.Error(t, err)
}

func TestUpdateMovesPlayer(t *testing.T) {
	o := emptyOverworld(t)

	events := o.Update(component.Input{MoveX: 1})
	assert.Empty(t, events)
	assert.Equal(t, common.Vec2{X: 1}, o.PlayerPosition())

	o.Update(component.Input{MoveY: -1, Locked: true})
	assert.Equal(t, common.Vec2{X: 1}, o.PlayerPosition())
}

func TestUpdateCollidesWithMovedFollower(t *testing.T) {
	o := emptyOverworld(t)
	w := o.World

	follower := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, follower, component.PositionComponent.Kind(), &component.Position{X: 20}))
	require.NoError(t, ecs.Add(w, follower, component.CollisionComponent.Kind(), &component.Collision{
		Bounds: common.Rect{X: -4, Y: 4, W: 8, H: 8},
	}))
	require.NoError(t, ecs.Add(w, follower, component.FollowComponent.Kind(), &component.Follow{
		Target: uint64(o.Player), MaxDistance: 5, Speed: 12,
	}))

	o.Update(component.Input{})

	pos, ok := ecs.Get(w, follower, component.PositionComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 8.0, pos.X)
	// The player is pushed out of the follower's box where it ends this frame.
	assert.Equal(t, common.Vec2{X: -2}, o.PlayerPosition())
}

func TestUpdateDispatchesInteraction(t *testing.T) {
	o := emptyOverworld(t)
	mirror, err := o.Spawn("mirror.yaml", 0, 0)
	require.NoError(t, err)

	events := o.Update(component.Input{Interact: true})
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventInteraction, events[0].Type)
	assert.Equal(t, ecs.InteractionEvent{Entity: mirror, Kind: component.InteractionMirror}, events[0].Data)

	ghost, err := o.Spawn("ghost.yaml", -5, 0)
	require.NoError(t, err)
	events = o.Update(component.Input{Interact: true})
	require.Len(t, events, 1)
	assert.Equal(t, ecs.InteractionEvent{Entity: ghost, Kind: component.InteractionGhost}, events[0].Data)

	assert.Empty(t, o.Update(component.Input{Interact: true, Locked: true}))
	assert.Empty(t, o.Update(component.Input{}))
}

func TestSpawnResolvesPlayerTarget(t *testing.T) {
	o := emptyOverworld(t)
	ghost, err := o.Spawn("ghost.yaml", 100, 0)
	require.NoError(t, err)

	follow, ok := ecs.Get(o.World, ghost, component.FollowComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, o.Player, ecs.Entity(follow.Target))

	_, err = o.Spawn("nope.yaml", 0, 0)
	assert.Error(t, err)
}

func TestDespawn(t *testing.T) {
	o := emptyOverworld(t)
	ghost, err := o.Spawn("ghost.yaml", 10, 0)
	require.NoError(t, err)
	o.Ghost = ghost

	assert.False(t, o.Despawn(o.Player))
	assert.True(t, ecs.IsAlive(o.World, o.Player))

	assert.True(t, o.Despawn(ghost))
	assert.False(t, ecs.IsAlive(o.World, ghost))
	assert.Equal(t, ecs.Entity(0), o.Ghost)
	assert.False(t, o.Despawn(ghost))
}

func TestDuplicate(t *testing.T) {
	o := emptyOverworld(t)
	src, err := o.Spawn("ghost.yaml", 12, 34)
	require.NoError(t, err)
	sprite, _ := ecs.Get(o.World, src, component.SpriteComponent.Kind())
	sprite.Source = &common.Rect{W: 16, H: 16}

	dup, err := o.Duplicate(src)
	require.NoError(t, err)
	require.NotEqual(t, src, dup)

	pos, ok := ecs.Get(o.World, dup, component.PositionComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Position{X: 12, Y: 34}, *pos)

	dupSprite, ok := ecs.Get(o.World, dup, component.SpriteComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, dupSprite.Source)
	assert.NotSame(t, sprite.Source, dupSprite.Source)
	assert.Equal(t, *sprite.Source, *dupSprite.Source)

	assert.True(t, ecs.Has(o.World, dup, component.FollowComponent.Kind()))
	assert.True(t, ecs.Has(o.World, dup, component.InteractableComponent.Kind()))
	assert.False(t, ecs.Has(o.World, dup, component.GhostTagComponent.Kind()))

	srcID, _ := ecs.Get(o.World, src, component.PersistentComponent.Kind())
	dupID, _ := ecs.Get(o.World, dup, component.PersistentComponent.Kind())
	assert.NotEqual(t, srcID.ID, dupID.ID)

	require.True(t, o.Despawn(src))
	_, err = o.Duplicate(src)
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)
}

func TestQueryCursorPos(t *testing.T) {
	o := emptyOverworld(t)
	sizes := sizeMap{"mirror": {16, 32}}

	lower, err := o.Spawn("mirror.yaml", 64, -40)
	require.NoError(t, err)

	e, offset, ok := o.QueryCursorPos(sizes, common.Vec2{X: 64, Y: -50})
	require.True(t, ok)
	assert.Equal(t, lower, e)
	assert.Equal(t, common.Vec2{X: 0, Y: 10}, offset)

	upper, err := o.Spawn("mirror.yaml", 64, -40)
	require.NoError(t, err)
	e, _, ok = o.QueryCursorPos(sizes, common.Vec2{X: 64, Y: -50})
	require.True(t, ok)
	assert.Equal(t, upper, e)

	_, _, ok = o.QueryCursorPos(sizes, common.Vec2{X: 500, Y: 500})
	assert.False(t, ok)
}
