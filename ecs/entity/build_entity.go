package entity

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/prefabs"
)

// Named maps placement names to built entities so prefabs can reference
// each other, e.g. a follower naming its target.
type Named map[string]ecs.Entity

type buildContext struct {
	PrefabPath string
	Named      Named
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"ghost_tag":    addGhostTag,
	"persistent":   addPersistent,
	"player":       addPlayer,
	"input":        addInput,
	"position":     addPosition,
	"sprite":       addSprite,
	"animation":    addAnimation,
	"collision":    addCollision,
	"interactable": addInteractable,
	"follow":       addFollow,
}

var componentBuildOrder = []string{
	"player_tag",
	"ghost_tag",
	"persistent",
	"player",
	"input",
	"position",
	"sprite",
	"animation",
	"collision",
	"interactable",
	"follow",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return build(w, prefabPath, nil)
}

// BuildEntityAt builds a prefab and places it at (x, y).
func BuildEntityAt(w *ecs.World, prefabPath string, x, y float64, named Named) (ecs.Entity, error) {
	e, err := build(w, prefabPath, named)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: override position: %w", prefabPath, err)
	}
	return e, nil
}

func build(w *ecs.World, prefabPath string, named Named) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return buildRank(names[i]) < buildRank(names[j])
	})

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Named: named}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

func SetEntityPosition(w *ecs.World, e ecs.Entity, x, y float64) error {
	p, ok := ecs.Get(w, e, component.PositionComponent.Kind())
	if !ok || p == nil {
		p = &component.Position{}
	}
	p.X = x
	p.Y = y
	return ecs.Add(w, e, component.PositionComponent.Kind(), p)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addGhostTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GhostTagComponent.Kind(), &component.GhostTag{})
}

func addPersistent(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: uuid.NewString()})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		IdleAnim:  spec.IdleAnim,
		UpAnim:    spec.UpAnim,
		SideAnim:  spec.SideAnim,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type positionSpec = prefabs.PositionComponentSpec

func addPosition(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[positionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode position spec: %w", err)
	}
	return ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{X: spec.X, Y: spec.Y})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Texture == "" && spec.Sheet == "" {
		return fmt.Errorf("sprite needs a texture or a sheet")
	}

	sprite := &component.Sprite{
		Texture:  component.TextureRef{Name: spec.Texture, Sheet: spec.Sheet},
		Offset:   common.Vec2{X: spec.OffsetX, Y: spec.OffsetY},
		Centered: spec.Centered,
		FlipH:    spec.FlipH,
		Layer:    spec.Layer,
	}
	if spec.Source != nil {
		src := rectFromSpec(*spec.Source)
		sprite.Source = &src
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}
	if spec.Sheet == "" {
		return fmt.Errorf("animation needs a sheet")
	}
	return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
		Sheet:  spec.Sheet,
		Name:   spec.Name,
		Offset: common.Vec2{X: spec.OffsetX, Y: spec.OffsetY},
	})
}

type collisionSpec = prefabs.CollisionComponentSpec

func addCollision(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionComponent.Kind(), &component.Collision{
		Bounds: rectFromSpec(spec.Bounds).Normalize(),
	})
}

type interactableSpec = prefabs.InteractableComponentSpec

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[interactableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}
	kind, err := component.ParseInteractionKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Bounds:   rectFromSpec(spec.Bounds).Normalize(),
		Kind:     kind,
		Priority: spec.Priority,
	})
}

type followSpec = prefabs.FollowComponentSpec

func addFollow(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[followSpec](raw)
	if err != nil {
		return fmt.Errorf("decode follow spec: %w", err)
	}

	// An unresolved target leaves the follower idle until one is assigned.
	var target ecs.Entity
	if ctx != nil && spec.Target != "" {
		target = ctx.Named[spec.Target]
	}
	return ecs.Add(w, e, component.FollowComponent.Kind(), &component.Follow{
		Target:      uint64(target),
		MaxDistance: spec.MaxDistance,
		Speed:       spec.Speed,
	})
}

func rectFromSpec(r prefabs.RectSpec) common.Rect {
	return common.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
