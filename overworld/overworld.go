package overworld

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/prefabs"
)

// DefaultWorld is the prefab layout a new game starts from.
const DefaultWorld = "world.yaml"

// Overworld is the explorable map: its entities, the player and the ghost
// companion, and the systems that update them each frame.
type Overworld struct {
	World  *ecs.World
	Player ecs.Entity
	Ghost  ecs.Entity

	input     *system.InputSystem
	scheduler *ecs.Scheduler
}

func newOverworld(w *ecs.World, sheets system.SheetSource) *Overworld {
	o := &Overworld{
		World: w,
		input: system.NewInputSystem(),
	}
	o.scheduler = ecs.NewScheduler(
		o.input,
		system.NewPlayerControllerSystem(),
		system.NewFollowSystem(),
		system.NewCollisionSystem(),
		system.NewInteractionSystem(),
		system.NewAnimationSystem(sheets),
	)
	return o
}

// New builds the overworld described by the world prefab layout.
func New(sheets system.SheetSource, layout string) (*Overworld, error) {
	spec, err := prefabs.LoadWorldSpec(layout)
	if err != nil {
		return nil, fmt.Errorf("overworld: %w", err)
	}

	o := newOverworld(ecs.NewWorld(), sheets)
	named := entity.Named{}
	for _, p := range spec.Entities {
		e, err := entity.BuildEntityAt(o.World, p.Prefab, p.X, p.Y, named)
		if err != nil {
			return nil, fmt.Errorf("overworld: %w", err)
		}
		if p.Name != "" {
			named[p.Name] = e
		}
	}

	var ok bool
	if o.Player, ok = named[spec.Player]; !ok {
		return nil, fmt.Errorf("overworld: layout %s has no %q entity", layout, spec.Player)
	}
	o.Ghost = named[spec.Ghost]
	return o, nil
}

// Update runs one frame with in applied to the player and returns the
// events raised during it.
func (o *Overworld) Update(in component.Input) []ecs.Event {
	o.input.Set(in)
	o.scheduler.Update(o.World)
	return o.World.Events().Drain()
}

// PlayerPosition returns the player's position, or the origin if it has none.
func (o *Overworld) PlayerPosition() common.Vec2 {
	pos, ok := ecs.Get(o.World, o.Player, component.PositionComponent.Kind())
	if !ok {
		return common.Vec2{}
	}
	return common.Vec2{X: pos.X, Y: pos.Y}
}

// Spawn builds a prefab at (x, y).
func (o *Overworld) Spawn(prefab string, x, y float64) (ecs.Entity, error) {
	e, err := entity.BuildEntityAt(o.World, prefab, x, y, entity.Named{"player": o.Player})
	if err != nil {
		return 0, fmt.Errorf("overworld: spawn: %w", err)
	}
	return e, nil
}

// Despawn destroys e. The player cannot be removed.
func (o *Overworld) Despawn(e ecs.Entity) bool {
	if e == o.Player {
		return false
	}
	if e == o.Ghost {
		o.Ghost = 0
	}
	return ecs.DestroyEntity(o.World, e)
}

// Duplicate copies the placeable components of e onto a new entity.
func (o *Overworld) Duplicate(e ecs.Entity) (ecs.Entity, error) {
	w := o.World
	if !ecs.IsAlive(w, e) {
		return 0, fmt.Errorf("overworld: duplicate %s: %w", e, component.ErrEntityNotAlive)
	}

	dup := ecs.CreateEntity(w)
	if err := copyComponents(w, e, dup); err != nil {
		ecs.DestroyEntity(w, dup)
		return 0, fmt.Errorf("overworld: duplicate %s: %w", e, err)
	}
	return dup, nil
}

func copyComponents(w *ecs.World, src, dst ecs.Entity) error {
	if err := copyComponent(w, src, dst, component.PositionComponent.Kind()); err != nil {
		return err
	}
	if s, ok := ecs.Get(w, src, component.SpriteComponent.Kind()); ok {
		sprite := *s
		if s.Source != nil {
			r := *s.Source
			sprite.Source = &r
		}
		if err := ecs.Add(w, dst, component.SpriteComponent.Kind(), &sprite); err != nil {
			return err
		}
	}
	if err := copyComponent(w, src, dst, component.CollisionComponent.Kind()); err != nil {
		return err
	}
	if err := copyComponent(w, src, dst, component.AnimationComponent.Kind()); err != nil {
		return err
	}
	if err := copyComponent(w, src, dst, component.InteractableComponent.Kind()); err != nil {
		return err
	}
	if err := copyComponent(w, src, dst, component.FollowComponent.Kind()); err != nil {
		return err
	}
	return ecs.Add(w, dst, component.PersistentComponent.Kind(), &component.Persistent{ID: uuid.NewString()})
}

func copyComponent[T any](w *ecs.World, src, dst ecs.Entity, kind component.ComponentKind[T]) error {
	v, ok := ecs.Get(w, src, kind)
	if !ok {
		return nil
	}
	c := *v
	return ecs.Add(w, dst, kind, &c)
}

// QueryCursorPos returns the topmost entity whose sprite covers cursor and
// the entity's position relative to the cursor.
func (o *Overworld) QueryCursorPos(sizes system.TextureSizer, cursor common.Vec2) (ecs.Entity, common.Vec2, bool) {
	order := system.DrawOrder(o.World)
	for i := len(order) - 1; i >= 0; i-- {
		e := order[i]
		bounds, ok := system.SpriteBounds(o.World, e, sizes)
		if !ok || !bounds.Contains(cursor) {
			continue
		}
		pos, _ := ecs.Get(o.World, e, component.PositionComponent.Kind())
		return e, common.Vec2{X: pos.X, Y: pos.Y}.Sub(cursor), true
	}
	return 0, common.Vec2{}, false
}
