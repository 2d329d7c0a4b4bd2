package overworld

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
)

var ErrNoPlayer = errors.New("overworld: snapshot has no player")

// Snapshot is the saved form of an overworld. Entities refer to each other
// by persistent ID.
type Snapshot struct {
	Player   string         `json:"player"`
	Ghost    string         `json:"ghost,omitempty"`
	Entities []EntityRecord `json:"entities"`
}

type EntityRecord struct {
	ID           string                  `json:"id"`
	PlayerTag    bool                    `json:"player_tag,omitempty"`
	GhostTag     bool                    `json:"ghost_tag,omitempty"`
	Input        bool                    `json:"input,omitempty"`
	Player       *component.Player       `json:"player,omitempty"`
	Position     *component.Position     `json:"position,omitempty"`
	Sprite       *component.Sprite       `json:"sprite,omitempty"`
	Animation    *component.Animation    `json:"animation,omitempty"`
	Collision    *component.Collision    `json:"collision,omitempty"`
	Interactable *component.Interactable `json:"interactable,omitempty"`
	Follow       *FollowRecord           `json:"follow,omitempty"`
}

type FollowRecord struct {
	Target      string  `json:"target,omitempty"`
	MaxDistance float64 `json:"max_distance"`
	Speed       float64 `json:"speed"`
}

// persistentID returns the persistent ID of e, assigning one if needed.
func persistentID(w *ecs.World, e ecs.Entity) string {
	if p, ok := ecs.Get(w, e, component.PersistentComponent.Kind()); ok && p.ID != "" {
		return p.ID
	}
	id := uuid.NewString()
	_ = ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: id})
	return id
}

// Record captures one entity.
func (o *Overworld) Record(e ecs.Entity) (EntityRecord, error) {
	w := o.World
	if !ecs.IsAlive(w, e) {
		return EntityRecord{}, fmt.Errorf("overworld: record %s: %w", e, component.ErrEntityNotAlive)
	}

	rec := EntityRecord{
		ID:        persistentID(w, e),
		PlayerTag: ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		GhostTag:  ecs.Has(w, e, component.GhostTagComponent.Kind()),
		Input:     ecs.Has(w, e, component.InputComponent.Kind()),
	}
	rec.Player = clone(w, e, component.PlayerComponent.Kind())
	rec.Position = clone(w, e, component.PositionComponent.Kind())
	rec.Sprite = clone(w, e, component.SpriteComponent.Kind())
	rec.Animation = clone(w, e, component.AnimationComponent.Kind())
	rec.Collision = clone(w, e, component.CollisionComponent.Kind())
	rec.Interactable = clone(w, e, component.InteractableComponent.Kind())

	if f, ok := ecs.Get(w, e, component.FollowComponent.Kind()); ok {
		rec.Follow = &FollowRecord{MaxDistance: f.MaxDistance, Speed: f.Speed}
		if target := ecs.Entity(f.Target); f.Target != 0 && ecs.IsAlive(w, target) {
			rec.Follow.Target = persistentID(w, target)
		}
	}
	return rec, nil
}

func clone[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		return nil
	}
	c := *v
	return &c
}

// Snapshot captures every entity in the overworld.
func (o *Overworld) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{}
	for _, e := range ecs.Entities(o.World) {
		rec, err := o.Record(e)
		if err != nil {
			return nil, err
		}
		snap.Entities = append(snap.Entities, rec)
	}
	if ecs.IsAlive(o.World, o.Player) {
		snap.Player = persistentID(o.World, o.Player)
	}
	if o.Ghost != 0 && ecs.IsAlive(o.World, o.Ghost) {
		snap.Ghost = persistentID(o.World, o.Ghost)
	}
	return snap, nil
}

// Save writes the overworld as indented JSON.
func (o *Overworld) Save(wr io.Writer) error {
	snap, err := o.Snapshot()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(wr)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("overworld: encode snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot written by Save and builds a new overworld from it.
func Load(r io.Reader, sheets system.SheetSource) (*Overworld, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("overworld: decode snapshot: %w", err)
	}
	return FromSnapshot(&snap, sheets)
}

// FromSnapshot builds a new overworld from snap.
func FromSnapshot(snap *Snapshot, sheets system.SheetSource) (*Overworld, error) {
	o := newOverworld(ecs.NewWorld(), sheets)
	byID := make(map[string]ecs.Entity, len(snap.Entities))

	for i := range snap.Entities {
		rec := &snap.Entities[i]
		if rec.ID == "" {
			return nil, fmt.Errorf("overworld: entity %d has no id", i)
		}
		if _, dup := byID[rec.ID]; dup {
			return nil, fmt.Errorf("overworld: duplicate entity id %q", rec.ID)
		}
		e, err := o.restore(rec)
		if err != nil {
			return nil, fmt.Errorf("overworld: restore %q: %w", rec.ID, err)
		}
		byID[rec.ID] = e
	}

	// Follow targets may appear after their followers.
	for _, rec := range snap.Entities {
		if rec.Follow == nil {
			continue
		}
		var target ecs.Entity
		if rec.Follow.Target != "" {
			target = byID[rec.Follow.Target]
		}
		err := ecs.Add(o.World, byID[rec.ID], component.FollowComponent.Kind(), &component.Follow{
			Target:      uint64(target),
			MaxDistance: rec.Follow.MaxDistance,
			Speed:       rec.Follow.Speed,
		})
		if err != nil {
			return nil, fmt.Errorf("overworld: restore follow %q: %w", rec.ID, err)
		}
	}

	var ok bool
	if o.Player, ok = byID[snap.Player]; !ok {
		return nil, ErrNoPlayer
	}
	o.Ghost = byID[snap.Ghost]
	return o, nil
}

func (o *Overworld) restore(rec *EntityRecord) (ecs.Entity, error) {
	w := o.World
	e := ecs.CreateEntity(w)

	add := func(err error) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
		}
		return err
	}
	if err := add(ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: rec.ID})); err != nil {
		return 0, err
	}
	if rec.PlayerTag {
		if err := add(ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})); err != nil {
			return 0, err
		}
	}
	if rec.GhostTag {
		if err := add(ecs.Add(w, e, component.GhostTagComponent.Kind(), &component.GhostTag{})); err != nil {
			return 0, err
		}
	}
	if rec.Input {
		if err := add(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})); err != nil {
			return 0, err
		}
	}
	if err := add(restoreOptional(w, e, component.PlayerComponent.Kind(), rec.Player)); err != nil {
		return 0, err
	}
	if err := add(restoreOptional(w, e, component.PositionComponent.Kind(), rec.Position)); err != nil {
		return 0, err
	}
	if err := add(restoreOptional(w, e, component.SpriteComponent.Kind(), rec.Sprite)); err != nil {
		return 0, err
	}
	if err := add(restoreOptional(w, e, component.AnimationComponent.Kind(), rec.Animation)); err != nil {
		return 0, err
	}
	if err := add(restoreOptional(w, e, component.CollisionComponent.Kind(), rec.Collision)); err != nil {
		return 0, err
	}
	if err := add(restoreOptional(w, e, component.InteractableComponent.Kind(), rec.Interactable)); err != nil {
		return 0, err
	}
	return e, nil
}

func restoreOptional[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) error {
	if v == nil {
		return nil
	}
	c := *v
	return ecs.Add(w, e, kind, &c)
}
