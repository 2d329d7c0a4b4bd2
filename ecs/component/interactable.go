package component

import (
	"fmt"

	"github.com/milk9111/overworld/common"
)

type InteractionKind string

const (
	InteractionGhost  InteractionKind = "ghost"
	InteractionMirror InteractionKind = "mirror"
	InteractionSign   InteractionKind = "sign"
	InteractionBed    InteractionKind = "bed"
)

// ParseInteractionKind validates an interaction kind name.
func ParseInteractionKind(s string) (InteractionKind, error) {
	switch k := InteractionKind(s); k {
	case InteractionGhost, InteractionMirror, InteractionSign, InteractionBed:
		return k, nil
	}
	return "", fmt.Errorf("component: unknown interaction kind %q", s)
}

// Interactable marks an entity the player can activate. Bounds are relative
// to the entity position; higher Priority wins when several contain the player.
type Interactable struct {
	Bounds   common.Rect     `json:"bounds"`
	Kind     InteractionKind `json:"kind"`
	Priority int             `json:"priority"`
}

var InteractableComponent = NewComponent[Interactable]()
