package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// InputSystem copies the frame's polled input onto every entity with an
// Input component.
type InputSystem struct {
	frame component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Set stores the input applied on the next Update.
func (i *InputSystem) Set(in component.Input) {
	i.frame = in
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = i.frame
	})
}
