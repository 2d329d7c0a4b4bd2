package component

// Input stores the current frame's input for an entity.
// Locked is set while a conversation owns the controls.
type Input struct {
	MoveX    float64
	MoveY    float64
	Interact bool
	Locked   bool
}

var InputComponent = NewComponent[Input]()
