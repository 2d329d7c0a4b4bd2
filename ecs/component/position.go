package component

// Position is the world-space location of an entity that exists in space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var PositionComponent = NewComponent[Position]()
