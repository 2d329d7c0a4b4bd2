package component

import "github.com/milk9111/overworld/common"

// Collision is a solid box relative to the entity position.
type Collision struct {
	Bounds common.Rect `json:"bounds"`
}

var CollisionComponent = NewComponent[Collision]()
