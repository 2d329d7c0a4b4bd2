package component

import "github.com/milk9111/overworld/common"

// Animation plays a named animation from an animated sprite sheet.
// Frame indexes the sheet's expanded per-tick frame list.
type Animation struct {
	Sheet  string      `json:"sheet"`
	Name   string      `json:"name"`
	Frame  int         `json:"frame"`
	Offset common.Vec2 `json:"offset"`
}

// Play switches animations, restarting the frame counter only when the name changes.
func (a *Animation) Play(name string) {
	if a.Name == name {
		return
	}
	a.Name = name
	a.Frame = 0
}

var AnimationComponent = NewComponent[Animation]()
