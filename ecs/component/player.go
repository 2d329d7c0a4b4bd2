package component

// Player holds movement tuning for the controlled character.
type Player struct {
	MoveSpeed float64 `json:"move_speed"`
	IdleAnim  string  `json:"idle_anim"`
	UpAnim    string  `json:"up_anim"`
	SideAnim  string  `json:"side_anim"`
}

var PlayerComponent = NewComponent[Player]()
