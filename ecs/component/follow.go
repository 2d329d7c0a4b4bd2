package component

// Follow walks an entity toward Target once their summed axis distance
// exceeds MaxDistance. Target holds an ecs.Entity handle.
type Follow struct {
	Target      uint64  `json:"-"`
	MaxDistance float64 `json:"max_distance"`
	Speed       float64 `json:"speed"`
}

var FollowComponent = NewComponent[Follow]()
