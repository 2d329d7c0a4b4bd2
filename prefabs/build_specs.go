package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type RectSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	IdleAnim  string  `yaml:"idle_anim"`
	UpAnim    string  `yaml:"up_anim"`
	SideAnim  string  `yaml:"side_anim"`
}

type PositionComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpriteComponentSpec struct {
	Texture  string    `yaml:"texture"`
	Sheet    string    `yaml:"sheet"`
	Source   *RectSpec `yaml:"source"`
	OffsetX  float64   `yaml:"offset_x"`
	OffsetY  float64   `yaml:"offset_y"`
	Centered bool      `yaml:"centered"`
	FlipH    bool      `yaml:"flip_h"`
	Layer    int       `yaml:"layer"`
}

type AnimationComponentSpec struct {
	Sheet   string  `yaml:"sheet"`
	Name    string  `yaml:"name"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type CollisionComponentSpec struct {
	Bounds RectSpec `yaml:"bounds"`
}

type InteractableComponentSpec struct {
	Bounds   RectSpec `yaml:"bounds"`
	Kind     string   `yaml:"kind"`
	Priority int      `yaml:"priority"`
}

type FollowComponentSpec struct {
	Target      string  `yaml:"target"`
	MaxDistance float64 `yaml:"max_distance"`
	Speed       float64 `yaml:"speed"`
}
