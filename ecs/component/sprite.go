package component

import "github.com/milk9111/overworld/common"

// TextureRef names either a plain texture or an animated sprite sheet.
// Sheet wins when both are set.
type TextureRef struct {
	Name  string `json:"name,omitempty" yaml:"name"`
	Sheet string `json:"sheet,omitempty" yaml:"sheet"`
}

func (t TextureRef) Animated() bool {
	return t.Sheet != ""
}

// Sprite describes how an entity is drawn. A nil Source means the whole texture.
type Sprite struct {
	Texture  TextureRef   `json:"texture"`
	Source   *common.Rect `json:"source,omitempty"`
	Offset   common.Vec2  `json:"offset"`
	Centered bool         `json:"centered,omitempty"`
	FlipH    bool         `json:"flip_h,omitempty"`
	Layer    int          `json:"layer"`
}

// Bounds returns the sprite rect relative to the entity position. textureW and
// textureH are only consulted when Source is nil.
func (s *Sprite) Bounds(textureW, textureH float64) common.Rect {
	if s.Source != nil {
		return common.Rect{X: s.Offset.X, Y: s.Offset.Y, W: s.Source.W, H: s.Source.H}
	}
	return common.Rect{X: s.Offset.X, Y: s.Offset.Y, W: textureW, H: textureH}
}

var SpriteComponent = NewComponent[Sprite]()
