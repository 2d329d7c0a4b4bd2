package assets

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/milk9111/overworld/common"
)

// DefaultFPS is the nominal tick rate animations are expanded to.
const DefaultFPS = 60.0

// Frame is one source frame of a sprite sheet.
type Frame struct {
	Src        common.Rect
	Offset     common.Vec2
	SourceSize common.Vec2
}

// SpriteSheet is a parsed Aseprite export. Animations maps a tag name to the
// per-tick list of indexes into Frames.
type SpriteSheet struct {
	Image      string
	Frames     []Frame
	Animations map[string][]int
}

type sheetRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type sheetSize struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type sheetFrame struct {
	Frame            sheetRect `json:"frame"`
	SpriteSourceSize sheetRect `json:"spriteSourceSize"`
	SourceSize       sheetSize `json:"sourceSize"`
	Duration         float64   `json:"duration"`
}

type sheetTag struct {
	Name string `json:"name"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type sheetFile struct {
	Frames []sheetFrame `json:"frames"`
	Meta   struct {
		Image     string     `json:"image"`
		FrameTags []sheetTag `json:"frameTags"`
	} `json:"meta"`
}

// ParseSpriteSheet decodes Aseprite JSON (array layout) and expands every
// frame tag at fps: a frame lasting d milliseconds occupies round(d*fps/1000) ticks.
func ParseSpriteSheet(data []byte, fps float64) (*SpriteSheet, error) {
	if fps <= 0 {
		fps = DefaultFPS
	}

	var raw sheetFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("assets: decode sprite sheet: %w", err)
	}

	sheet := &SpriteSheet{
		Image:      raw.Meta.Image,
		Frames:     make([]Frame, 0, len(raw.Frames)),
		Animations: make(map[string][]int, len(raw.Meta.FrameTags)),
	}
	for _, f := range raw.Frames {
		sheet.Frames = append(sheet.Frames, Frame{
			Src:        common.Rect{X: f.Frame.X, Y: f.Frame.Y, W: f.Frame.W, H: f.Frame.H},
			Offset:     common.Vec2{X: f.SpriteSourceSize.X, Y: f.SpriteSourceSize.Y},
			SourceSize: common.Vec2{X: f.SourceSize.W, Y: f.SourceSize.H},
		})
	}

	framesPerMs := fps / 1000
	for _, tag := range raw.Meta.FrameTags {
		if tag.From < 0 || tag.To >= len(raw.Frames) || tag.From > tag.To {
			return nil, fmt.Errorf("assets: frame tag %q: range %d..%d outside %d frames", tag.Name, tag.From, tag.To, len(raw.Frames))
		}
		var expanded []int
		for i := tag.From; i <= tag.To; i++ {
			repeats := int(math.Round(raw.Frames[i].Duration * framesPerMs))
			for n := 0; n < repeats; n++ {
				expanded = append(expanded, i)
			}
		}
		sheet.Animations[tag.Name] = expanded
	}

	return sheet, nil
}

// AnimFrame returns the frame shown at tick index frame of animation name.
// Unknown names and out-of-range indexes fall back to the first frame.
func (s *SpriteSheet) AnimFrame(name string, frame int) Frame {
	if s == nil || len(s.Frames) == 0 {
		return Frame{}
	}
	id := 0
	if seq, ok := s.Animations[name]; ok && frame >= 0 && frame < len(seq) {
		id = seq[frame]
	}
	if id < 0 || id >= len(s.Frames) {
		id = 0
	}
	return s.Frames[id]
}

// AnimLength returns the expanded tick count of an animation, 0 if unknown.
func (s *SpriteSheet) AnimLength(name string) int {
	if s == nil {
		return 0
	}
	return len(s.Animations[name])
}

// Tags returns the animation names, sorted.
func (s *SpriteSheet) Tags() []string {
	if s == nil {
		return nil
	}
	tags := make([]string, 0, len(s.Animations))
	for name := range s.Animations {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	return tags
}
