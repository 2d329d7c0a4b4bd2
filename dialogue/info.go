package dialogue

import "sort"

const (
	KeyPlayer    = "player"
	KeyCompanion = "companion"
)

// Info is the narrative state shared between conversations: the chosen
// personas plus free-form flags such as met_ghost.
type Info struct {
	Player    string         `json:"player" yaml:"player"`
	Companion string         `json:"companion" yaml:"companion"`
	Flags     map[string]any `json:"flags,omitempty" yaml:"flags"`
}

func NewInfo() *Info {
	return &Info{Flags: map[string]any{}}
}

// Set stores a value. The persona keys update their dedicated fields.
func (i *Info) Set(key string, value any) {
	switch key {
	case KeyPlayer:
		if s, ok := value.(string); ok {
			i.Player = s
			return
		}
	case KeyCompanion:
		if s, ok := value.(string); ok {
			i.Companion = s
			return
		}
	}
	if i.Flags == nil {
		i.Flags = map[string]any{}
	}
	i.Flags[key] = value
}

func (i *Info) Get(key string) (any, bool) {
	switch key {
	case KeyPlayer:
		return i.Player, i.Player != ""
	case KeyCompanion:
		return i.Companion, i.Companion != ""
	}
	v, ok := i.Flags[key]
	return v, ok
}

// Flag reports whether key holds a truthy value.
func (i *Info) Flag(key string) bool {
	v, ok := i.Get(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "false"
	case int:
		return t != 0
	case float64:
		return t != 0
	default:
		return v != nil
	}
}

// Vars flattens the info into the variable map seen by conditions and templates.
func (i *Info) Vars() map[string]any {
	vars := make(map[string]any, len(i.Flags)+2)
	for k, v := range i.Flags {
		vars[k] = v
	}
	vars[KeyPlayer] = i.Player
	vars[KeyCompanion] = i.Companion
	return vars
}

// Keys returns every set flag name, sorted.
func (i *Info) Keys() []string {
	keys := make([]string, 0, len(i.Flags))
	for k := range i.Flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
