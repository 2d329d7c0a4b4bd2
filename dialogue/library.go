package dialogue

import (
	"fmt"
	"sort"

	"github.com/milk9111/overworld/prefabs"
	"go.uber.org/zap"
)

// Library indexes dialogue trees by trigger.
type Library struct {
	byTrigger map[string][]*Tree
	byName    map[string]*Tree
}

func NewLibrary(trees ...*Tree) (*Library, error) {
	l := &Library{
		byTrigger: map[string][]*Tree{},
		byName:    map[string]*Tree{},
	}
	for _, tree := range trees {
		if _, dup := l.byName[tree.Name]; dup {
			return nil, fmt.Errorf("dialogue: duplicate tree %q", tree.Name)
		}
		l.byName[tree.Name] = tree
		l.byTrigger[tree.Trigger] = append(l.byTrigger[tree.Trigger], tree)
	}
	for _, trees := range l.byTrigger {
		sort.SliceStable(trees, func(i, j int) bool {
			if trees[i].Priority != trees[j].Priority {
				return trees[i].Priority > trees[j].Priority
			}
			return trees[i].Name < trees[j].Name
		})
	}
	return l, nil
}

// LoadLibrary parses every dialogue tree shipped with the prefabs, preferring
// on-disk copies.
func LoadLibrary(log *zap.Logger) (*Library, error) {
	if log == nil {
		log = zap.NewNop()
	}
	names, err := prefabs.DialogueNames()
	if err != nil {
		return nil, fmt.Errorf("dialogue: list trees: %w", err)
	}
	trees := make([]*Tree, 0, len(names))
	for _, name := range names {
		data, err := prefabs.LoadDialogue(name)
		if err != nil {
			return nil, fmt.Errorf("dialogue: load %s: %w", name, err)
		}
		tree, err := ParseTree(data)
		if err != nil {
			return nil, fmt.Errorf("dialogue: %s: %w", name, err)
		}
		trees = append(trees, tree)
	}
	log.Debug("dialogue trees loaded", zap.Int("count", len(trees)))
	return NewLibrary(trees...)
}

// Select returns the highest-priority tree for trigger whose condition holds.
func (l *Library) Select(trigger string, info *Info) (*Tree, bool, error) {
	if l == nil {
		return nil, false, nil
	}
	for _, tree := range l.byTrigger[trigger] {
		ok, err := tree.Applies(info)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return tree, true, nil
		}
	}
	return nil, false, nil
}

// Triggers returns every trigger with at least one tree, sorted.
func (l *Library) Triggers() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.byTrigger))
	for trigger := range l.byTrigger {
		out = append(out, trigger)
	}
	sort.Strings(out)
	return out
}
