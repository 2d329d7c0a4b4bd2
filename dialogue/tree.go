package dialogue

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/milk9111/overworld/task"
	"gopkg.in/yaml.v3"
)

// Host is what a running tree drives: the game's dialogue box, narrative
// state and named script hooks.
type Host interface {
	ShowText(t *task.Task, text string) error
	ShowTextAuto(t *task.Task, text string) error
	ShowChoice(t *task.Task, text string, choices []string) (int, error)
	SetPortrait(texture string)
	EndDialogue()
	Info() *Info
	Call(t *task.Task, name string, args []string) error
}

// Option is one branch of a choice node.
type Option struct {
	Text  string `yaml:"text"`
	When  string `yaml:"when"`
	Nodes []Node `yaml:"nodes"`

	text *template.Template
	when *Condition
}

// Node is one step of a tree. Exactly one of the action fields is set.
type Node struct {
	Line     string         `yaml:"line"`
	Auto     string         `yaml:"auto"`
	Choice   string         `yaml:"choice"`
	Options  []Option       `yaml:"options"`
	Set      map[string]any `yaml:"set"`
	Call     string         `yaml:"call"`
	Args     []string       `yaml:"args"`
	Portrait *string        `yaml:"portrait"`
	End      bool           `yaml:"end"`
	When     string         `yaml:"when"`

	text *template.Template
	when *Condition
}

// Tree is a branching conversation started by an interaction trigger.
type Tree struct {
	Name     string `yaml:"name"`
	Trigger  string `yaml:"trigger"`
	When     string `yaml:"when"`
	Priority int    `yaml:"priority"`
	Portrait string `yaml:"portrait"`
	Nodes    []Node `yaml:"nodes"`

	when *Condition
}

// errEnded unwinds runNodes when an `end` node stops the tree early.
var errEnded = errors.New("dialogue: ended")

// ParseTree decodes and compiles a YAML dialogue tree.
func ParseTree(data []byte) (*Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("dialogue: decode tree: %w", err)
	}
	if tree.Name == "" {
		return nil, fmt.Errorf("dialogue: tree has no name")
	}
	if tree.Trigger == "" {
		return nil, fmt.Errorf("dialogue: tree %s: no trigger", tree.Name)
	}
	when, err := CompileCondition(tree.When)
	if err != nil {
		return nil, fmt.Errorf("dialogue: tree %s: %w", tree.Name, err)
	}
	tree.when = when
	if err := compileNodes(tree.Name, tree.Nodes); err != nil {
		return nil, err
	}
	return &tree, nil
}

func compileNodes(tree string, nodes []Node) error {
	for i := range nodes {
		n := &nodes[i]
		if err := n.validate(); err != nil {
			return fmt.Errorf("dialogue: tree %s: node %d: %w", tree, i, err)
		}
		when, err := CompileCondition(n.When)
		if err != nil {
			return fmt.Errorf("dialogue: tree %s: node %d: %w", tree, i, err)
		}
		n.when = when

		if src := n.textSource(); src != "" {
			tmpl, err := template.New(fmt.Sprintf("%s.%d", tree, i)).Parse(src)
			if err != nil {
				return fmt.Errorf("dialogue: tree %s: node %d: %w", tree, i, err)
			}
			n.text = tmpl
		}

		for j := range n.Options {
			opt := &n.Options[j]
			tmpl, err := template.New(fmt.Sprintf("%s.%d.%d", tree, i, j)).Parse(opt.Text)
			if err != nil {
				return fmt.Errorf("dialogue: tree %s: node %d option %d: %w", tree, i, j, err)
			}
			opt.text = tmpl
			if opt.when, err = CompileCondition(opt.When); err != nil {
				return fmt.Errorf("dialogue: tree %s: node %d option %d: %w", tree, i, j, err)
			}
			if err := compileNodes(tree, opt.Nodes); err != nil {
				return err
			}
		}
	}
	return nil
}

func (n *Node) validate() error {
	actions := 0
	for _, set := range []bool{n.Line != "", n.Auto != "", n.Choice != "", n.Set != nil, n.Call != "", n.Portrait != nil, n.End} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return fmt.Errorf("want exactly one action, got %d", actions)
	}
	if n.Choice != "" && len(n.Options) == 0 {
		return fmt.Errorf("choice without options")
	}
	if n.Choice == "" && len(n.Options) > 0 {
		return fmt.Errorf("options without a choice")
	}
	return nil
}

func (n *Node) textSource() string {
	switch {
	case n.Line != "":
		return n.Line
	case n.Auto != "":
		return n.Auto
	default:
		return n.Choice
	}
}

// Applies reports whether the tree's condition holds for info.
func (t *Tree) Applies(info *Info) (bool, error) {
	return t.when.Eval(info)
}

// Run plays the tree to completion on h and ends the dialogue afterwards.
func (t *Tree) Run(tk *task.Task, h Host) error {
	if t.Portrait != "" {
		h.SetPortrait(t.Portrait)
	}
	err := runNodes(tk, h, t.Nodes)
	if errors.Is(err, errEnded) {
		err = nil
	}
	if !errors.Is(err, task.ErrCancelled) {
		h.EndDialogue()
	}
	return err
}

func runNodes(tk *task.Task, h Host, nodes []Node) error {
	for i := range nodes {
		n := &nodes[i]
		ok, err := n.when.Eval(h.Info())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := runNode(tk, h, n); err != nil {
			return err
		}
	}
	return nil
}

func runNode(tk *task.Task, h Host, n *Node) error {
	switch {
	case n.Line != "":
		text, err := render(n.text, h.Info())
		if err != nil {
			return err
		}
		return h.ShowText(tk, text)
	case n.Auto != "":
		text, err := render(n.text, h.Info())
		if err != nil {
			return err
		}
		return h.ShowTextAuto(tk, text)
	case n.Choice != "":
		return runChoice(tk, h, n)
	case n.Set != nil:
		for k, v := range n.Set {
			h.Info().Set(k, v)
		}
		return nil
	case n.Call != "":
		return h.Call(tk, n.Call, n.Args)
	case n.Portrait != nil:
		h.SetPortrait(*n.Portrait)
		return nil
	case n.End:
		return errEnded
	}
	return nil
}

func runChoice(tk *task.Task, h Host, n *Node) error {
	text, err := render(n.text, h.Info())
	if err != nil {
		return err
	}

	var visible []*Option
	var labels []string
	for j := range n.Options {
		opt := &n.Options[j]
		ok, err := opt.when.Eval(h.Info())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		label, err := render(opt.text, h.Info())
		if err != nil {
			return err
		}
		visible = append(visible, opt)
		labels = append(labels, label)
	}
	if len(visible) == 0 {
		return nil
	}

	idx, err := h.ShowChoice(tk, text, labels)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(visible) {
		return fmt.Errorf("dialogue: choice %d out of range", idx)
	}
	return runNodes(tk, h, visible[idx].Nodes)
}

func render(tmpl *template.Template, info *Info) (string, error) {
	if tmpl == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, info.Vars()); err != nil {
		return "", fmt.Errorf("dialogue: render %s: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
