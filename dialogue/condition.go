package dialogue

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const conditionResult = "__result"

// Condition is a compiled tengo expression evaluated against Info. The info
// variables are reachable as fields of `info`, e.g. `!info.met_ghost`.
type Condition struct {
	src      string
	compiled *tengo.Compiled
}

// CompileCondition compiles expr. An empty expression always holds.
func CompileCondition(expr string) (*Condition, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Condition{}, nil
	}

	script := tengo.NewScript([]byte(fmt.Sprintf("%s := (%s)", conditionResult, expr)))
	_ = script.Add("info", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("text", "math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("dialogue: compile condition %q: %w", expr, err)
	}
	return &Condition{src: expr, compiled: compiled}, nil
}

func (c *Condition) String() string {
	if c == nil {
		return ""
	}
	return c.src
}

// Eval runs the condition against info.
func (c *Condition) Eval(info *Info) (bool, error) {
	if c == nil || c.compiled == nil {
		return true, nil
	}
	vars := map[string]any{}
	if info != nil {
		vars = info.Vars()
	}
	if err := c.compiled.Set("info", vars); err != nil {
		return false, fmt.Errorf("dialogue: condition %q: %w", c.src, err)
	}
	if err := c.compiled.Run(); err != nil {
		return false, fmt.Errorf("dialogue: condition %q: %w", c.src, err)
	}
	return c.compiled.Get(conditionResult).Bool(), nil
}
