package game

import (
	"fmt"
	"strconv"

	"github.com/milk9111/overworld/dialogue"
	"github.com/milk9111/overworld/task"
)

// Script is a dialogue written in Go. When gates it like a tree's `when`.
type Script struct {
	When func(info *dialogue.Info) bool
	Run  func(t *task.Task, g *Game) error
}

// CallFunc implements a `call` node in a dialogue tree.
type CallFunc func(t *task.Task, g *Game, args []string) error

var _ dialogue.Host = (*Game)(nil)

// RegisterScript binds a coded script to trigger. Dialogue trees for the
// same trigger still take precedence when their condition holds.
func (g *Game) RegisterScript(trigger string, s Script) {
	g.scripts[trigger] = s
}

// RegisterCall exposes fn to dialogue trees as `call: name`.
func (g *Game) RegisterCall(name string, fn CallFunc) {
	g.calls[name] = fn
}

func (g *Game) registerBuiltins() {
	g.RegisterCall("pan_camera", callPanCamera)
	g.RegisterCall("wait", callWait)
	g.RegisterScript("bed", Script{Run: bedScript})
}

// ShowText shows text and waits for the player to confirm it.
func (g *Game) ShowText(t *task.Task, text string) error {
	g.Dialogue.SetText(text)
	_, err := task.Await(t, g.Dialogue.AwaitConfirm())
	return err
}

// ShowTextAuto shows text and returns once it is fully revealed.
func (g *Game) ShowTextAuto(t *task.Task, text string) error {
	g.Dialogue.SetText(text)
	_, err := task.Await(t, g.Dialogue.AwaitAuto())
	return err
}

// ShowChoice shows text with choices and returns the confirmed index.
func (g *Game) ShowChoice(t *task.Task, text string, choices []string) (int, error) {
	g.Dialogue.SetText(text)
	return task.Await(t, g.Dialogue.AwaitChoice(choices))
}

func (g *Game) SetPortrait(texture string) {
	g.Dialogue.SetPortrait(texture)
}

// EndDialogue hides the box and hands the camera back to the player.
func (g *Game) EndDialogue() {
	g.Dialogue.End()
	g.Camera.Release()
}

func (g *Game) Call(t *task.Task, name string, args []string) error {
	fn, ok := g.calls[name]
	if !ok {
		return fmt.Errorf("game: unknown call %q", name)
	}
	return fn(t, g, args)
}

// Wait suspends t for the given number of frames. Ending the dialogue
// meanwhile stops it with task.ErrCancelled.
func (g *Game) Wait(t *task.Task, frames int) error {
	return task.Sleep(t, frames, g.Dialogue.Session())
}

// PanCamera moves the view to (x, y) over seconds and waits for it to
// arrive. The camera stays there until the dialogue ends; ending it before
// arrival stops t with task.ErrCancelled.
func (g *Game) PanCamera(t *task.Task, x, y float64, seconds float32) error {
	session := g.Dialogue.Session()
	arrived := task.NewSignal[struct{}]()
	g.Camera.Pan(x, y, seconds, nil, func(finished bool) {
		if finished {
			arrived.Send(struct{}{})
			return
		}
		arrived.Cancel()
	})
	_, err := task.AwaitUnless(t, arrived, session)
	return err
}

func callPanCamera(t *task.Task, g *Game, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("game: pan_camera: want x, y, seconds; got %d args", len(args))
	}
	var vals [3]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("game: pan_camera: arg %d: %w", i, err)
		}
		vals[i] = v
	}
	return g.PanCamera(t, vals[0], vals[1], float32(vals[2]))
}

func callWait(t *task.Task, g *Game, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("game: wait: want frames; got %d args", len(args))
	}
	frames, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("game: wait: %w", err)
	}
	return g.Wait(t, frames)
}

func bedScript(t *task.Task, g *Game) error {
	g.SetPortrait("portrait_player")
	if g.info.Flag("rested") {
		if err := g.ShowText(t, "You already feel rested."); err != nil {
			return err
		}
		g.EndDialogue()
		return nil
	}

	if err := g.ShowText(t, "A neatly made bed."); err != nil {
		return err
	}
	choice, err := g.ShowChoice(t, "Take a nap?", []string{"Sleep", "Not now"})
	if err != nil {
		return err
	}
	if choice == 0 {
		if err := g.ShowTextAuto(t, "Zzz..."); err != nil {
			return err
		}
		if err := g.Wait(t, 60); err != nil {
			return err
		}
		g.info.Set("rested", true)
		if err := g.ShowText(t, "You feel rested."); err != nil {
			return err
		}
	}
	g.EndDialogue()
	return nil
}
