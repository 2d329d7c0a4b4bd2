package dialogue

import "github.com/milk9111/overworld/task"

// Waiting is the continuation a shown line is blocked on.
type Waiting int

const (
	WaitNone Waiting = iota
	WaitConfirm
	WaitChoice
	WaitAuto
)

func (w Waiting) String() string {
	switch w {
	case WaitConfirm:
		return "confirm"
	case WaitChoice:
		return "choice"
	case WaitAuto:
		return "auto"
	default:
		return "none"
	}
}

// Input is the subset of a frame's input the dialogue box reacts to.
type Input struct {
	Up      bool
	Down    bool
	Confirm bool
}

// Dialogue is the state of the on-screen text box. Text reveals one rune per
// Update; a pending signal fires according to its Waiting kind.
type Dialogue struct {
	shown    bool
	text     []rune
	progress int
	portrait string

	waiting  Waiting
	confirm  *task.Signal[struct{}]
	choice   *task.Signal[int]
	choices  []string
	selected int

	session *task.Signal[struct{}]
}

func New() *Dialogue {
	return &Dialogue{}
}

// SetText shows the box with a fresh line.
func (d *Dialogue) SetText(text string) {
	d.shown = true
	d.text = []rune(text)
	d.progress = 0
}

// AwaitConfirm returns a signal fired by the next confirm press once the
// current line is fully revealed.
func (d *Dialogue) AwaitConfirm() *task.Signal[struct{}] {
	d.cancelPending()
	d.waiting = WaitConfirm
	d.confirm = task.NewSignal[struct{}]()
	return d.confirm
}

// AwaitAuto returns a signal fired as soon as the current line is revealed.
func (d *Dialogue) AwaitAuto() *task.Signal[struct{}] {
	d.cancelPending()
	d.waiting = WaitAuto
	d.confirm = task.NewSignal[struct{}]()
	return d.confirm
}

// AwaitChoice lists choices under the current line and returns a signal
// carrying the index confirmed by the player.
func (d *Dialogue) AwaitChoice(choices []string) *task.Signal[int] {
	d.cancelPending()
	d.waiting = WaitChoice
	d.choices = append([]string(nil), choices...)
	d.selected = 0
	d.choice = task.NewSignal[int]()
	return d.choice
}

// Update advances the reveal by one rune and fires the pending signal when
// its condition is met. Confirm on a partially revealed line completes the
// reveal instead.
func (d *Dialogue) Update(in Input) {
	if !d.shown {
		return
	}
	d.progress++

	if n := len(d.choices); n > 0 {
		if in.Up {
			d.selected = (d.selected - 1 + n) % n
		}
		if in.Down {
			d.selected = (d.selected + 1) % n
		}
	}

	revealed := d.Revealed()
	switch d.waiting {
	case WaitAuto:
		if revealed {
			d.fireConfirm()
		}
	case WaitConfirm:
		if !in.Confirm {
			return
		}
		if !revealed {
			d.progress = len(d.text)
			return
		}
		d.fireConfirm()
	case WaitChoice:
		if !in.Confirm {
			return
		}
		if !revealed {
			d.progress = len(d.text)
			return
		}
		sig, idx := d.choice, d.selected
		d.waiting = WaitNone
		d.choice = nil
		d.choices = nil
		d.selected = 0
		sig.Send(idx)
	}
}

func (d *Dialogue) fireConfirm() {
	sig := d.confirm
	d.waiting = WaitNone
	d.confirm = nil
	sig.Send(struct{}{})
}

func (d *Dialogue) cancelPending() {
	d.confirm.Cancel()
	d.choice.Cancel()
	d.confirm = nil
	d.choice = nil
	d.waiting = WaitNone
}

// Session returns a signal that the next End cancels. Scripts suspended on
// anything other than the box itself, such as a timer or a camera pan, watch
// it to stop with the conversation.
func (d *Dialogue) Session() *task.Signal[struct{}] {
	if d.session == nil {
		d.session = task.NewSignal[struct{}]()
	}
	return d.session
}

// End hides the box and clears every field. A script still awaiting a
// signal from this dialogue observes task.ErrCancelled.
func (d *Dialogue) End() {
	d.cancelPending()
	d.session.Cancel()
	d.session = nil
	d.shown = false
	d.text = nil
	d.progress = 0
	d.portrait = ""
	d.choices = nil
	d.selected = 0
}

func (d *Dialogue) SetPortrait(texture string) {
	d.portrait = texture
}

func (d *Dialogue) Portrait() string { return d.portrait }

func (d *Dialogue) Shown() bool { return d.shown }

func (d *Dialogue) Text() string { return string(d.text) }

func (d *Dialogue) Waiting() Waiting { return d.waiting }

func (d *Dialogue) Progress() int { return d.progress }

// Revealed reports whether the whole line is visible.
func (d *Dialogue) Revealed() bool {
	return d.progress >= len(d.text)
}

// Visible returns the revealed prefix of the line.
func (d *Dialogue) Visible() string {
	n := d.progress
	if n > len(d.text) {
		n = len(d.text)
	}
	return string(d.text[:n])
}

func (d *Dialogue) Choices() []string {
	return append([]string(nil), d.choices...)
}

func (d *Dialogue) Selected() int { return d.selected }
