package dialogue

import (
	"testing"

	"github.com/milk9111/overworld/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tick(d *Dialogue, n int, in Input) {
	for i := 0; i < n; i++ {
		d.Update(in)
	}
}

func TestRevealOneRunePerTick(t *testing.T) {
	d := New()
	d.SetText("ABCDE")
	require.True(t, d.Shown())

	tick(d, 3, Input{})
	assert.Equal(t, "ABC", d.Visible())
	assert.False(t, d.Revealed())

	tick(d, 4, Input{})
	assert.Equal(t, "ABCDE", d.Visible())
	assert.True(t, d.Revealed())
	assert.Equal(t, 7, d.Progress())
}

func TestRevealCountsRunes(t *testing.T) {
	d := New()
	d.SetText("héllo")
	tick(d, 2, Input{})
	assert.Equal(t, "hé", d.Visible())
}

func TestAutoFiresWhenRevealed(t *testing.T) {
	d := New()
	d.SetText("ABCDE")
	sig := d.AwaitAuto()

	tick(d, 4, Input{})
	assert.False(t, sig.Ready())
	assert.Equal(t, WaitAuto, d.Waiting())

	d.Update(Input{})
	require.True(t, sig.Ready())
	_, err := sig.Result()
	assert.NoError(t, err)
	assert.Equal(t, WaitNone, d.Waiting())
}

func TestConfirmNeedsInputAfterReveal(t *testing.T) {
	d := New()
	d.SetText("ABCDE")
	sig := d.AwaitConfirm()

	d.Update(Input{Confirm: true})
	assert.False(t, sig.Ready(), "confirm while revealing only completes the line")
	assert.True(t, d.Revealed())

	tick(d, 10, Input{})
	assert.False(t, sig.Ready())

	d.Update(Input{Confirm: true})
	assert.True(t, sig.Ready())
}

func TestChoiceWraparound(t *testing.T) {
	tests := []struct {
		name   string
		inputs []Input
		want   int
	}{
		{name: "down once", inputs: []Input{{Down: true}}, want: 1},
		{name: "up from first wraps to last", inputs: []Input{{Up: true}}, want: 2},
		{name: "down past last wraps to first", inputs: []Input{{Down: true}, {Down: true}, {Down: true}}, want: 0},
		{name: "up and down cancel", inputs: []Input{{Up: true, Down: true}}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.SetText("Pick")
			sig := d.AwaitChoice([]string{"a", "b", "c"})
			for _, in := range tt.inputs {
				d.Update(in)
			}
			assert.Equal(t, tt.want, d.Selected())

			tick(d, 4, Input{})
			d.Update(Input{Confirm: true})
			require.True(t, sig.Ready())
			got, err := sig.Result()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, d.Choices())
		})
	}
}

func TestEndClearsAndCancels(t *testing.T) {
	d := New()
	d.SetText("Hello")
	d.SetPortrait("portrait_ghost")
	sig := d.AwaitChoice([]string{"yes", "no"})
	d.Update(Input{Down: true})

	d.End()
	assert.False(t, d.Shown())
	assert.Empty(t, d.Text())
	assert.Empty(t, d.Portrait())
	assert.Empty(t, d.Choices())
	assert.Equal(t, 0, d.Selected())
	assert.Equal(t, WaitNone, d.Waiting())

	_, err := sig.Result()
	assert.ErrorIs(t, err, task.ErrCancelled)

	// Nothing stale fires afterwards.
	tick(d, 10, Input{Confirm: true})
	assert.False(t, d.Shown())
}

func TestNewWaitCancelsPrevious(t *testing.T) {
	d := New()
	d.SetText("one")
	first := d.AwaitConfirm()
	second := d.AwaitAuto()

	_, err := first.Result()
	assert.ErrorIs(t, err, task.ErrCancelled)
	tick(d, 3, Input{})
	assert.True(t, second.Ready())
}

func TestUpdateHiddenIsNoop(t *testing.T) {
	d := New()
	d.Update(Input{Confirm: true})
	assert.Equal(t, 0, d.Progress())
}

func TestEndCancelsSession(t *testing.T) {
	d := New()
	first := d.Session()
	assert.Same(t, first, d.Session())

	d.SetText("Zzz...")
	d.End()
	_, err := first.Result()
	assert.ErrorIs(t, err, task.ErrCancelled)

	next := d.Session()
	assert.NotSame(t, first, next)
	assert.False(t, next.Ready())
}
