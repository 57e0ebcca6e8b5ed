// Package anim holds the small time-driven text animations drawn over the
// particle field.
package anim

import "time"

// TypewriterOptions controls typing cadence. Unset speeds and blink rate
// take defaults; a zero Delay means no pause.
type TypewriterOptions struct {
	TypingSpeed   time.Duration
	DeletingSpeed time.Duration
	Delay         time.Duration // pause on a fully typed line
	CursorBlink   time.Duration
	Loop          bool
	Cursor        string
}

// Typewriter types each line one rune at a time, pauses, deletes it, and
// moves on to the next line. Without Loop it stops on the last line.
type Typewriter struct {
	lines [][]rune
	opts  TypewriterOptions

	index    int
	shown    int
	deleting bool
	done     bool

	pending time.Duration // time accumulated toward the next step

	cursorOn    bool
	cursorTimer time.Duration
}

func NewTypewriter(lines []string, opts TypewriterOptions) *Typewriter {
	if opts.TypingSpeed <= 0 {
		opts.TypingSpeed = 100 * time.Millisecond
	}
	if opts.DeletingSpeed <= 0 {
		opts.DeletingSpeed = 50 * time.Millisecond
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if opts.CursorBlink <= 0 {
		opts.CursorBlink = 500 * time.Millisecond
	}

	tw := &Typewriter{opts: opts, cursorOn: true}
	for _, l := range lines {
		tw.lines = append(tw.lines, []rune(l))
	}
	return tw
}

// Advance moves the animation forward by dt.
func (t *Typewriter) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}

	t.cursorTimer += dt
	for t.cursorTimer >= t.opts.CursorBlink {
		t.cursorTimer -= t.opts.CursorBlink
		t.cursorOn = !t.cursorOn
	}

	if len(t.lines) == 0 || t.done {
		return
	}
	t.pending += dt
	// Empty lines with no delay would cycle forever without consuming time.
	instant := 0
	for !t.done {
		wait := t.nextWait()
		if t.pending < wait {
			return
		}
		if wait == 0 {
			if instant++; instant > 2*len(t.lines) {
				return
			}
		} else {
			instant = 0
		}
		t.pending -= wait
		t.step()
	}
}

// nextWait is how long the current state lasts before step runs.
func (t *Typewriter) nextWait() time.Duration {
	line := t.lines[t.index]
	switch {
	case !t.deleting && t.shown == len(line):
		return t.opts.Delay
	case t.deleting && t.shown == 0:
		return 0
	case t.deleting:
		return t.opts.DeletingSpeed
	default:
		return t.opts.TypingSpeed
	}
}

func (t *Typewriter) step() {
	line := t.lines[t.index]
	switch {
	case !t.deleting && t.shown == len(line):
		if t.opts.Loop || t.index < len(t.lines)-1 {
			t.deleting = true
		} else {
			t.done = true
		}
	case t.deleting && t.shown == 0:
		t.deleting = false
		t.index = (t.index + 1) % len(t.lines)
	case t.deleting:
		t.shown--
	default:
		t.shown++
	}
}

// Visible returns the currently typed text without the cursor.
func (t *Typewriter) Visible() string {
	if len(t.lines) == 0 {
		return ""
	}
	return string(t.lines[t.index][:t.shown])
}

// Text returns the typed text followed by the cursor while it is lit.
func (t *Typewriter) Text() string {
	if t.opts.Cursor == "" || !t.cursorOn {
		return t.Visible()
	}
	return t.Visible() + t.opts.Cursor
}

// Index is the line currently being typed or deleted.
func (t *Typewriter) Index() int { return t.index }

// Done reports whether a non-looping typewriter has finished.
func (t *Typewriter) Done() bool { return t.done }
