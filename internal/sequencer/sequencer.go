// Package sequencer owns the slideshow position: which catalog index
// is showing, which one was showing before it, and whether the
// automatic advance timer is paused.
package sequencer

import (
	"math/rand/v2"

	"github.com/pyframe/pyframe/internal/config"
)

// historyCap bounds the retreat history.
const historyCap = 100

// Sequencer tracks the current and previous indexes into a catalog of
// length n and implements the two ordering policies. It is used from
// the single viewer goroutine and needs no locking.
type Sequencer struct {
	mode     config.SlideshowMode
	n        int
	current  int
	previous int
	paused   bool
	history  []int
	intN     func(int) int
}

// New creates a sequencer over n entries. n must be at least 1; the
// catalog's non-empty invariant guarantees that at startup.
func New(mode config.SlideshowMode, n int) *Sequencer {
	return &Sequencer{
		mode: mode,
		n:    n,
		intN: rand.IntN,
	}
}

// Current returns the index of the entry being shown.
func (s *Sequencer) Current() int { return s.current }

// Previous returns the index shown before the last navigation. At
// startup it equals Current so the first frame has a defined fade
// source.
func (s *Sequencer) Previous() int { return s.previous }

// Paused reports whether automatic advancement is suspended.
func (s *Sequencer) Paused() bool { return s.paused }

// Len returns the number of entries the sequencer ranges over.
func (s *Sequencer) Len() int { return s.n }

// Advance moves to the next entry: the following index in SEQUENTIAL
// mode (wrapping at the end), a fresh uniform pick in RANDOM mode.
// Returns the new current index.
func (s *Sequencer) Advance() int {
	if s.mode == config.ModeRandom {
		return s.jump(s.randomIndex())
	}
	return s.jump((s.current + 1) % s.n)
}

// Retreat moves back to the most recently shown entry. When the
// history is exhausted SEQUENTIAL mode steps backwards through the
// catalog and RANDOM mode falls back to a random jump.
func (s *Sequencer) Retreat() int {
	if len(s.history) > 0 {
		target := s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]
		if target >= s.n {
			target = 0
		}
		s.previous = s.current
		s.current = target
		return s.current
	}
	if s.mode == config.ModeRandom {
		return s.JumpRandom()
	}
	return s.jump((s.current - 1 + s.n) % s.n)
}

// JumpRandom moves to a uniformly random entry regardless of mode,
// never the current one when more than one entry exists.
func (s *Sequencer) JumpRandom() int {
	return s.jump(s.randomIndex())
}

// TogglePause flips the paused flag and returns the new state. Manual
// navigation keeps working while paused.
func (s *Sequencer) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

// Resize adjusts the sequencer after the catalog grows or shrinks,
// clamping indexes that fell off the end.
func (s *Sequencer) Resize(n int) {
	if n < 1 {
		n = 1
	}
	s.n = n
	if s.current >= n {
		s.current = 0
	}
	if s.previous >= n {
		s.previous = s.current
	}
}

func (s *Sequencer) jump(target int) int {
	s.pushHistory(s.current)
	s.previous = s.current
	s.current = target
	return s.current
}

func (s *Sequencer) randomIndex() int {
	if s.n <= 1 {
		return s.current
	}
	next := s.intN(s.n)
	for next == s.current {
		next = s.intN(s.n)
	}
	return next
}

func (s *Sequencer) pushHistory(idx int) {
	if len(s.history) >= historyCap {
		copy(s.history, s.history[1:])
		s.history = s.history[:historyCap-1]
	}
	s.history = append(s.history, idx)
}
