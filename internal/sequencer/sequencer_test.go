package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyframe/pyframe/internal/config"
)

func TestSequentialCycle(t *testing.T) {
	const n = 7
	s := New(config.ModeSequential, n)
	start := s.Current()

	for i := 0; i < n; i++ {
		s.Advance()
	}
	assert.Equal(t, start, s.Current(), "N advances should return to the starting index")
}

func TestSequentialAdvanceSetsPrevious(t *testing.T) {
	s := New(config.ModeSequential, 3)

	assert.Equal(t, 0, s.Current())
	assert.Equal(t, 0, s.Previous(), "previous equals current at startup")

	s.Advance()
	assert.Equal(t, 1, s.Current())
	assert.Equal(t, 0, s.Previous())

	s.Advance()
	assert.Equal(t, 2, s.Current())
	assert.Equal(t, 1, s.Previous())

	s.Advance()
	assert.Equal(t, 0, s.Current(), "wraps at the end")
}

func TestSequentialRetreatWraps(t *testing.T) {
	s := New(config.ModeSequential, 4)
	// Empty history: retreat steps backwards modularly.
	s.Retreat()
	assert.Equal(t, 3, s.Current())
}

func TestRetreatFollowsHistory(t *testing.T) {
	s := New(config.ModeSequential, 5)
	s.Advance() // 1
	s.Advance() // 2
	s.Advance() // 3

	s.Retreat()
	assert.Equal(t, 2, s.Current())
	s.Retreat()
	assert.Equal(t, 1, s.Current())
	s.Retreat()
	assert.Equal(t, 0, s.Current())
}

func TestRandomNeverRepeatsCurrent(t *testing.T) {
	s := New(config.ModeRandom, 5)
	for i := 0; i < 1000; i++ {
		before := s.Current()
		after := s.JumpRandom()
		require.NotEqual(t, before, after, "random jump returned the current index")
	}
}

func TestRandomCoversAllIndexes(t *testing.T) {
	const n = 6
	s := New(config.ModeRandom, n)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		seen[s.Advance()] = true
	}
	assert.Len(t, seen, n, "uniform jumps should eventually visit every index")
}

func TestRandomSingleEntry(t *testing.T) {
	s := New(config.ModeRandom, 1)
	assert.Equal(t, 0, s.Advance())
	assert.Equal(t, 0, s.JumpRandom())
}

func TestRandomUsesInjectedSource(t *testing.T) {
	s := New(config.ModeRandom, 10)
	picks := []int{4, 7, 7, 2}
	i := 0
	s.intN = func(n int) int {
		v := picks[i%len(picks)]
		i++
		return v
	}

	assert.Equal(t, 4, s.Advance())
	// 7 is picked twice but never equals current, so it is accepted.
	assert.Equal(t, 7, s.Advance())
	assert.Equal(t, 2, s.Advance())
}

func TestTogglePause(t *testing.T) {
	s := New(config.ModeSequential, 3)
	assert.False(t, s.Paused())
	assert.True(t, s.TogglePause())
	assert.True(t, s.Paused())

	// Manual navigation still works while paused.
	s.Advance()
	assert.Equal(t, 1, s.Current())

	assert.False(t, s.TogglePause())
	assert.False(t, s.Paused())
}

func TestResizeClampsIndexes(t *testing.T) {
	s := New(config.ModeSequential, 5)
	s.Advance()
	s.Advance()
	s.Advance()
	s.Advance() // current = 4

	s.Resize(3)
	assert.Equal(t, 0, s.Current())
	assert.Less(t, s.Previous(), 3)

	s.Resize(10)
	assert.Equal(t, 10, s.Len())
}

func TestHistoryBounded(t *testing.T) {
	s := New(config.ModeSequential, 3)
	for i := 0; i < historyCap*2; i++ {
		s.Advance()
	}
	assert.LessOrEqual(t, len(s.history), historyCap)
}
