package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVirtual(t *testing.T) {
	t.Run("When scheduling actions out of order", func(t *testing.T) {
		sut := NewVirtual()
		start := sut.Now()
		ran := make([]string, 0)
		at := make([]time.Duration, 0)

		record := func(name string) func() {
			return func() {
				ran = append(ran, name)
				at = append(at, sut.Now().Sub(start))
			}
		}

		sut.Schedule(30*time.Millisecond, record("c"))
		sut.Schedule(10*time.Millisecond, record("a"))
		sut.Schedule(20*time.Millisecond, record("b1"))
		sut.Schedule(20*time.Millisecond, record("b2"))

		t.Run("Then nothing runs until time is advanced", func(t *testing.T) {
			assert.Empty(t, ran)
			assert.Equal(t, 4, sut.Pending())
		})

		sut.AdvanceBy(25 * time.Millisecond)

		t.Run("Then due actions run in due time order, ties in scheduling order", func(t *testing.T) {
			assert.Equal(t, []string{"a", "b1", "b2"}, ran)
			assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}, at)
		})

		t.Run("Then the virtual clock rests at the advanced time", func(t *testing.T) {
			assert.Equal(t, 25*time.Millisecond, sut.Now().Sub(start))
		})

		sut.Flush()

		t.Run("Then flushing runs the remaining action at its due time", func(t *testing.T) {
			assert.Equal(t, []string{"a", "b1", "b2", "c"}, ran)
			assert.Equal(t, 30*time.Millisecond, at[3])
			assert.Zero(t, sut.Pending())
		})
	})

	t.Run("When cancelling a scheduled action", func(t *testing.T) {
		sut := NewVirtual()
		ran := false
		token := sut.Schedule(time.Second, func() { ran = true })

		t.Run("Then the first cancel succeeds and the second reports false", func(t *testing.T) {
			assert.True(t, token.Cancel())
			assert.False(t, token.Cancel())
		})

		sut.AdvanceBy(time.Hour)

		t.Run("Then the action never runs", func(t *testing.T) {
			assert.False(t, ran)
			assert.Zero(t, sut.Pending())
		})
	})

	t.Run("When an action schedules another action", func(t *testing.T) {
		sut := NewVirtual()
		ticks := 0
		var tick func()
		tick = func() {
			ticks++
			sut.Schedule(time.Second, tick)
		}
		sut.Schedule(time.Second, tick)

		sut.AdvanceBy(3500 * time.Millisecond)

		t.Run("Then actions falling due within the advanced window run too", func(t *testing.T) {
			assert.Equal(t, 3, ticks)
		})
	})

	t.Run("When cancelling an action that has already run", func(t *testing.T) {
		sut := NewVirtual()
		token := sut.Schedule(0, func() {})
		sut.Flush()

		t.Run("Then cancel reports false", func(t *testing.T) {
			assert.False(t, token.Cancel())
		})
	})
}
