package testutils

import (
	"sync"
	"testing"
	"time"

	"github.com/ducka/go-kayak-rx/utils"
	"github.com/stretchr/testify/assert"
)

func TestConcurrencySync(t *testing.T) {
	spawn := func(sut *ConcurrencySync, count int) bool {
		wg := sync.WaitGroup{}
		wg.Add(count)
		for i := 0; i < count; i++ {
			go func() {
				defer wg.Done()
				sut.Checkpoint()
			}()
		}
		return utils.WaitFor(&wg, time.Second)
	}

	t.Run("When the number of routines is a multiple of the limit", func(t *testing.T) {
		for _, limit := range []int{1, 3, 5} {
			sut := NewConcurrencySync(limit)
			ok := spawn(sut, limit*4)

			t.Run("Then every routine is released in groups of the limit", func(t *testing.T) {
				assert.True(t, ok)
				assert.Equal(t, limit*4, sut.HitCount())
				assert.Equal(t, 4, sut.ReleaseCount())
			})
		}
	})

	t.Run("When the number of routines is not a multiple of the limit", func(t *testing.T) {
		sut := NewConcurrencySync(3)
		ok := spawn(sut, 8)

		t.Run("Then the remaining routines are left waiting", func(t *testing.T) {
			assert.False(t, ok)
			assert.Equal(t, 8, sut.HitCount())
			assert.Equal(t, 2, sut.ReleaseCount())
		})
	})

	t.Run("When the limit is less than one", func(t *testing.T) {
		t.Run("Then it panics", func(t *testing.T) {
			assert.Panics(t, func() { NewConcurrencySync(0) })
		})
	})
}
