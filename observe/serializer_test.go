package observe_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializer(t *testing.T) {
	t.Run("When downstream pushes back into the serializer", func(t *testing.T) {
		received := make([]int, 0)
		var sut *observe.Serializer[int]
		sut = observe.NewSerializer[int](observe.ObserverFuncs[int]{
			OnNext: func(v int) {
				received = append(received, v)
				if v == 1 {
					sut.Next(2)
					received = append(received, -1)
				}
			},
		})

		sut.Next(1)

		t.Run("Then the nested event is delivered after the current one returns", func(t *testing.T) {
			assert.Equal(t, []int{1, -1, 2}, received)
		})
	})

	t.Run("When events are enqueued before a drain", func(t *testing.T) {
		recorder := testutils.NewRecorder[int]()
		sut := observe.NewSerializer[int](recorder)

		sut.Enqueue(observe.Next(1))
		sut.Enqueue(observe.Next(2))

		t.Run("Then nothing is delivered until Drain", func(t *testing.T) {
			assert.Empty(t, recorder.Values())
			sut.Enqueue(observe.Complete[int]())
			sut.Drain()
			assert.Equal(t, testutils.ConvertToNotifications(1, 2), recorder.Notifications())
		})
	})

	t.Run("When several goroutines push at once", func(t *testing.T) {
		var inside, overlaps, count atomic.Int64
		sut := observe.NewSerializer[int](observe.ObserverFuncs[int]{
			OnNext: func(int) {
				if inside.Add(1) != 1 {
					overlaps.Add(1)
				}
				count.Add(1)
				inside.Add(-1)
			},
		})

		wg := sync.WaitGroup{}
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					sut.Next(i)
				}
			}()
		}
		wg.Wait()

		t.Run("Then every event is delivered without overlap", func(t *testing.T) {
			assert.Zero(t, overlaps.Load())
			assert.Equal(t, int64(8*500), count.Load())
		})
	})

	t.Run("When downstream panics", func(t *testing.T) {
		received := make([]int, 0)
		sut := observe.NewSerializer[int](observe.ObserverFuncs[int]{
			OnNext: func(v int) {
				if v == 1 {
					panic("boom")
				}
				received = append(received, v)
			},
		})

		require.Panics(t, func() { sut.Next(1) })
		sut.Next(2)

		t.Run("Then later events are still delivered", func(t *testing.T) {
			assert.Equal(t, []int{2}, received)
		})
	})
}
