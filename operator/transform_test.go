package operator

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	t.Run("When each item is incremented", func(t *testing.T) {
		actual := Map[int, int](func(item int, index int) (int, error) {
			return item + 1, nil
		})(observe.Of(1, 2, 3, 4, 5)).ToResult()

		t.Run("Then every item is transformed in order", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(2, 3, 4, 5, 6), actual)
		})
	})

	t.Run("When the mapper uses the index", func(t *testing.T) {
		actual := Map[string, string](func(item string, index int) (string, error) {
			return strconv.Itoa(index) + item, nil
		})(observe.Of("a", "b", "c")).ToResult()

		t.Run("Then the index counts the items of the activation", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications("0a", "1b", "2c"), actual)
		})
	})

	t.Run("When the mapper returns an error", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		actual := Map[int, int](func(item int, index int) (int, error) {
			calls++
			if item == 2 {
				return 0, boom
			}
			return item, nil
		})(observe.Of(1, 2, 3)).ToResult()

		t.Run("Then the output errors and the remaining items are not mapped", func(t *testing.T) {
			require.Len(t, actual, 2)
			assert.Equal(t, 1, actual[0].Value())
			assert.ErrorIs(t, actual[1].Err(), boom)
			assert.Equal(t, 2, calls)
		})
	})

	t.Run("When the mapper panics", func(t *testing.T) {
		actual := Map[int, int](func(item int, index int) (int, error) {
			panic("bad mapper")
		})(observe.Of(1)).ToResult()

		t.Run("Then the panic becomes an error", func(t *testing.T) {
			require.Len(t, actual, 1)
			assert.ErrorIs(t, actual[0].Err(), observe.ErrCallbackPanic)
		})
	})
}

func TestFilter(t *testing.T) {
	t.Run("When items below two are filtered out", func(t *testing.T) {
		actual := Filter[int](func(item int) bool {
			return item >= 2
		})(observe.Of(1, 2, 3, 4, 5)).ToResult()

		t.Run("Then only the matching items are emitted", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(2, 3, 4, 5), actual)
		})
	})

	t.Run("When the predicate panics", func(t *testing.T) {
		actual := Filter[int](func(item int) bool {
			panic("bad predicate")
		})(observe.Of(1, 2)).ToResult()

		t.Run("Then the panic becomes an error", func(t *testing.T) {
			require.Len(t, actual, 1)
			assert.ErrorIs(t, actual[0].Err(), observe.ErrCallbackPanic)
		})
	})
}

func TestDistinctUntilChanged(t *testing.T) {
	t.Run("When consecutive duplicates are emitted", func(t *testing.T) {
		actual := DistinctUntilChanged[int]()(observe.Of(1, 1, 2, 2, 3, 1)).ToResult()

		t.Run("Then only changes are emitted", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(1, 2, 3, 1), actual)
		})
	})

	t.Run("When a custom comparison is used", func(t *testing.T) {
		actual := DistinctUntilChangedFunc[string](func(previous, current string) bool {
			return len(previous) == len(current)
		})(observe.Of("a", "b", "cc", "dd", "e")).ToResult()

		t.Run("Then items equal by the comparison are suppressed", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications("a", "cc", "e"), actual)
		})
	})
}

func TestScan(t *testing.T) {
	t.Run("When items are summed", func(t *testing.T) {
		actual := Scan[int, int](func(acc int, item int) (int, error) {
			return acc + item, nil
		}, 0)(observe.Of(1, 2, 3)).ToResult()

		t.Run("Then every intermediate total is emitted", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(1, 3, 6), actual)
		})
	})

	t.Run("When the accumulator errors", func(t *testing.T) {
		boom := errors.New("boom")
		actual := Scan[int, string](func(acc string, item int) (string, error) {
			return "", boom
		}, "")(observe.Of(1)).ToResult()

		t.Run("Then the error terminates the output", func(t *testing.T) {
			require.Len(t, actual, 1)
			assert.ErrorIs(t, actual[0].Err(), boom)
		})
	})
}

func TestTake(t *testing.T) {
	t.Run("When two of five items are taken", func(t *testing.T) {
		actual := Take[int](2)(observe.Of(1, 2, 3, 4, 5)).ToResult()

		t.Run("Then the output completes after the second item", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(1, 2), actual)
		})
	})

	t.Run("When no items are taken", func(t *testing.T) {
		subscribed := false
		source := observe.New[int](func(subscriber *observe.Subscriber[int]) observe.Teardown {
			subscribed = true
			return nil
		})

		actual := Take[int](0)(source).ToResult()

		t.Run("Then the output completes without subscribing to the source", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications[int](), actual)
			assert.False(t, subscribed)
		})
	})

	t.Run("When taking from a subject", func(t *testing.T) {
		subject := observe.NewSubject[int]()
		recorder := testutils.NewRecorder[int]()
		Take[int](1)(subject.Observable).SubscribeWith(recorder)

		subject.Next(7)

		t.Run("Then the subject is released once enough items were taken", func(t *testing.T) {
			assert.Equal(t, []int{7}, recorder.Values())
			assert.True(t, recorder.Completed())
			assert.Equal(t, 0, subject.Observers())
		})
	})
}

func TestFlatten(t *testing.T) {
	t.Run("When batches are flattened", func(t *testing.T) {
		actual := Flatten[int]()(observe.Of([]int{1, 2}, []int{}, []int{3})).ToResult()

		t.Run("Then the items are emitted individually", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(1, 2, 3), actual)
		})
	})
}

func TestSort(t *testing.T) {
	t.Run("When a sequence is sorted", func(t *testing.T) {
		actual := Sort[int](func(left, right int) bool {
			return left < right
		})(observe.Of(5, 3, 4, 1, 2)).ToResult()

		t.Run("Then the items are emitted in order once the source completes", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(1, 2, 3, 4, 5), actual)
		})
	})

	t.Run("When items compare equal", func(t *testing.T) {
		actual := Sort[string](func(left, right string) bool {
			return len(left) < len(right)
		})(observe.Of("bb", "a", "cc", "d")).ToResult()

		t.Run("Then their arrival order is kept", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications("a", "d", "bb", "cc"), actual)
		})
	})

	t.Run("When the source errors", func(t *testing.T) {
		boom := errors.New("boom")
		actual := Sort[int](func(left, right int) bool {
			return left < right
		})(observe.Concat(observe.Of(2, 1), observe.Throw[int](boom))).ToResult()

		t.Run("Then only the error is emitted", func(t *testing.T) {
			require.Len(t, actual, 1)
			assert.ErrorIs(t, actual[0].Err(), boom)
		})
	})
}

func TestPipe(t *testing.T) {
	t.Run("When operators of different types are piped", func(t *testing.T) {
		actual := Pipe3(
			observe.Range(1, 6),
			Filter[int](func(item int) bool { return item%2 == 0 }),
			Map[int, string](func(item int, _ int) (string, error) { return strconv.Itoa(item), nil }),
			Map[string, string](func(item string, _ int) (string, error) { return "#" + item, nil }),
		).ToResult()

		t.Run("Then they are applied left to right", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications("#2", "#4", "#6"), actual)
		})
	})

	t.Run("When operators are chained", func(t *testing.T) {
		double := Map[int, int](func(item int, _ int) (int, error) { return item * 2, nil })
		addOne := Map[int, int](func(item int, _ int) (int, error) { return item + 1, nil })

		actual := Chain(double, addOne)(observe.Of(1, 2)).ToResult()

		t.Run("Then the chain behaves as a single operator", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(3, 5), actual)
		})
	})

	t.Run("When nothing is chained", func(t *testing.T) {
		actual := Chain[int]()(observe.Of(1, 2)).ToResult()

		t.Run("Then items pass through unchanged", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications(1, 2), actual)
		})
	})
}
