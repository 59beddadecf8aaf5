package observe_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/ducka/go-kayak-rx/observe"
	"github.com/ducka/go-kayak-rx/store"
	"github.com/ducka/go-kayak-rx/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	t.Run("When emitting to several observers", func(t *testing.T) {
		subject := observe.NewSubject[int]()
		first, second := testutils.NewRecorder[int](), testutils.NewRecorder[int]()

		subject.SubscribeWith(first)
		subject.Next(1)
		subject.SubscribeWith(second)
		subject.Next(2)

		t.Run("Then each observer only receives values emitted after it subscribed", func(t *testing.T) {
			assert.Equal(t, []int{1, 2}, first.Values())
			assert.Equal(t, []int{2}, second.Values())
		})
	})

	t.Run("When an observer subscribes another observer during delivery", func(t *testing.T) {
		subject := observe.NewSubject[int]()
		late := testutils.NewRecorder[int]()
		added := false

		subject.Subscribe(func(v int) {
			if !added {
				added = true
				subject.SubscribeWith(late)
			}
		})
		subject.Next(1)
		subject.Next(2)

		t.Run("Then the new observer does not receive the value being delivered", func(t *testing.T) {
			assert.Equal(t, []int{2}, late.Values())
		})
	})

	t.Run("When an observer unsubscribes another observer during delivery", func(t *testing.T) {
		subject := observe.NewSubject[int]()
		victim := testutils.NewRecorder[int]()
		var victimSub *observe.Subscription

		subject.Subscribe(func(v int) {
			if v == 2 {
				_ = victimSub.Unsubscribe()
			}
		})
		victimSub = subject.SubscribeWith(victim)
		subject.Next(1)
		subject.Next(2)
		subject.Next(3)

		t.Run("Then the cancelled observer is skipped from that pass on", func(t *testing.T) {
			assert.Equal(t, []int{1}, victim.Values())
			assert.Equal(t, 1, subject.Observers())
		})
	})

	t.Run("When the subject completes", func(t *testing.T) {
		subject := observe.NewSubject[int]()
		recorder := testutils.NewRecorder[int]()
		subject.SubscribeWith(recorder)

		subject.Complete()
		subject.Next(1)
		subject.Error(errors.New("late"))
		subject.Complete()

		t.Run("Then observers complete once and later events are ignored", func(t *testing.T) {
			assert.Equal(t, testutils.ConvertToNotifications[int](), recorder.Notifications())
			assert.Equal(t, 0, subject.Observers())
			assert.True(t, subject.Closed())
			assert.NoError(t, subject.Err())
		})

		t.Run("Then late observers are completed immediately", func(t *testing.T) {
			late := testutils.NewRecorder[int]()
			sub := subject.SubscribeWith(late)
			assert.Equal(t, testutils.ConvertToNotifications[int](), late.Notifications())
			assert.True(t, sub.Closed())
		})
	})

	t.Run("When the subject errors", func(t *testing.T) {
		boom := errors.New("boom")
		subject := observe.NewSubject[int]()
		recorder := testutils.NewRecorder[int]()
		subject.SubscribeWith(recorder)

		subject.Error(boom)

		t.Run("Then observers and late observers receive the error", func(t *testing.T) {
			assert.ErrorIs(t, recorder.Err(), boom)
			assert.ErrorIs(t, subject.Err(), boom)

			late := testutils.NewRecorder[int]()
			subject.SubscribeWith(late)
			assert.ErrorIs(t, late.Err(), boom)
		})
	})

	t.Run("When unsubscribing from a subject", func(t *testing.T) {
		subject := observe.NewSubject[int]()
		sub := subject.Subscribe(func(int) {})
		require.Equal(t, 1, subject.Observers())

		require.NoError(t, sub.Unsubscribe())

		t.Run("Then the registration is removed", func(t *testing.T) {
			assert.Equal(t, 0, subject.Observers())
		})
	})

	t.Run("When observers subscribe concurrently", func(t *testing.T) {
		const count = 50
		subject := observe.NewSubject[int]()
		checkpoint := testutils.NewConcurrencySync(count)

		wg := sync.WaitGroup{}
		wg.Add(count)
		for i := 0; i < count; i++ {
			go func() {
				defer wg.Done()
				checkpoint.Checkpoint()
				subject.Subscribe(func(int) {})
			}()
		}
		wg.Wait()

		t.Run("Then every registration is kept", func(t *testing.T) {
			assert.Equal(t, count, subject.Observers())
		})
	})
}

func TestBehaviorSubject(t *testing.T) {
	t.Run("When subscribing to a behavior subject", func(t *testing.T) {
		subject := observe.NewBehaviorSubject("initial")
		first := testutils.NewRecorder[string]()
		subject.SubscribeWith(first)

		subject.Next("updated")
		second := testutils.NewRecorder[string]()
		subject.SubscribeWith(second)

		t.Run("Then each observer starts with the current value", func(t *testing.T) {
			assert.Equal(t, []string{"initial", "updated"}, first.Values())
			assert.Equal(t, []string{"updated"}, second.Values())
			assert.Equal(t, "updated", subject.Value())
		})

		t.Run("And the subject has completed", func(t *testing.T) {
			subject.Complete()
			late := testutils.NewRecorder[string]()
			subject.SubscribeWith(late)

			t.Run("Then late observers only receive the completion", func(t *testing.T) {
				assert.Equal(t, testutils.ConvertToNotifications[string](), late.Notifications())
			})
		})
	})
}

func TestReplaySubject(t *testing.T) {
	t.Run("When subscribing to a replay subject", func(t *testing.T) {
		subject := observe.NewReplaySubject[int](2)
		subject.Next(1)
		subject.Next(2)
		subject.Next(3)

		recorder := testutils.NewRecorder[int]()
		subject.SubscribeWith(recorder)
		subject.Next(4)

		t.Run("Then the buffered values are replayed before live values", func(t *testing.T) {
			assert.Equal(t, []int{2, 3, 4}, recorder.Values())
		})

		t.Run("And the subject has completed", func(t *testing.T) {
			subject.Complete()
			late := testutils.NewRecorder[int]()
			subject.SubscribeWith(late)

			t.Run("Then late observers receive the buffer and the completion", func(t *testing.T) {
				assert.Equal(t, testutils.ConvertToNotifications(3, 4), late.Notifications())
			})
		})
	})

	t.Run("When the replay buffer cannot be loaded", func(t *testing.T) {
		loadErr := errors.New("load failed")
		buffer := &mockBuffer[int]{}
		buffer.On("Load", mock.Anything).Return(nil, loadErr)

		subject := observe.NewReplaySubjectWithBuffer[int](buffer)
		recorder := testutils.NewRecorder[int]()
		subject.SubscribeWith(recorder)

		t.Run("Then the new observer errors", func(t *testing.T) {
			assert.ErrorIs(t, recorder.Err(), loadErr)
			assert.Equal(t, 0, subject.Observers())
		})
	})

	t.Run("When a value cannot be appended to the replay buffer", func(t *testing.T) {
		buffer := &mockBuffer[int]{}
		buffer.On("Load", mock.Anything).Return([]int{}, nil)
		buffer.On("Append", mock.Anything, 1).Return(errors.New("append failed"))

		logger := newMockLogger()
		logger.On("Warn", "ReplaySubject", "failed to append to replay buffer: append failed").Once()

		var _ store.Buffer[int] = buffer
		subject := observe.NewReplaySubjectWithBuffer[int](buffer, observe.WithLogger(logger))
		recorder := testutils.NewRecorder[int]()
		subject.SubscribeWith(recorder)
		subject.Next(1)

		t.Run("Then the value is still delivered and the failure is logged", func(t *testing.T) {
			assert.Equal(t, []int{1}, recorder.Values())
			logger.AssertExpectations(t)
			buffer.AssertExpectations(t)
		})
	})
}

func TestPublish(t *testing.T) {
	t.Run("When publishing a source", func(t *testing.T) {
		activations := 0
		source := observe.New(func(subscriber *observe.Subscriber[int]) observe.Teardown {
			activations++
			subscriber.Next(1)
			subscriber.Next(2)
			subscriber.Complete()
			return nil
		})
		published := observe.Publish(source)
		first, second := testutils.NewRecorder[int](), testutils.NewRecorder[int]()

		published.SubscribeWith(first)
		published.SubscribeWith(second)

		t.Run("Then the source is not subscribed before connecting", func(t *testing.T) {
			assert.Equal(t, 0, activations)
		})

		published.Connect()
		published.Connect()

		t.Run("Then every observer shares a single activation", func(t *testing.T) {
			assert.Equal(t, 1, activations)
			assert.Equal(t, testutils.ConvertToNotifications(1, 2), first.Notifications())
			assert.Equal(t, testutils.ConvertToNotifications(1, 2), second.Notifications())
		})
	})

	t.Run("When disconnecting a published source", func(t *testing.T) {
		source := observe.NewSubject[int]()
		published := observe.Publish(source.Observable)
		recorder := testutils.NewRecorder[int]()
		published.SubscribeWith(recorder)

		connection := published.Connect()
		source.Next(1)
		require.NoError(t, connection.Unsubscribe())
		source.Next(2)

		t.Run("Then the source is released without terminating the observers", func(t *testing.T) {
			assert.Equal(t, 0, source.Observers())
			assert.Equal(t, []int{1}, recorder.Values())
			assert.Equal(t, 0, recorder.Terminations())
		})
	})
}

func TestFork(t *testing.T) {
	t.Run("When forking a source", func(t *testing.T) {
		activations := 0
		source := observe.Defer(func() *observe.Observable[int] {
			activations++
			return observe.Of(1, 2, 3)
		})
		forks := observe.Fork(source, 2)
		first, second := testutils.NewRecorder[int](), testutils.NewRecorder[int]()

		forks[0].SubscribeWith(first)

		t.Run("Then the source waits for every fork to be subscribed", func(t *testing.T) {
			assert.Equal(t, 0, activations)
		})

		forks[1].SubscribeWith(second)

		t.Run("Then every fork observes the same single activation", func(t *testing.T) {
			assert.Equal(t, 1, activations)
			assert.Equal(t, testutils.ConvertToNotifications(1, 2, 3), first.Notifications())
			assert.Equal(t, testutils.ConvertToNotifications(1, 2, 3), second.Notifications())
		})
	})
}
