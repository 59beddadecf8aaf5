package testutils

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/ducka/go-kayak-rx/observe"
)

func GenerateIntSequence(start, sequenceSize int) []int {
	sequence := make([]int, 0, sequenceSize)
	for i := start; i < sequenceSize+start; i++ {
		sequence = append(sequence, i)
	}
	return sequence
}

// GenerateRandomSequence returns between 0 and maxSize random integers.
func GenerateRandomSequence(maxSize int) []int {
	size := gofakeit.IntRange(0, maxSize)
	sequence := make([]int, size)
	for i := range sequence {
		sequence[i] = gofakeit.Int()
	}
	return sequence
}

// ConvertToNotifications converts values into next notifications, followed by a complete notification.
func ConvertToNotifications[T any](sequence ...T) []observe.Notification[T] {
	notifications := make([]observe.Notification[T], 0, len(sequence)+1)
	for _, item := range sequence {
		notifications = append(notifications, observe.Next(item))
	}
	return append(notifications, observe.Complete[T]())
}

func ConvertToValues[T any](notifications ...observe.Notification[T]) []T {
	values := make([]T, 0, len(notifications))
	for _, n := range notifications {
		if n.HasValue() {
			values = append(values, n.Value())
		}
	}
	return values
}
