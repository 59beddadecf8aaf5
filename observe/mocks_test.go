package observe_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock
}

func newMockLogger() *mockLogger {
	m := &mockLogger{}
	m.On("Debug", mock.Anything, mock.Anything).Maybe()
	return m
}

func (m *mockLogger) Debug(activity string, message string) { m.Called(activity, message) }
func (m *mockLogger) Error(activity string, message string) { m.Called(activity, message) }
func (m *mockLogger) Fatal(activity string, message string) { m.Called(activity, message) }
func (m *mockLogger) Info(activity string, message string)  { m.Called(activity, message) }
func (m *mockLogger) Panic(activity string, message string) { m.Called(activity, message) }
func (m *mockLogger) Warn(activity string, message string)  { m.Called(activity, message) }

type mockBuffer[T any] struct {
	mock.Mock
}

func (m *mockBuffer[T]) Append(ctx context.Context, value T) error {
	return m.Called(ctx, value).Error(0)
}

func (m *mockBuffer[T]) Load(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	values, _ := args.Get(0).([]T)
	return values, args.Error(1)
}

func (m *mockBuffer[T]) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
