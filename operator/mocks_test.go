package operator

import (
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
