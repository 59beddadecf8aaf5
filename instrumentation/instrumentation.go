// Package instrumentation holds the process wide logging and metrics hooks used by observables.
// Both default to no-op implementations; install real ones with SetLogger and SetMeasurer.
package instrumentation

import "sync"

var (
	mu       sync.RWMutex
	measurer Measurer
	logger   Logger
)

func init() {
	SetMeasurer(&NilMeasurer{})
	SetLogger(&NilLogger{})
}

func SetMeasurer(provider Measurer) {
	if provider == nil {
		panic("Metrics provider must be specified")
	}

	mu.Lock()
	defer mu.Unlock()
	measurer = provider
}

func SetLogger(provider Logger) {
	if provider == nil {
		panic("Logging provider must be specified")
	}

	mu.Lock()
	defer mu.Unlock()
	logger = provider
}

func Metrics() Measurer {
	mu.RLock()
	defer mu.RUnlock()
	return measurer
}

func Logging() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
