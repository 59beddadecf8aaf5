package utils

import (
	"context"
	"sync"
	"time"
)

// WaitFor waits for the WaitGroup to be done or a timeout elapses. It reports whether the group finished.
func WaitFor(wg *sync.WaitGroup, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return true
	case <-ctx.Done():
		return false
	}
}
