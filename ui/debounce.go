package ui

import (
	"sync"
	"time"
)

// Debounce returns a function that delays calling fn until wait has passed since its last call; only the last
// argument is delivered. cancel drops a pending call.
func Debounce[T any](fn func(T), wait time.Duration) (call func(T), cancel func()) {
	var mu sync.Mutex
	var timer *time.Timer

	call = func(v T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() { fn(v) })
	}
	cancel = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	return call, cancel
}
