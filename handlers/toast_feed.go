package handlers

import (
	"sync"

	"myclient/ui"
)

const toastFeedSize = 50

// toastFeed keeps the last size toast events, oldest first.
type toastFeed struct {
	mu     sync.Mutex
	size   int
	events []ui.ToastEvent
}

func newToastFeed(size int) *toastFeed {
	return &toastFeed{size: size}
}

func (f *toastFeed) add(event ui.ToastEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)
	if over := len(f.events) - f.size; over > 0 {
		f.events = append([]ui.ToastEvent(nil), f.events[over:]...)
	}
}

func (f *toastFeed) list() []ui.ToastEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ui.ToastEvent{}, f.events...)
}
