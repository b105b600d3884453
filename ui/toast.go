package ui

import (
	"sync"
	"time"

	"myclient/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// ToastKind is the visual kind of a toast.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// ToastPhase is the lifecycle step reported to subscribers.
type ToastPhase string

const (
	ToastAdded   ToastPhase = "added"
	ToastFading  ToastPhase = "fading"
	ToastRemoved ToastPhase = "removed"
)

const (
	// DefaultToastDuration is how long a toast stays before fading.
	DefaultToastDuration = 3000 * time.Millisecond
	// ToastFadeDuration is how long the fade-out lasts before the toast is removed.
	ToastFadeDuration = 300 * time.Millisecond
	// ToastContainerID is the id of the lazily created container.
	ToastContainerID = "toast-container"
)

// Icon and colour of a toast kind. Unknown kinds render as info.
func (k ToastKind) Icon() string {
	switch k {
	case ToastSuccess:
		return "check_circle"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

func (k ToastKind) Color() string {
	switch k {
	case ToastSuccess:
		return "#10B981"
	case ToastError:
		return "#EF4444"
	default:
		return "#3B82F6"
	}
}

// ToastEvent is delivered to subscribers at each lifecycle step.
type ToastEvent struct {
	ID      string     `json:"id"`
	Kind    ToastKind  `json:"kind"`
	Message string     `json:"message"`
	Phase   ToastPhase `json:"phase"`
}

// Toaster shows transient notifications on a page. Toasts are independent: no dedupe, no cap; each one fades
// after its duration and is removed ToastFadeDuration later.
type Toaster struct {
	page            *Page
	defaultDuration time.Duration
	fadeDuration    time.Duration
	logger          log.Logger

	mu          sync.Mutex
	timers      map[string]*time.Timer
	subscribers []func(ToastEvent)
	closed      bool
}

// NewToaster creates a Toaster. A non-positive duration means DefaultToastDuration. Panics on nil deps.
func NewToaster(page *Page, duration time.Duration, logger log.Logger) *Toaster {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toaster{
		page:            helpers.NilPanic(page, "ui.toast.go: page is required"),
		defaultDuration: duration,
		fadeDuration:    ToastFadeDuration,
		logger:          log.WithPrefix(helpers.NilPanic(logger, "ui.toast.go: logger is required"), "component", "Toaster"),
		timers:          map[string]*time.Timer{},
	}
}

// Subscribe registers fn for every toast event. fn runs outside the toaster lock.
func (t *Toaster) Subscribe(fn func(ToastEvent)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// Show adds a toast and returns its id. A non-positive duration means the toaster default.
func (t *Toaster) Show(message string, kind ToastKind, duration time.Duration) string {
	if duration <= 0 {
		duration = t.defaultDuration
	}
	id := uuid.NewString()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ""
	}
	t.ensureContainer()
	if err := t.page.Add(ToastContainerID, id, "toast", "toast-"+string(kind)); err != nil {
		t.mu.Unlock()
		level.Error(t.logger).Log("msg", "add toast", "err", err)
		return ""
	}
	_ = t.page.Add(id, id+"-icon", "material-icons-round")
	t.page.SetText(id+"-icon", kind.Icon())
	_ = t.page.Add(id, id+"-message", "toast-message")
	t.page.SetText(id+"-message", message)
	t.page.SetStyle(id, "background", kind.Color())

	subscribers := t.subscribersLocked()
	t.mu.Unlock()

	event := ToastEvent{ID: id, Kind: kind, Message: message, Phase: ToastAdded}
	notify(subscribers, event)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.timers[id] = time.AfterFunc(duration, func() { t.fade(event) })
	}
	return id
}

func (t *Toaster) Success(message string) string { return t.Show(message, ToastSuccess, 0) }
func (t *Toaster) Error(message string) string   { return t.Show(message, ToastError, 0) }
func (t *Toaster) Info(message string) string    { return t.Show(message, ToastInfo, 0) }

// Active returns the ids of the toasts currently on the page, oldest first.
func (t *Toaster) Active() []string {
	return t.page.Children(ToastContainerID)
}

// Close stops all pending timers. Toasts still on the page stay there.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}

func (t *Toaster) fade(event ToastEvent) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.page.SetStyle(event.ID, "opacity", "0")
	t.page.SetStyle(event.ID, "transform", "translateX(20px)")
	t.page.SetStyle(event.ID, "transition", "all 0.3s")
	t.timers[event.ID] = time.AfterFunc(t.fadeDuration, func() { t.remove(event) })
	subscribers := t.subscribersLocked()
	t.mu.Unlock()

	event.Phase = ToastFading
	notify(subscribers, event)
}

func (t *Toaster) remove(event ToastEvent) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.page.Remove(event.ID)
	delete(t.timers, event.ID)
	subscribers := t.subscribersLocked()
	t.mu.Unlock()

	event.Phase = ToastRemoved
	notify(subscribers, event)
}

// ensureContainer creates the toast container on first use. Caller holds t.mu.
func (t *Toaster) ensureContainer() {
	if t.page.Exists(ToastContainerID) {
		return
	}
	if err := t.page.Add(BodyID, ToastContainerID, "toast-container"); err != nil {
		level.Error(t.logger).Log("msg", "create toast container", "err", err)
		return
	}
	t.page.SetStyle(ToastContainerID, "position", "fixed")
	t.page.SetStyle(ToastContainerID, "bottom", "20px")
	t.page.SetStyle(ToastContainerID, "right", "20px")
	t.page.SetStyle(ToastContainerID, "display", "flex")
	t.page.SetStyle(ToastContainerID, "flex-direction", "column")
}

func (t *Toaster) subscribersLocked() []func(ToastEvent) {
	out := make([]func(ToastEvent), len(t.subscribers))
	copy(out, t.subscribers)
	return out
}

func notify(subscribers []func(ToastEvent), event ToastEvent) {
	for _, fn := range subscribers {
		fn(event)
	}
}
