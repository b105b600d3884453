// Package ui holds the presentation side of the client: an in-memory page model and the chrome that
// renders into it (theme, toasts, modals, user info). The console server serves page snapshots as JSON.
package ui

import (
	"fmt"
	"slices"
	"sync"

	"myclient/interfaces"
)

// BodyID is the id of the implicit root element.
const BodyID = "body"

// element is one node of the page tree.
type element struct {
	id       string
	classes  []string
	text     string
	style    map[string]string
	parent   *element
	children []*element
	onClick  []func()
}

// Page is a mutex-guarded element tree standing in for the browser document. Elements are addressed by id;
// the root is BodyID and carries the page attributes (data-theme).
//
// Page implements interfaces.Navigator: Navigate records the new location and runs the OnNavigate hooks,
// which reset whatever a fresh document would not carry over.
type Page struct {
	mu         sync.Mutex
	body       *element
	byID       map[string]*element
	attrs      map[string]string
	location   string
	onNavigate []func(location string)
}

var _ interfaces.Navigator = (*Page)(nil)

// NewPage creates an empty page at location.
func NewPage(location string) *Page {
	body := &element{id: BodyID, style: map[string]string{}}
	return &Page{
		body:     body,
		byID:     map[string]*element{BodyID: body},
		attrs:    map[string]string{},
		location: location,
	}
}

// Add appends a new element with id and classes under parentID ("" means BodyID).
func (p *Page) Add(parentID, id string, classes ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if parentID == "" {
		parentID = BodyID
	}
	parent, ok := p.byID[parentID]
	if !ok {
		return fmt.Errorf("parent element %q not found", parentID)
	}
	if id == "" {
		return fmt.Errorf("element id is required")
	}
	if _, exists := p.byID[id]; exists {
		return fmt.Errorf("element %q already exists", id)
	}

	el := &element{id: id, classes: slices.Clone(classes), style: map[string]string{}, parent: parent}
	parent.children = append(parent.children, el)
	p.byID[id] = el
	return nil
}

// Remove detaches id and its subtree. Removing an absent element is a no-op.
func (p *Page) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, ok := p.byID[id]
	if !ok || el == p.body {
		return
	}
	el.parent.children = slices.DeleteFunc(el.parent.children, func(c *element) bool { return c == el })
	p.forget(el)
}

func (p *Page) forget(el *element) {
	delete(p.byID, el.id)
	for _, c := range el.children {
		p.forget(c)
	}
}

// Exists reports whether id is on the page.
func (p *Page) Exists(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byID[id]
	return ok
}

// SetText sets the text content of id. Returns false when id is absent.
func (p *Page) SetText(id, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.byID[id]
	if ok {
		el.text = text
	}
	return ok
}

// Text returns the text content of id.
func (p *Page) Text(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.byID[id]; ok {
		return el.text
	}
	return ""
}

// SetStyle sets one inline style property of id. Returns false when id is absent.
func (p *Page) SetStyle(id, prop, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.byID[id]
	if ok {
		el.style[prop] = value
	}
	return ok
}

// Style returns one inline style property of id.
func (p *Page) Style(id, prop string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.byID[id]; ok {
		return el.style[prop]
	}
	return ""
}

// SetAttr sets a page attribute.
func (p *Page) SetAttr(name, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attrs[name] = value
}

// Attr returns a page attribute.
func (p *Page) Attr(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attrs[name]
}

// ByClass returns the ids of all elements carrying class, in document order.
func (p *Page) ByClass(class string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ids []string
	p.walk(p.body, func(el *element) {
		if slices.Contains(el.classes, class) {
			ids = append(ids, el.id)
		}
	})
	return ids
}

// FirstByClass returns the first element carrying class in document order.
func (p *Page) FirstByClass(class string) (string, bool) {
	ids := p.ByClass(class)
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Children returns the ids of the direct children of id.
func (p *Page) Children(id string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.byID[id]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(el.children))
	for _, c := range el.children {
		ids = append(ids, c.id)
	}
	return ids
}

// Closest returns id itself or its nearest ancestor carrying class.
func (p *Page) Closest(id, class string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for el := p.byID[id]; el != nil; el = el.parent {
		if slices.Contains(el.classes, class) {
			return el.id, true
		}
	}
	return "", false
}

// OnClick registers a click handler on id. Returns false when id is absent.
func (p *Page) OnClick(id string, handler func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.byID[id]
	if ok {
		el.onClick = append(el.onClick, handler)
	}
	return ok
}

// Click runs the click handlers of id, outside the page lock. Clicks do not bubble.
func (p *Page) Click(id string) error {
	p.mu.Lock()
	el, ok := p.byID[id]
	var handlers []func()
	if ok {
		handlers = slices.Clone(el.onClick)
	}
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("element %q not found", id)
	}
	for _, h := range handlers {
		h()
	}
	return nil
}

// OnNavigate registers a hook run after every Navigate, outside the page lock.
func (p *Page) OnNavigate(hook func(location string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onNavigate = append(p.onNavigate, hook)
}

// Navigate replaces the page location, then runs the OnNavigate hooks in registration order.
func (p *Page) Navigate(location string) {
	p.mu.Lock()
	p.location = location
	hooks := slices.Clone(p.onNavigate)
	p.mu.Unlock()

	for _, hook := range hooks {
		hook(location)
	}
}

// Location returns the current page location.
func (p *Page) Location() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.location
}

func (p *Page) walk(el *element, fn func(*element)) {
	fn(el)
	for _, c := range el.children {
		p.walk(c, fn)
	}
}

// ElementSnapshot is the serializable view of one element.
type ElementSnapshot struct {
	ID       string            `json:"id"`
	Classes  []string          `json:"classes,omitempty"`
	Text     string            `json:"text,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Children []ElementSnapshot `json:"children,omitempty"`
}

// Snapshot is the serializable view of the whole page.
type Snapshot struct {
	Location string            `json:"location"`
	Attrs    map[string]string `json:"attrs"`
	Body     ElementSnapshot   `json:"body"`
}

// Snapshot returns a deep copy of the page.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	attrs := make(map[string]string, len(p.attrs))
	for k, v := range p.attrs {
		attrs[k] = v
	}
	return Snapshot{Location: p.location, Attrs: attrs, Body: snapshotOf(p.body)}
}

func snapshotOf(el *element) ElementSnapshot {
	s := ElementSnapshot{ID: el.id, Classes: slices.Clone(el.classes), Text: el.text}
	if len(el.style) > 0 {
		s.Style = make(map[string]string, len(el.style))
		for k, v := range el.style {
			s.Style[k] = v
		}
	}
	for _, c := range el.children {
		s.Children = append(s.Children, snapshotOf(c))
	}
	return s
}
