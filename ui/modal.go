package ui

import "myclient/helpers"

// Modal classes.
const (
	ModalOverlayClass = "modal-overlay"
	ModalCloseClass   = "modal-close"
)

// Modals shows and hides dialog elements by id through their display style.
type Modals struct {
	page *Page
}

// NewModals creates Modals for page. Panics on nil page.
func NewModals(page *Page) *Modals {
	return &Modals{page: helpers.NilPanic(page, "ui.modal.go: page is required")}
}

// Show displays the element id. Missing ids are ignored; the result reports whether id exists.
func (m *Modals) Show(id string) bool {
	return m.page.SetStyle(id, "display", "flex")
}

// Hide conceals the element id. Missing ids are ignored; the result reports whether id exists.
func (m *Modals) Hide(id string) bool {
	return m.page.SetStyle(id, "display", "none")
}

// HideAll conceals every overlay on the page.
func (m *Modals) HideAll() {
	for _, id := range m.page.ByClass(ModalOverlayClass) {
		m.Hide(id)
	}
}

// IsOpen reports whether id is currently shown.
func (m *Modals) IsOpen(id string) bool {
	return m.page.Style(id, "display") == "flex"
}

// Wire makes a click on an overlay close it, and a click on a close button close its overlay.
func (m *Modals) Wire() {
	for _, id := range m.page.ByClass(ModalOverlayClass) {
		overlay := id
		m.page.OnClick(overlay, func() { m.Hide(overlay) })
	}
	for _, id := range m.page.ByClass(ModalCloseClass) {
		overlay, ok := m.page.Closest(id, ModalOverlayClass)
		if !ok {
			continue
		}
		m.page.OnClick(id, func() { m.Hide(overlay) })
	}
}
