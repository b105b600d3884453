package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDashboardPage(t *testing.T) {
	p := NewDashboardPage(DashboardPage)

	assert.Equal(t, DashboardPage, p.Location())
	assert.Equal(t, []string{ThemeToggleID}, p.ByClass(ThemeToggleClass))
	assert.Equal(t, []string{UserNameID}, p.ByClass(UserNameClass))
	assert.Equal(t, []string{ConfirmModalID}, p.ByClass(ModalOverlayClass))
	assert.Equal(t, "none", p.Style(ConfirmModalID, "display"))

	overlay, ok := p.Closest(ConfirmCloseID, ModalOverlayClass)
	assert.True(t, ok)
	assert.Equal(t, ConfirmModalID, overlay)
}
