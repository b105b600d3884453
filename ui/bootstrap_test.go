package ui

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	storage, kv := newTestStorage()
	require.NoError(t, kv.Set(ctx, KeyTheme, ThemeDark))

	page := NewPage("index.html")
	require.NoError(t, page.Add("", "toggle", ThemeToggleClass))
	require.NoError(t, page.Add("", "deleteModal", ModalOverlayClass))
	require.NoError(t, page.Add("deleteModal", "deleteModalClose", ModalCloseClass))

	theme := NewTheme(storage, page, log.NewNopLogger())
	modals := NewModals(page)
	Bootstrap(ctx, page, theme, modals, log.NewNopLogger())

	assert.Equal(t, ThemeDark, page.Attr(ThemeAttr))
	assert.Equal(t, "☀️", page.Text("toggle"))

	require.NoError(t, page.Click("toggle"))
	assert.Equal(t, ThemeLight, page.Attr(ThemeAttr))
	assert.Equal(t, "🌙", page.Text("toggle"))
	assert.Equal(t, ThemeLight, theme.Get(ctx))

	modals.Show("deleteModal")
	require.NoError(t, page.Click("deleteModalClose"))
	assert.False(t, modals.IsOpen("deleteModal"))
}

func TestBootstrap_NavigateLoadsFreshPage(t *testing.T) {
	ctx := context.Background()
	storage, kv := newTestStorage()
	require.NoError(t, kv.Set(ctx, KeyTheme, ThemeDark))

	page := NewDashboardPage(DashboardPage)
	theme := NewTheme(storage, page, log.NewNopLogger())
	modals := NewModals(page)
	Bootstrap(ctx, page, theme, modals, log.NewNopLogger())

	page.SetText(UserNameID, "Alice Smith")
	page.SetText(UserAvatarID, "AS")
	page.SetText(UserRoleID, "Administrator")
	modals.Show(ConfirmModalID)
	page.SetAttr(ThemeAttr, ThemeLight)

	page.Navigate("login.html")

	assert.Equal(t, "login.html", page.Location())
	assert.Empty(t, page.Text(UserNameID))
	assert.Empty(t, page.Text(UserAvatarID))
	assert.Empty(t, page.Text(UserRoleID))
	assert.False(t, modals.IsOpen(ConfirmModalID))
	assert.Equal(t, ThemeDark, page.Attr(ThemeAttr))

	require.NoError(t, page.Click(ThemeToggleID))
	assert.Equal(t, ThemeLight, theme.Get(ctx))
}
