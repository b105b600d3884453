package ui

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTheme(t *testing.T) (*Theme, *Page) {
	t.Helper()
	storage, _ := newTestStorage()
	page := NewPage("index.html")
	require.NoError(t, page.Add("", "toggle", ThemeToggleClass))
	return NewTheme(storage, page, log.NewNopLogger()), page
}

func TestNewTheme_Panics(t *testing.T) {
	storage, _ := newTestStorage()
	assert.PanicsWithValue(t, "ui.theme.go: storage is required", func() {
		NewTheme(nil, NewPage(""), log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "ui.theme.go: page is required", func() {
		NewTheme(storage, nil, log.NewNopLogger())
	})
}

func TestTheme_DefaultIsLight(t *testing.T) {
	theme, page := newTestTheme(t)
	ctx := context.Background()

	assert.Equal(t, ThemeLight, theme.Get(ctx))
	theme.Init(ctx)
	assert.Equal(t, ThemeLight, page.Attr(ThemeAttr))
	assert.Equal(t, "🌙", page.Text("toggle"))
}

func TestTheme_ToggleTwiceRestores(t *testing.T) {
	theme, page := newTestTheme(t)
	ctx := context.Background()

	next, err := theme.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)
	assert.Equal(t, ThemeDark, theme.Get(ctx))
	assert.Equal(t, ThemeDark, page.Attr(ThemeAttr))
	assert.Equal(t, "☀️", page.Text("toggle"))

	next, err = theme.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)
	assert.Equal(t, ThemeLight, page.Attr(ThemeAttr))
	assert.Equal(t, "🌙", page.Text("toggle"))
}

func TestTheme_PersistsRawText(t *testing.T) {
	storage, kv := newTestStorage()
	theme := NewTheme(storage, NewPage("index.html"), log.NewNopLogger())

	require.NoError(t, theme.Set(context.Background(), ThemeDark))
	assert.Equal(t, map[string]string{KeyTheme: "dark"}, kv.Snapshot())

	other := NewTheme(storage, NewPage("other.html"), log.NewNopLogger())
	assert.Equal(t, ThemeDark, other.Get(context.Background()))
}

func TestTheme_NonStringStoredValueIsLight(t *testing.T) {
	storage, kv := newTestStorage()
	require.NoError(t, kv.Set(context.Background(), KeyTheme, "42"))
	theme := NewTheme(storage, NewPage("index.html"), log.NewNopLogger())
	assert.Equal(t, ThemeLight, theme.Get(context.Background()))
}

func TestTheme_WithoutToggleButton(t *testing.T) {
	storage, _ := newTestStorage()
	page := NewPage("index.html")
	theme := NewTheme(storage, page, log.NewNopLogger())

	_, err := theme.Toggle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, page.Attr(ThemeAttr))
}
