package ui

import (
	"context"

	"myclient/helpers"
	"myclient/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// KeyTheme is the store key of the persisted theme.
const KeyTheme = "theme"

// ThemeAttr is the page attribute the theme is applied as.
const ThemeAttr = "data-theme"

// ThemeToggleClass marks the button whose text shows the theme icon.
const ThemeToggleClass = "theme-toggle"

// Theme persists the light/dark preference and applies it to the page.
type Theme struct {
	storage *service.Storage
	page    *Page
	logger  log.Logger
}

// NewTheme creates a Theme. Panics on nil deps.
func NewTheme(storage *service.Storage, page *Page, logger log.Logger) *Theme {
	return &Theme{
		storage: helpers.NilPanic(storage, "ui.theme.go: storage is required"),
		page:    helpers.NilPanic(page, "ui.theme.go: page is required"),
		logger:  log.WithPrefix(helpers.NilPanic(logger, "ui.theme.go: logger is required"), "component", "Theme"),
	}
}

// Get returns the stored theme, ThemeLight when nothing usable is stored.
func (t *Theme) Get(ctx context.Context) string {
	value, err := t.storage.Get(ctx, KeyTheme)
	if err != nil {
		level.Error(t.logger).Log("msg", "read theme", "err", err)
		return ThemeLight
	}
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return ThemeLight
}

// Set persists theme and applies it to the page.
func (t *Theme) Set(ctx context.Context, theme string) error {
	if err := t.storage.Set(ctx, KeyTheme, theme); err != nil {
		return err
	}
	t.apply(theme)
	return nil
}

// Toggle switches light to dark and anything else to light, returning the new theme.
func (t *Theme) Toggle(ctx context.Context) (string, error) {
	next := ThemeLight
	if t.Get(ctx) == ThemeLight {
		next = ThemeDark
	}
	return next, t.Set(ctx, next)
}

// Init applies the stored theme without writing it.
func (t *Theme) Init(ctx context.Context) {
	t.apply(t.Get(ctx))
}

// Icon returns the toggle icon for theme: a moon while light, a sun otherwise.
func Icon(theme string) string {
	if theme == ThemeLight {
		return "🌙"
	}
	return "☀️"
}

func (t *Theme) apply(theme string) {
	t.page.SetAttr(ThemeAttr, theme)
	if id, ok := t.page.FirstByClass(ThemeToggleClass); ok {
		t.page.SetText(id, Icon(theme))
	}
}
