package ui

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Bootstrap prepares a freshly loaded page: applies the stored theme, makes the theme toggle switch themes
// and wires the modal close handlers. Every later navigation loads a fresh document: user info is cleared,
// modals are closed and the stored theme is applied again.
func Bootstrap(ctx context.Context, page *Page, theme *Theme, modals *Modals, logger log.Logger) {
	theme.Init(ctx)

	hookCtx := context.WithoutCancel(ctx)
	page.OnNavigate(func(string) {
		ClearUserInfo(page)
		modals.HideAll()
		theme.Init(hookCtx)
	})

	if id, ok := page.FirstByClass(ThemeToggleClass); ok {
		page.OnClick(id, func() {
			if _, err := theme.Toggle(hookCtx); err != nil {
				level.Error(logger).Log("msg", "toggle theme", "err", err)
			}
		})
	}

	modals.Wire()
}
