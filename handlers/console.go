// Package handlers contains the http handlers of the myclient console.
//
// Routes are described by console.openapi.yaml; OpenAPIValidator checks each request against it before
// RegisterHandlers' wrappers bind the parameters.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"myclient/domain"
	"myclient/helpers"
	"myclient/interfaces"
	"myclient/service"
	"myclient/ui"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// ConsoleDeps are the collaborators of ConsoleServer. All are required.
type ConsoleDeps struct {
	Page      *ui.Page
	Theme     *ui.Theme
	Modals    *ui.Modals
	Toaster   *ui.Toaster
	Formatter *ui.Formatter
	Session   *service.Session
	Auth      *service.AuthAPI
	Scenarios *service.ScenariosAPI
	Devices   *service.DevicesAPI
	Tests     *service.TestAPI
	Jobs      *service.JobsAPI
	Clock     interfaces.TimeProvider
	// BackendURL is reported by the health route.
	BackendURL string
}

// ConsoleServer implements ServerInterface over a page and the backend facades. Backend failures are shown
// as error toasts and returned for service.HTTPErrorHandler to map.
type ConsoleServer struct {
	deps   ConsoleDeps
	feed   *toastFeed
	logger log.Logger
}

var _ ServerInterface = (*ConsoleServer)(nil)

// NewConsoleServer creates a ConsoleServer and subscribes it to the toaster. Panics on nil deps.
func NewConsoleServer(deps ConsoleDeps, logger log.Logger) *ConsoleServer {
	helpers.NilPanic(deps.Page, "handlers.console.go: page is required")
	helpers.NilPanic(deps.Theme, "handlers.console.go: theme is required")
	helpers.NilPanic(deps.Modals, "handlers.console.go: modals is required")
	helpers.NilPanic(deps.Toaster, "handlers.console.go: toaster is required")
	helpers.NilPanic(deps.Formatter, "handlers.console.go: formatter is required")
	helpers.NilPanic(deps.Session, "handlers.console.go: session is required")
	helpers.NilPanic(deps.Auth, "handlers.console.go: auth is required")
	helpers.NilPanic(deps.Scenarios, "handlers.console.go: scenarios is required")
	helpers.NilPanic(deps.Devices, "handlers.console.go: devices is required")
	helpers.NilPanic(deps.Tests, "handlers.console.go: tests is required")
	helpers.NilPanic(deps.Jobs, "handlers.console.go: jobs is required")
	helpers.NilPanic(deps.Clock, "handlers.console.go: clock is required")
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.console.go: logger is required"), "component", "ConsoleServer")

	feed := newToastFeed(toastFeedSize)
	deps.Toaster.Subscribe(feed.add)
	return &ConsoleServer{
		deps:   deps,
		feed:   feed,
		logger: logger,
	}
}

// HealthResponse is the body of GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}

// ThemeResponse is the body of the theme routes.
type ThemeResponse struct {
	Theme string `json:"theme"`
	Icon  string `json:"icon"`
}

// ModalResponse is the body of the modal routes.
type ModalResponse struct {
	ID   string `json:"id"`
	Open bool   `json:"open"`
}

// ToastsResponse is the body of GET /v1/toasts.
type ToastsResponse struct {
	Events []ui.ToastEvent `json:"events"`
	Active []string        `json:"active"`
}

// MeResponse is the body of GET /v1/auth/me. Claims is nil when the stored token is not a JWT.
type MeResponse struct {
	User    domain.User          `json:"user"`
	Role    string               `json:"role"`
	Claims  *service.TokenClaims `json:"claims,omitempty"`
	Expired bool                 `json:"expired"`
}

// GetHealth (GET /v1/health) reports that the console is up.
func (h *ConsoleServer) GetHealth(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, HealthResponse{Status: "ok", Backend: h.deps.BackendURL})
}

// GetPage (GET /v1/page) returns the page snapshot.
func (h *ConsoleServer) GetPage(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, h.deps.Page.Snapshot())
}

// ClickElement (POST /v1/page/click/{element_id}) dispatches a click and returns the resulting page.
func (h *ConsoleServer) ClickElement(ectx echo.Context, elementId string) error {
	if err := h.deps.Page.Click(elementId); err != nil {
		return service.NewBadParameterError(err.Error(), err)
	}
	return ectx.JSON(http.StatusOK, h.deps.Page.Snapshot())
}

func (h *ConsoleServer) GetTheme(ectx echo.Context) error {
	theme := h.deps.Theme.Get(ectx.Request().Context())
	return ectx.JSON(http.StatusOK, ThemeResponse{Theme: theme, Icon: ui.Icon(theme)})
}

// ToggleTheme (POST /v1/theme/toggle) flips and persists the theme.
func (h *ConsoleServer) ToggleTheme(ectx echo.Context) error {
	theme, err := h.deps.Theme.Toggle(ectx.Request().Context())
	if err != nil {
		return fmt.Errorf("toggleTheme failed to store theme, err: %w", err)
	}
	return ectx.JSON(http.StatusOK, ThemeResponse{Theme: theme, Icon: ui.Icon(theme)})
}

func (h *ConsoleServer) ShowModal(ectx echo.Context, modalId string) error {
	if !h.deps.Modals.Show(modalId) {
		return service.NewBadParameterError(fmt.Sprintf("modal %q not found", modalId), nil)
	}
	return ectx.JSON(http.StatusOK, ModalResponse{ID: modalId, Open: true})
}

func (h *ConsoleServer) HideModal(ectx echo.Context, modalId string) error {
	if !h.deps.Modals.Hide(modalId) {
		return service.NewBadParameterError(fmt.Sprintf("modal %q not found", modalId), nil)
	}
	return ectx.JSON(http.StatusOK, ModalResponse{ID: modalId, Open: false})
}

// GetToasts (GET /v1/toasts) returns the recent toast events and the ids still on the page.
func (h *ConsoleServer) GetToasts(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, ToastsResponse{
		Events: h.feed.list(),
		Active: h.deps.Toaster.Active(),
	})
}

// Login (POST /v1/auth/login) starts a session, renders the user info and lands on the dashboard.
func (h *ConsoleServer) Login(ectx echo.Context) error {
	var req domain.LoginRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ctx := ectx.Request().Context()
	resp, err := h.deps.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return h.fail(err)
	}
	return h.enter(ectx, resp.User)
}

// Register (POST /v1/auth/register) creates an account and behaves like Login afterwards.
func (h *ConsoleServer) Register(ectx echo.Context) error {
	var req domain.RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ctx := ectx.Request().Context()
	resp, err := h.deps.Auth.Register(ctx, req)
	if err != nil {
		return h.fail(err)
	}
	return h.enter(ectx, resp.User)
}

// Logout (POST /v1/auth/logout) ends the session. Backend failures do not keep the session alive.
func (h *ConsoleServer) Logout(ectx echo.Context) error {
	if err := h.deps.Auth.Logout(ectx.Request().Context()); err != nil {
		level.Warn(h.logger).Log("msg", "logout", "err", err)
	}
	return ectx.JSON(http.StatusOK, h.deps.Page.Snapshot())
}

// GetMe (GET /v1/auth/me) returns the stored user and the unverified claims of the stored token.
func (h *ConsoleServer) GetMe(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}

	user, _ := h.deps.Session.User(ctx)
	resp := MeResponse{User: user, Role: h.deps.Formatter.RoleLabel(user.Role)}
	claims, err := h.deps.Session.Claims(ctx)
	switch {
	case err == nil:
		resp.Claims = &claims
		resp.Expired = claims.Expired(h.deps.Clock.Now())
	case service.IsNotLoggedIn(err):
		return h.fail(err)
	default:
		level.Debug(h.logger).Log("msg", "token claims", "err", err)
	}
	return ectx.JSON(http.StatusOK, resp)
}

func (h *ConsoleServer) ListScenarios(ectx echo.Context, params ListScenariosParams) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	list, err := h.deps.Scenarios.List(ctx, helpers.Deref(params.Type))
	if err != nil {
		return h.fail(err)
	}
	return ectx.JSON(http.StatusOK, list)
}

func (h *ConsoleServer) GetScenarioStats(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	stats, err := h.deps.Scenarios.Stats(ctx)
	if err != nil {
		return h.fail(err)
	}
	return ectx.JSON(http.StatusOK, stats)
}

func (h *ConsoleServer) ListDevices(ectx echo.Context, params ListDevicesParams) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	list, err := h.deps.Devices.List(ctx, helpers.Deref(params.Type))
	if err != nil {
		return h.fail(err)
	}
	return ectx.JSON(http.StatusOK, list)
}

// LockDevice (POST /v1/devices/{device_id}/lock) reserves a device for the current user.
func (h *ConsoleServer) LockDevice(ectx echo.Context, deviceId int) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	lock, err := h.deps.Devices.Lock(ctx, deviceId)
	if err != nil {
		return h.fail(err)
	}
	h.deps.Toaster.Success(lockMessage(lock, "Device locked"))
	return ectx.JSON(http.StatusOK, lock)
}

// UnlockDevice (POST /v1/devices/{device_id}/unlock) releases a device.
func (h *ConsoleServer) UnlockDevice(ectx echo.Context, deviceId int) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	lock, err := h.deps.Devices.Unlock(ctx, deviceId)
	if err != nil {
		return h.fail(err)
	}
	h.deps.Toaster.Success(lockMessage(lock, "Device unlocked"))
	return ectx.JSON(http.StatusOK, lock)
}

// RunWebTest (POST /v1/tests/web) runs a browser test and toasts its outcome.
func (h *ConsoleServer) RunWebTest(ectx echo.Context) error {
	var req domain.WebTestRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	result, err := h.deps.Tests.RunWebTest(ctx, req)
	if err != nil {
		return h.fail(err)
	}
	h.toastResult(result)
	return ectx.JSON(http.StatusOK, result)
}

// RunMobileTest (POST /v1/tests/mobile) runs a test on a locked device and toasts its outcome.
func (h *ConsoleServer) RunMobileTest(ectx echo.Context) error {
	var req domain.MobileTestRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	result, err := h.deps.Tests.RunMobileTest(ctx, req)
	if err != nil {
		return h.fail(err)
	}
	h.toastResult(result)
	return ectx.JSON(http.StatusOK, result)
}

// ParseSteps (POST /v1/tests/parse) turns natural-language text into steps. Target defaults to web.
func (h *ConsoleServer) ParseSteps(ectx echo.Context, params ParseStepsParams) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	parsed, err := h.deps.Tests.ParseNatural(ctx, params.Text, helpers.Deref(params.Target))
	if err != nil {
		return h.fail(err)
	}
	return ectx.JSON(http.StatusOK, parsed)
}

func (h *ConsoleServer) ListJobs(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	jobs, err := h.deps.Jobs.List(ctx)
	if err != nil {
		return h.fail(err)
	}
	return ectx.JSON(http.StatusOK, jobs)
}

// RunJob (POST /v1/jobs/{job_id}/run) starts a job execution on the backend.
func (h *ConsoleServer) RunJob(ectx echo.Context, jobId int) error {
	ctx := ectx.Request().Context()
	if err := h.requireAuth(ctx); err != nil {
		return err
	}
	run, err := h.deps.Jobs.Run(ctx, jobId)
	if err != nil {
		return h.fail(err)
	}
	h.deps.Toaster.Info(fmt.Sprintf("Job %d started", jobId))
	return ectx.JSON(http.StatusOK, run)
}

// enter lands on the dashboard, renders the user info and welcomes user.
func (h *ConsoleServer) enter(ectx echo.Context, user domain.User) error {
	h.deps.Page.Navigate(ui.DashboardPage)
	ui.RenderUserInfo(ectx.Request().Context(), h.deps.Page, h.deps.Session, h.deps.Formatter)
	h.deps.Toaster.Success("Welcome, " + user.DisplayName())
	return ectx.JSON(http.StatusOK, user)
}

// requireAuth sends the page to the login page and fails with not_logged_in when no token is stored.
func (h *ConsoleServer) requireAuth(ctx context.Context) error {
	if h.deps.Session.CheckAuth(ctx) {
		return nil
	}
	return h.fail(service.NewNotLoggedInError())
}

// fail shows err as an error toast and returns it unchanged.
func (h *ConsoleServer) fail(err error) error {
	h.deps.Toaster.Error(service.Message(err))
	return err
}

func (h *ConsoleServer) toastResult(result domain.TestRunResult) {
	if result.Success {
		h.deps.Toaster.Success(result.Message)
		return
	}
	h.deps.Toaster.Error(result.Message)
}

func lockMessage(lock domain.DeviceLock, fallback string) string {
	if lock.Message != "" {
		return lock.Message
	}
	return fallback
}
