package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListScenariosParams defines parameters for ListScenarios.
type ListScenariosParams struct {
	Type *string `form:"type,omitempty" json:"type,omitempty"`
}

// ListDevicesParams defines parameters for ListDevices.
type ListDevicesParams struct {
	Type *string `form:"type,omitempty" json:"type,omitempty"`
}

// ParseStepsParams defines parameters for ParseSteps.
type ParseStepsParams struct {
	Text   string  `form:"text" json:"text"`
	Target *string `form:"target,omitempty" json:"target,omitempty"`
}

// ServerInterface represents all server handlers of console.openapi.yaml.
type ServerInterface interface {
	// (GET /v1/health)
	GetHealth(ctx echo.Context) error
	// (GET /v1/page)
	GetPage(ctx echo.Context) error
	// (POST /v1/page/click/{element_id})
	ClickElement(ctx echo.Context, elementId string) error
	// (GET /v1/theme)
	GetTheme(ctx echo.Context) error
	// (POST /v1/theme/toggle)
	ToggleTheme(ctx echo.Context) error
	// (POST /v1/modals/{modal_id}/show)
	ShowModal(ctx echo.Context, modalId string) error
	// (POST /v1/modals/{modal_id}/hide)
	HideModal(ctx echo.Context, modalId string) error
	// (GET /v1/toasts)
	GetToasts(ctx echo.Context) error
	// (POST /v1/auth/login)
	Login(ctx echo.Context) error
	// (POST /v1/auth/register)
	Register(ctx echo.Context) error
	// (POST /v1/auth/logout)
	Logout(ctx echo.Context) error
	// (GET /v1/auth/me)
	GetMe(ctx echo.Context) error
	// (GET /v1/scenarios)
	ListScenarios(ctx echo.Context, params ListScenariosParams) error
	// (GET /v1/scenarios/stats)
	GetScenarioStats(ctx echo.Context) error
	// (GET /v1/devices)
	ListDevices(ctx echo.Context, params ListDevicesParams) error
	// (POST /v1/devices/{device_id}/lock)
	LockDevice(ctx echo.Context, deviceId int) error
	// (POST /v1/devices/{device_id}/unlock)
	UnlockDevice(ctx echo.Context, deviceId int) error
	// (POST /v1/tests/web)
	RunWebTest(ctx echo.Context) error
	// (POST /v1/tests/mobile)
	RunMobileTest(ctx echo.Context) error
	// (POST /v1/tests/parse)
	ParseSteps(ctx echo.Context, params ParseStepsParams) error
	// (GET /v1/jobs)
	ListJobs(ctx echo.Context) error
	// (POST /v1/jobs/{job_id}/run)
	RunJob(ctx echo.Context, jobId int) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) GetPage(ctx echo.Context) error {
	return w.Handler.GetPage(ctx)
}

func (w *ServerInterfaceWrapper) ClickElement(ctx echo.Context) error {
	var elementId string
	if err := bindPathParam(ctx, "element_id", &elementId); err != nil {
		return err
	}
	return w.Handler.ClickElement(ctx, elementId)
}

func (w *ServerInterfaceWrapper) GetTheme(ctx echo.Context) error {
	return w.Handler.GetTheme(ctx)
}

func (w *ServerInterfaceWrapper) ToggleTheme(ctx echo.Context) error {
	return w.Handler.ToggleTheme(ctx)
}

func (w *ServerInterfaceWrapper) ShowModal(ctx echo.Context) error {
	var modalId string
	if err := bindPathParam(ctx, "modal_id", &modalId); err != nil {
		return err
	}
	return w.Handler.ShowModal(ctx, modalId)
}

func (w *ServerInterfaceWrapper) HideModal(ctx echo.Context) error {
	var modalId string
	if err := bindPathParam(ctx, "modal_id", &modalId); err != nil {
		return err
	}
	return w.Handler.HideModal(ctx, modalId)
}

func (w *ServerInterfaceWrapper) GetToasts(ctx echo.Context) error {
	return w.Handler.GetToasts(ctx)
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

func (w *ServerInterfaceWrapper) Register(ctx echo.Context) error {
	return w.Handler.Register(ctx)
}

func (w *ServerInterfaceWrapper) Logout(ctx echo.Context) error {
	return w.Handler.Logout(ctx)
}

func (w *ServerInterfaceWrapper) GetMe(ctx echo.Context) error {
	return w.Handler.GetMe(ctx)
}

func (w *ServerInterfaceWrapper) ListScenarios(ctx echo.Context) error {
	var params ListScenariosParams
	if err := bindQueryParam(ctx, "type", false, &params.Type); err != nil {
		return err
	}
	return w.Handler.ListScenarios(ctx, params)
}

func (w *ServerInterfaceWrapper) GetScenarioStats(ctx echo.Context) error {
	return w.Handler.GetScenarioStats(ctx)
}

func (w *ServerInterfaceWrapper) ListDevices(ctx echo.Context) error {
	var params ListDevicesParams
	if err := bindQueryParam(ctx, "type", false, &params.Type); err != nil {
		return err
	}
	return w.Handler.ListDevices(ctx, params)
}

func (w *ServerInterfaceWrapper) LockDevice(ctx echo.Context) error {
	var deviceId int
	if err := bindPathParam(ctx, "device_id", &deviceId); err != nil {
		return err
	}
	return w.Handler.LockDevice(ctx, deviceId)
}

func (w *ServerInterfaceWrapper) UnlockDevice(ctx echo.Context) error {
	var deviceId int
	if err := bindPathParam(ctx, "device_id", &deviceId); err != nil {
		return err
	}
	return w.Handler.UnlockDevice(ctx, deviceId)
}

func (w *ServerInterfaceWrapper) RunWebTest(ctx echo.Context) error {
	return w.Handler.RunWebTest(ctx)
}

func (w *ServerInterfaceWrapper) RunMobileTest(ctx echo.Context) error {
	return w.Handler.RunMobileTest(ctx)
}

func (w *ServerInterfaceWrapper) ParseSteps(ctx echo.Context) error {
	var params ParseStepsParams
	if err := bindQueryParam(ctx, "text", true, &params.Text); err != nil {
		return err
	}
	if err := bindQueryParam(ctx, "target", false, &params.Target); err != nil {
		return err
	}
	return w.Handler.ParseSteps(ctx, params)
}

func (w *ServerInterfaceWrapper) ListJobs(ctx echo.Context) error {
	return w.Handler.ListJobs(ctx)
}

func (w *ServerInterfaceWrapper) RunJob(ctx echo.Context) error {
	var jobId int
	if err := bindPathParam(ctx, "job_id", &jobId); err != nil {
		return err
	}
	return w.Handler.RunJob(ctx, jobId)
}

func bindPathParam(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), dest)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name).SetInternal(err)
	}
	return nil
}

func bindQueryParam(ctx echo.Context, name string, required bool, dest any) error {
	if err := runtime.BindQueryParameter("form", true, required, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter "+name).SetInternal(err)
	}
	return nil
}

// EchoRouter is the part of echo.Echo and echo.Group RegisterHandlers needs.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/v1/health", w.GetHealth)
	router.GET("/v1/page", w.GetPage)
	router.POST("/v1/page/click/:element_id", w.ClickElement)
	router.GET("/v1/theme", w.GetTheme)
	router.POST("/v1/theme/toggle", w.ToggleTheme)
	router.POST("/v1/modals/:modal_id/show", w.ShowModal)
	router.POST("/v1/modals/:modal_id/hide", w.HideModal)
	router.GET("/v1/toasts", w.GetToasts)
	router.POST("/v1/auth/login", w.Login)
	router.POST("/v1/auth/register", w.Register)
	router.POST("/v1/auth/logout", w.Logout)
	router.GET("/v1/auth/me", w.GetMe)
	router.GET("/v1/scenarios", w.ListScenarios)
	router.GET("/v1/scenarios/stats", w.GetScenarioStats)
	router.GET("/v1/devices", w.ListDevices)
	router.POST("/v1/devices/:device_id/lock", w.LockDevice)
	router.POST("/v1/devices/:device_id/unlock", w.UnlockDevice)
	router.POST("/v1/tests/web", w.RunWebTest)
	router.POST("/v1/tests/mobile", w.RunMobileTest)
	router.POST("/v1/tests/parse", w.ParseSteps)
	router.GET("/v1/jobs", w.ListJobs)
	router.POST("/v1/jobs/:job_id/run", w.RunJob)
}
