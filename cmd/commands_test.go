package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"myclient/adapters/memory"
	"myclient/service"
	"myclient/ui"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCall struct {
	Method string
	Path   string
	Query  string
	Body   string
}

type cliFixture struct {
	app *app
	kv  *memory.KVStore

	mu    sync.Mutex
	calls []backendCall
}

func newCLIFixture(t *testing.T, routes func(backend *echo.Echo)) *cliFixture {
	t.Helper()
	f := &cliFixture{kv: memory.New()}

	backend := echo.New()
	backend.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body, _ := io.ReadAll(c.Request().Body)
			f.mu.Lock()
			f.calls = append(f.calls, backendCall{
				Method: c.Request().Method,
				Path:   c.Request().URL.Path,
				Query:  c.Request().URL.RawQuery,
				Body:   string(body),
			})
			f.mu.Unlock()
			return next(c)
		}
	})
	if routes != nil {
		routes(backend)
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := &Config{
		APIURL:        srv.URL + "/api",
		Store:         StoreConfig{Backend: StoreMemory},
		HTTPTimeout:   5 * time.Second,
		ConsolePort:   8080,
		Locale:        ui.LocaleEN,
		ToastDuration: ui.DefaultToastDuration,
	}
	f.app = newAppWithStore(cfg, f.kv, srv.Client(), log.NewNopLogger())
	return f
}

func (f *cliFixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.kv.Set(context.Background(), service.KeyToken, "tok-1"))
	require.NoError(t, f.kv.Set(context.Background(), service.KeyUser, `{"username":"alice","role":"user"}`))
}

func (f *cliFixture) run(args ...string) (string, error) {
	var out bytes.Buffer
	err := dispatch(context.Background(), f.app, args, &out)
	return out.String(), err
}

func (f *cliFixture) lastCall(t *testing.T) backendCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func writeJSONFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDispatch_Login(t *testing.T) {
	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.POST("/api/auth/login", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{
				"access_token": "tok-1",
				"user":         map[string]any{"username": "alice", "role": "admin"},
			})
		})
	})

	out, err := f.run("login", "--username", "alice", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, `"username": "alice"`)
	assert.Equal(t, "tok-1", f.kv.Snapshot()[service.KeyToken])
	assert.JSONEq(t, `{"username":"alice","password":"secret"}`, f.lastCall(t).Body)

	_, err = f.run("login", "--username", "alice")
	assert.True(t, service.IsBadParameterError(err))
}

func TestDispatch_Logout(t *testing.T) {
	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.POST("/api/auth/logout", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"message": "bye"})
		})
	})
	f.login(t)

	out, err := f.run("logout")
	require.NoError(t, err)
	assert.JSONEq(t, `{"logged_out":true}`, out)
	assert.NotContains(t, f.kv.Snapshot(), service.KeyToken)
	assert.Equal(t, service.LoginPage, f.app.page.Location())
}

func TestDispatch_Whoami(t *testing.T) {
	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.GET("/api/auth/me", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"username": "alice", "role": "admin"})
		})
	})

	_, err := f.run("whoami")
	assert.True(t, service.IsNotLoggedIn(err))

	f.login(t)
	out, err := f.run("whoami")
	require.NoError(t, err)

	var result whoamiResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, "Administrator", result.Role)
	assert.Nil(t, result.Claims)
}

func TestDispatch_SessionExpired(t *testing.T) {
	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.GET("/api/scenarios", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]any{"detail": "expired"})
		})
	})
	f.login(t)

	_, err := f.run("scenarios", "list")
	require.Error(t, err)
	assert.True(t, service.IsSessionExpired(err))
	assert.NotContains(t, f.kv.Snapshot(), service.KeyToken)

	var stderr bytes.Buffer
	assert.Equal(t, 1, reportError(&stderr, err))
	assert.Equal(t, "Error: session expired\n"+reloginHint+"\n", stderr.String())
}

func TestDispatch_Routing(t *testing.T) {
	scenarioFile := writeJSONFile(t, `{"name":"Checkout","natural_steps":"open cart"}`)
	webFile := writeJSONFile(t, `{"url":"https://example.com","input_type":"natural","natural_text":"open page"}`)

	tests := []struct {
		name       string
		args       []string
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   string
	}{
		{name: "scenarios list type", args: []string{"scenarios", "list", "--type", "web"}, wantMethod: http.MethodGet, wantPath: "/api/scenarios", wantQuery: "type=web"},
		{name: "scenarios update flag after id", args: []string{"scenarios", "update", "5", "--file", scenarioFile}, wantMethod: http.MethodPut, wantPath: "/api/scenarios/5", wantBody: `{"name":"Checkout","natural_steps":"open cart"}`},
		{name: "scenarios duplicate", args: []string{"scenarios", "duplicate", "5"}, wantMethod: http.MethodPost, wantPath: "/api/scenarios/5/duplicate"},
		{name: "scenarios stats", args: []string{"scenarios", "stats"}, wantMethod: http.MethodGet, wantPath: "/api/scenarios/stats"},
		{name: "devices lock", args: []string{"devices", "lock", "3"}, wantMethod: http.MethodPost, wantPath: "/api/devices/3/lock", wantBody: `{}`},
		{name: "devices available", args: []string{"devices", "available"}, wantMethod: http.MethodGet, wantPath: "/api/devices/available"},
		{name: "jobs run", args: []string{"jobs", "run", "7"}, wantMethod: http.MethodPost, wantPath: "/api/jobs/7/run"},
		{name: "jobs stop", args: []string{"jobs", "stop", "7"}, wantMethod: http.MethodPost, wantPath: "/api/jobs/7/stop"},
		{name: "run-web", args: []string{"run-web", "--file", webFile}, wantMethod: http.MethodPost, wantPath: "/api/web/run-test", wantBody: `{"url":"https://example.com","input_type":"natural","natural_text":"open page","headless":false,"stop_on_fail":false}`},
		{name: "parse mobile", args: []string{"parse", "--target", "mobile", "tap", "login"}, wantMethod: http.MethodPost, wantPath: "/api/mobile/parse", wantQuery: "text=tap+login"},
		{name: "health", args: []string{"health"}, wantMethod: http.MethodGet, wantPath: "/api/web/health"},
	}

	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.Any("/*", func(c echo.Context) error {
			if strings.HasSuffix(c.Request().URL.Path, "/run-test") {
				return c.JSON(http.StatusOK, map[string]any{"test_id": "t1", "success": true, "message": "ok"})
			}
			return c.JSONBlob(http.StatusOK, []byte(`{}`))
		})
	})
	f.login(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.run(tt.args...)
			require.NoError(t, err)
			assert.True(t, json.Valid([]byte(out)), out)

			call := f.lastCall(t)
			assert.Equal(t, tt.wantMethod, call.Method)
			assert.Equal(t, tt.wantPath, call.Path)
			if tt.wantQuery != "" {
				assert.Contains(t, call.Query, tt.wantQuery)
			}
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, call.Body)
			}
		})
	}
}

func TestDispatch_DevicesMineNone(t *testing.T) {
	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.GET("/api/devices/my", func(c echo.Context) error {
			return c.JSONBlob(http.StatusOK, []byte(`null`))
		})
	})
	f.login(t)

	out, err := f.run("devices", "mine")
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestDispatch_RunWebFailedTest(t *testing.T) {
	f := newCLIFixture(t, func(backend *echo.Echo) {
		backend.POST("/api/web/run-test", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]any{"test_id": "t9", "success": false, "message": "step 2 failed"})
		})
	})
	f.login(t)

	out, err := f.run("run-web", "--file", writeJSONFile(t, `{"url":"https://example.com"}`))
	require.Error(t, err)
	assert.Equal(t, "test t9 failed: step 2 failed", service.Message(err))
	assert.Contains(t, out, `"test_id": "t9"`)
}

func TestDispatch_Theme(t *testing.T) {
	f := newCLIFixture(t, nil)

	out, err := f.run("theme", "get")
	require.NoError(t, err)
	var result themeResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, ui.ThemeLight, result.Theme)

	out, err = f.run("theme", "toggle")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, ui.ThemeDark, result.Theme)
	assert.Equal(t, ui.Icon(ui.ThemeDark), result.Icon)
	assert.Equal(t, ui.ThemeDark, f.kv.Snapshot()[ui.KeyTheme])
}

func TestDispatch_BadArguments(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantUnknown bool
		wantMessage string
	}{
		{name: "no command", args: nil, wantUnknown: true},
		{name: "unknown command", args: []string{"frobnicate"}, wantUnknown: true},
		{name: "group without verb", args: []string{"jobs"}, wantUnknown: true},
		{name: "unknown verb", args: []string{"devices", "explode"}, wantUnknown: true},
		{name: "id not a number", args: []string{"scenarios", "get", "abc"}, wantMessage: `ID must be a positive integer, got "abc"`},
		{name: "missing id", args: []string{"jobs", "history"}, wantMessage: "exactly one ID argument is required"},
		{name: "missing file", args: []string{"scenarios", "create"}, wantMessage: "--file is required"},
		{name: "unknown flag", args: []string{"scenarios", "list", "--colour", "red"}, wantMessage: "flag provided but not defined: -colour"},
		{name: "extra args", args: []string{"scenarios", "stats", "now"}, wantMessage: "unexpected arguments: now"},
		{name: "empty parse text", args: []string{"parse"}, wantMessage: "text to parse is required"},
	}
	f := newCLIFixture(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.run(tt.args...)
			require.Error(t, err)
			if tt.wantUnknown {
				assert.ErrorIs(t, err, errUnknownCommand)
				return
			}
			assert.True(t, service.IsBadParameterError(err), err)
			assert.Equal(t, tt.wantMessage, service.Message(err))
		})
	}
}

func TestReadBody_InvalidJSON(t *testing.T) {
	var dst map[string]any
	err := readBody(writeJSONFile(t, `{not json`), &dst)
	require.Error(t, err)
	assert.True(t, service.IsBadParameterError(err))
}

func TestRun(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(envStoreBackend, StoreMemory)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr []string
	}{
		{name: "no args prints usage", args: nil, wantCode: 1, wantStderr: []string{"Usage: myclient"}},
		{name: "help", args: []string{"help"}, wantCode: 0, wantStderr: []string{"scenarios <"}},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: 1, wantStderr: []string{`Error: unknown command "frobnicate"`, "Usage: myclient"}},
		{name: "not logged in", args: []string{"whoami"}, wantCode: 1, wantStderr: []string{"Error: not logged in", reloginHint}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr, log.NewNopLogger())
			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr.String(), want)
			}
		})
	}
}

func TestRun_BadConfig(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(envStoreBackend, "sqlite")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"whoami"}, &stdout, &stderr, log.NewNopLogger())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), envStoreBackend)
}

func TestOpenKVStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     StoreConfig
		wantErr bool
	}{
		{name: "memory", cfg: StoreConfig{Backend: StoreMemory}},
		{name: "file", cfg: StoreConfig{Backend: StoreFile, Path: filepath.Join(t.TempDir(), "store.json")}},
		{name: "redis", cfg: StoreConfig{Backend: StoreRedis, RedisAddr: "redis://" + mr.Addr(), RedisPrefix: "myclient"}},
		{name: "redis bad url", cfg: StoreConfig{Backend: StoreRedis, RedisAddr: "http://nope", RedisPrefix: "myclient"}, wantErr: true},
		{name: "unknown", cfg: StoreConfig{Backend: "sqlite"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv, closeStore, err := openKVStore(ctx, tt.cfg, time.Second, log.NewNopLogger())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeStore()) }()

			require.NoError(t, kv.Set(ctx, "theme", "dark"))
			value, ok, err := kv.Get(ctx, "theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "dark", value)
		})
	}

	got, err := mr.Get("myclient:theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)
}

func TestNewConsoleEcho(t *testing.T) {
	f := newCLIFixture(t, nil)

	e, toaster, err := newConsoleEcho(context.Background(), f.app, log.NewNopLogger())
	require.NoError(t, err)
	defer toaster.Close()

	assert.Equal(t, service.LoginPage, f.app.page.Location())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServeConsole_PortInUse(t *testing.T) {
	f := newCLIFixture(t, nil)
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	f.app.cfg.ConsolePort = ln.Addr().(*net.TCPAddr).Port

	done := make(chan error, 1)
	go func() { done <- serveConsole(context.Background(), f.app, log.NewNopLogger()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start console")
	case <-time.After(5 * time.Second):
		t.Fatal("serveConsole did not return on a taken port")
	}
}
