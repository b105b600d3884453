package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"myclient/adapters/filestore"
	"myclient/adapters/memory"
	"myclient/adapters/myredis"
	"myclient/interfaces"
	"myclient/service"
	"myclient/ui"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// app is the wired client: store, session, API facades and the page the chrome renders into.
type app struct {
	cfg       *Config
	page      *ui.Page
	storage   *service.Storage
	session   *service.Session
	client    *service.APIClient
	auth      *service.AuthAPI
	scenarios *service.ScenariosAPI
	devices   *service.DevicesAPI
	tests     *service.TestAPI
	jobs      *service.JobsAPI
	theme     *ui.Theme
	modals    *ui.Modals
	formatter *ui.Formatter
	clock     interfaces.TimeProvider
	closers   []func() error
}

// openKVStore creates the store selected by cfg. The returned close func releases the backend.
func openKVStore(ctx context.Context, cfg StoreConfig, timeout time.Duration, logger log.Logger) (interfaces.KVStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case StoreMemory:
		return memory.New(), noop, nil
	case StoreFile:
		level.Debug(logger).Log("msg", "Using file store", "path", cfg.Path)
		return filestore.NewKVStore(cfg.Path), noop, nil
	case StoreRedis:
		redisClient, err := myredis.NewRedisUniversalClient(cfg.RedisAddr, myredis.WithTimeout(timeout))
		if err != nil {
			return nil, nil, fmt.Errorf("create redis client: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		level.Debug(logger).Log("msg", "Connected to Redis", "prefix", cfg.RedisPrefix)
		return myredis.NewKVStore(redisClient, cfg.RedisPrefix), redisClient.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// newApp opens the configured store and wires the client on top of it.
func newApp(ctx context.Context, cfg *Config, logger log.Logger) (*app, error) {
	kv, closeStore, err := openKVStore(ctx, cfg.Store, cfg.HTTPTimeout, logger)
	if err != nil {
		return nil, err
	}
	a := newAppWithStore(cfg, kv, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	a.closers = append(a.closers, closeStore)
	return a, nil
}

// newAppWithStore wires the client over kv. The page starts on the dashboard with the stored theme applied.
func newAppWithStore(cfg *Config, kv interfaces.KVStore, httpClient *http.Client, logger log.Logger) *app {
	a := &app{cfg: cfg}
	a.clock = service.NewTimeProvider(time.Now)
	a.page = ui.NewDashboardPage(ui.DashboardPage)
	a.storage = service.NewStorage(kv, logger)
	a.session = service.NewSession(a.storage, a.page, logger)
	a.client = service.NewAPIClient(cfg.APIURL, httpClient, a.session, a.clock, logger)
	a.auth = service.NewAuthAPI(a.client, a.session, logger)
	a.scenarios = service.NewScenariosAPI(a.client)
	a.devices = service.NewDevicesAPI(a.client)
	a.tests = service.NewTestAPI(a.client)
	a.jobs = service.NewJobsAPI(a.client)
	a.theme = ui.NewTheme(a.storage, a.page, logger)
	a.modals = ui.NewModals(a.page)
	a.formatter = ui.NewFormatter(cfg.Locale, time.Local, a.clock)
	return a
}

// Close releases the store backend.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
