// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-arcade/treemenu/internal/engine/config"
	"github.com/go-arcade/treemenu/internal/engine/repo"
	"github.com/go-arcade/treemenu/internal/engine/router"
	"github.com/go-arcade/treemenu/internal/engine/service/menu"
	"github.com/go-arcade/treemenu/pkg/database"
	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/go-arcade/treemenu/pkg/metrics"
	"github.com/go-arcade/treemenu/pkg/safe"
	"github.com/go-arcade/treemenu/pkg/shutdown"
	"github.com/go-arcade/treemenu/pkg/version"
	"github.com/gofiber/fiber/v2"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	HttpApp  *fiber.App
	Logger   *log.Logger
	Metrics  *metrics.Server
	Shutdown *shutdown.Manager
	Menu     *menu.MenuService
	Repos    *repo.Repositories
	DB       database.IDatabase
	Tracer   *sdktrace.TracerProvider
	AppConf  *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *log.Logger,
	metricsServer *metrics.Server,
	shutdownMgr *shutdown.Manager,
	menuService *menu.MenuService,
	repos *repo.Repositories,
	db database.IDatabase,
	tracer *sdktrace.TracerProvider,
	appConf *config.AppConfig,
) (*App, func(), error) {
	app := &App{
		HttpApp:  rt.Router(),
		Logger:   logger,
		Metrics:  metricsServer,
		Shutdown: shutdownMgr,
		Menu:     menuService,
		Repos:    repos,
		DB:       db,
		Tracer:   tracer,
		AppConf:  appConf,
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownTimeoutDuration())
		defer cancel()
		if err := metricsServer.Stop(ctx); err != nil {
			logger.Log.Errorw("metrics server shutdown error", "error", err)
		}
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	// Wire build App (所有依赖都由 wire 自动注入)
	return initApp(configFile)
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) error {
	logger := app.Logger.Log
	appConf := app.AppConf
	logger.Infow("treemenu starting", "version", version.GetVersion().String())

	if err := app.Metrics.Start(); err != nil {
		cleanup()
		return err
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(quit)

	listenErr := make(chan error, 1)
	safe.Go(func() {
		addr := appConf.Http.Addr()
		logger.Infow("HTTP listener started", "address", addr)
		listenErr <- app.HttpApp.Listen(addr)
	})

	var runErr error
	select {
	case sig := <-quit:
		logger.Infof("Received signal: %v, shutting down gracefully...", sig)
	case err := <-listenErr:
		logger.Errorw("HTTP listener failed", "address", appConf.Http.Addr(), "error", err)
		runErr = err
	}
	app.Shutdown.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownTimeoutDuration())
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	// close metrics server, database and tracer
	cleanup()

	logger.Info("Server shutdown complete")
	_ = log.Sync()
	return runErr
}
