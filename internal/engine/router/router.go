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

package router

import (
	"github.com/go-arcade/treemenu/internal/engine/service/menu"
	httpx "github.com/go-arcade/treemenu/pkg/http"
	"github.com/go-arcade/treemenu/pkg/http/middleware"
	"github.com/go-arcade/treemenu/pkg/metrics"
	"github.com/go-arcade/treemenu/pkg/shutdown"
	"github.com/go-arcade/treemenu/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Router struct {
	Http     *httpx.Http
	Menu     *menu.MenuService
	Routes   *RouteResolver
	Metrics  *metrics.Server
	Shutdown *shutdown.Manager
	Conf     menu.Conf
}

func NewRouter(
	httpConf *httpx.Http,
	menuService *menu.MenuService,
	routes *RouteResolver,
	metricsServer *metrics.Server,
	shutdownMgr *shutdown.Manager,
	conf menu.Conf,
) *Router {
	conf.SetDefaults()
	return &Router{
		Http:     httpConf,
		Menu:     menuService,
		Routes:   routes,
		Metrics:  metricsServer,
		Shutdown: shutdownMgr,
		Conf:     conf,
	}
}

// Router builds the fiber app and binds the route resolver to it, so named
// menu items resolve against the routes registered here.
func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Tree Menu",
		DisableStartupMessage: true,
		Immutable:             true, // slug 与 path 会作为指标标签和 span 属性保留
		ReadTimeout:           rt.Http.ReadTimeoutDuration(),
		WriteTimeout:          rt.Http.WriteTimeoutDuration(),
		IdleTimeout:           rt.Http.IdleTimeoutDuration(),
		BodyLimit:             rt.Http.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.RequestMiddleware(),
		middleware.RealIPMiddleware(),
		middleware.CorsMiddleware(rt.Http),
		middleware.TraceMiddleware(), // 链路追踪中间件，需在访问日志之前
		middleware.AccessLogMiddleware(rt.Http),
	)

	// 健康检查，关闭过程中返回 503 让负载均衡摘除实例
	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
			return httpx.WithRepErr(c, fiber.StatusServiceUnavailable, httpx.ShuttingDown, c.Path())
		}
		return c.SendString("ok")
	})

	// 版本信息
	app.Get("/version", func(c *fiber.Ctx) error {
		return httpx.WithRepJSON(c, version.GetVersion())
	})

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	if rt.Http.PProf {
		rt.debugRouter(app.Group("/debug/pprof"))
	}

	rt.menuRouter(app.Group("/api/v1"))
	rt.pageRouter(app)

	if rt.Routes != nil {
		rt.Routes.Bind(app)
	}

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return httpx.WithRepErr(c, fiber.StatusNotFound, httpx.NotFound, c.Path())
	})

	return app
}
