// Copyright 2025 Blobgate Team
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
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpx "github.com/blobgate/blobgate/pkg/http"
	"github.com/blobgate/blobgate/pkg/http/middleware"
	"github.com/blobgate/blobgate/pkg/metrics"
	"github.com/blobgate/blobgate/pkg/storage"
	"github.com/blobgate/blobgate/pkg/tools"
	"github.com/blobgate/blobgate/pkg/version"
)

type Router struct {
	Http     *httpx.Http
	Dispatch *storage.Dispatch
	Tools    *tools.Tools
	Recorder *metrics.Recorder
}

func NewRouter(httpConf *httpx.Http, dispatch *storage.Dispatch, toolbox *tools.Tools, recorder *metrics.Recorder) *Router {
	return &Router{
		Http:     httpConf,
		Dispatch: dispatch,
		Tools:    toolbox,
		Recorder: recorder,
	}
}

func (rt *Router) Router(logger *zap.Logger) *fiber.App {
	bodyLimit := rt.Http.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 100 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:      "Blobgate",
		ReadTimeout:  rt.Http.ReadTimeoutDuration(),
		WriteTimeout: rt.Http.WriteTimeoutDuration(),
		IdleTimeout:  rt.Http.IdleTimeoutDuration(),
		BodyLimit:    bodyLimit,
	})

	if rt.Http.AccessLog {
		app.Use(httpx.AccessLogFormat(logger))
	}

	app.Use(
		fiberrecover.New(),
		cors.New(),
		middleware.RequestMiddleware(),
		middleware.UnifiedResponseMiddleware(),
	)

	if rt.Http.PProf {
		app.Use(pprof.New())
	}

	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rt.Recorder.Registry(), promhttp.HandlerOpts{})))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	api := app.Group("/api/v1")
	{
		rt.objectRouter(api)
		rt.providerRouter(api)
		rt.toolsRouter(api)
	}

	// must stay after the route registrations
	app.Use(func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNotFound)
		return httpx.WithRepErr(c, fiber.StatusNotFound, "request path not found", c.Path())
	})

	return app
}
