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

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/blobgate/blobgate/internal/conf"
	"github.com/blobgate/blobgate/internal/router"
	"github.com/blobgate/blobgate/pkg/log"
	"github.com/blobgate/blobgate/pkg/metrics"
	"github.com/blobgate/blobgate/pkg/storage"
	"github.com/blobgate/blobgate/pkg/tools"
)

type App struct {
	HttpApp  *fiber.App
	Logger   *zap.Logger
	Dispatch *storage.Dispatch
	AppConf  conf.AppConfig
}

// BuildRegistry constructs and registers all configured providers. The
// config only supplies connection settings; backend construction and the
// active selection happen here, during single-threaded startup.
func BuildRegistry(providers []conf.ProviderConf) (*storage.Registry, error) {
	registry := storage.NewRegistry()

	active := ""
	for _, pc := range providers {
		p, err := storage.New(&storage.Storage{
			Type:      pc.Type,
			Endpoint:  pc.Endpoint,
			AccessKey: pc.AccessKey,
			SecretKey: pc.SecretKey,
			Bucket:    pc.Bucket,
			Region:    pc.Region,
			UseTLS:    pc.UseTLS,
			BasePath:  pc.BasePath,
		})
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", pc.Name, err)
		}
		registry.Register(pc.Name, p)
		if pc.Active && active == "" {
			active = pc.Name
		}
	}

	if active != "" {
		if err := registry.SetActive(active); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Bootstrap initializes the application and returns it with its cleanup
// function.
func Bootstrap(configFile string) (*App, func(), error) {
	appConf := conf.NewConf(configFile)

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, err
	}

	registry, err := BuildRegistry(appConf.Providers)
	if err != nil {
		return nil, nil, err
	}
	dispatch := storage.NewDispatch(registry)

	recorder := metrics.NewRecorder()
	toolbox := tools.New(dispatch, logger.Sugar())

	rt := router.NewRouter(&appConf.Http, dispatch, toolbox, recorder)
	httpApp := rt.Router(logger)

	logger.Sugar().Infow("providers registered",
		"providers", registry.Names(),
		"active", registry.ActiveName(),
	)

	cleanup := func() {
		_ = logger.Sync()
	}

	app := &App{
		HttpApp:  httpApp,
		Logger:   logger,
		Dispatch: dispatch,
		AppConf:  appConf,
	}
	return app, cleanup, nil
}

// Run starts the app and blocks until an exit signal, then shuts down
// gracefully.
func Run(app *App, cleanup func()) {
	logger := app.Logger
	appConf := app.AppConf

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
		logger.Sugar().Infow("HTTP listener started",
			"address", addr,
		)
		var err error
		if appConf.Http.TLS.CertFile != "" && appConf.Http.TLS.KeyFile != "" {
			err = app.HttpApp.ListenTLS(addr, appConf.Http.TLS.CertFile, appConf.Http.TLS.KeyFile)
		} else {
			err = app.HttpApp.Listen(addr)
		}
		if err != nil {
			logger.Sugar().Errorw("HTTP listener failed",
				"address", addr,
				"error", err,
			)
		}
	}()

	sig := <-quit
	logger.Sugar().Infof("Received signal: %v, shutting down gracefully...", sig)

	shutdownTimeout := appConf.Http.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Sugar().Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	cleanup()
}
