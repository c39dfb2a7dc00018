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
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	httpx "github.com/blobgate/blobgate/pkg/http"
	"github.com/blobgate/blobgate/pkg/http/middleware"
	"github.com/blobgate/blobgate/pkg/storage"
)

// healthProbeKey is a key no client writes; probing it exercises the
// backend round trip without touching real objects.
const healthProbeKey = ".blobgate-health"

// providerRouter registers provider management routes
func (rt *Router) providerRouter(r fiber.Router) {
	providerGroup := r.Group("/providers")
	{
		providerGroup.Get("/", rt.listProviders)               // GET /providers - registered names and active selection
		providerGroup.Post("/:name/active", rt.setActive)      // POST /providers/:name/active - switch the active provider
		providerGroup.Get("/health", rt.probeProvidersHealth)  // GET /providers/health - concurrent backend probes
	}
}

type providerInfo struct {
	Name         string   `json:"name"`
	Active       bool     `json:"active"`
	Capabilities []string `json:"capabilities"`
}

// capabilities reports which optional interfaces the provider implements.
func capabilities(p storage.Provider) []string {
	caps := []string{"upload"}
	if _, ok := p.(storage.Downloader); ok {
		caps = append(caps, "download")
	}
	if _, ok := p.(storage.Exister); ok {
		caps = append(caps, "exists")
	}
	if _, ok := p.(storage.Deleter); ok {
		caps = append(caps, "delete")
	}
	return caps
}

// listProviders reports registered providers, the active selection and
// each provider's capability set.
func (rt *Router) listProviders(c *fiber.Ctx) error {
	registry := rt.Dispatch.Registry()
	active := registry.ActiveName()

	infos := make([]providerInfo, 0, registry.Len())
	for _, name := range registry.Names() {
		p, err := registry.Get(name)
		if err != nil {
			continue
		}
		infos = append(infos, providerInfo{
			Name:         name,
			Active:       name == active,
			Capabilities: capabilities(p),
		})
	}

	c.Locals(middleware.DETAIL, fiber.Map{
		"providers": infos,
		"active":    active,
	})
	c.Locals(middleware.OPERATION, "list providers")
	return nil
}

// setActive switches the active provider selection.
func (rt *Router) setActive(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return httpx.WithRepErrMsg(c, httpx.ProviderIsRequired.Code, httpx.ProviderIsRequired.Msg, c.Path())
	}

	if err := rt.Dispatch.Registry().SetActive(name); err != nil {
		return httpx.WithRepErrMsg(c, httpx.ProviderNotRegistered.Code, err.Error(), c.Path())
	}

	c.Locals(middleware.DETAIL, fiber.Map{"active": name})
	c.Locals(middleware.OPERATION, "set active provider")
	return nil
}

type providerHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency"`
}

// probeProvidersHealth probes every registered backend concurrently. A
// provider is healthy when its existence probe answers without a backend
// error; whether the probe key exists is irrelevant.
func (rt *Router) probeProvidersHealth(c *fiber.Ctx) error {
	registry := rt.Dispatch.Registry()
	names := registry.Names()

	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	results := make([]providerHealth, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			start := time.Now()
			_, err := rt.Dispatch.ExistsIn(gctx, name, healthProbeKey)
			health := providerHealth{
				Name:    name,
				Healthy: err == nil,
				Latency: time.Since(start).String(),
			}
			if err != nil {
				health.Error = err.Error()
			}
			results[i] = health
			return nil
		})
	}
	_ = g.Wait()

	c.Locals(middleware.DETAIL, fiber.Map{"providers": results})
	c.Locals(middleware.OPERATION, "probe providers health")
	return nil
}
