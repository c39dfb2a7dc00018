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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder collects dispatch operation metrics.
type Recorder struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own prometheus registry, including
// the default Go and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blobgate_dispatch_operations_total",
		Help: "Dispatch operations by operation, provider and outcome.",
	}, []string{"operation", "provider", "outcome"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blobgate_dispatch_duration_seconds",
		Help:    "Dispatch operation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "provider"})

	registry.MustRegister(operations, latency)

	return &Recorder{
		registry:   registry,
		operations: operations,
		latency:    latency,
	}
}

// Registry exposes the prometheus registry for the /metrics handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveDispatch records one dispatch operation outcome.
func (r *Recorder) ObserveDispatch(operation, provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.operations.WithLabelValues(operation, provider, outcome).Inc()
	r.latency.WithLabelValues(operation, provider).Observe(time.Since(start).Seconds())
}
