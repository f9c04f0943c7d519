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

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusOK    = "ok"
	statusError = "error"

	// 未命中或失败的渲染共用该 label，slug 来自请求路径，不能直接作为 label
	unknownSlug = "unknown"
)

// MenuMetricsRecorder records menu render metrics. It satisfies the render
// service's MetricsRecorder.
type MenuMetricsRecorder struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	items    *prometheus.GaugeVec
}

// NewMenuMetricsRecorder creates the menu collectors and registers them on
// reg.
func NewMenuMetricsRecorder(reg prometheus.Registerer) (*MenuMetricsRecorder, error) {
	r := &MenuMetricsRecorder{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treemenu_menu_render_total",
				Help: "Total number of menu renders",
			},
			[]string{"slug", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treemenu_menu_render_duration_seconds",
				Help:    "Duration of menu renders in seconds, fetch included",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
			},
			[]string{"slug"},
		),
		items: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "treemenu_menu_items",
				Help: "Number of items fetched by the last render of a menu",
			},
			[]string{"slug"},
		),
	}

	for _, c := range []prometheus.Collector{r.renders, r.duration, r.items} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// RecordRender records a single menu render. Only renders that found items
// keep their slug; empty and failed ones are filed under "unknown".
func (r *MenuMetricsRecorder) RecordRender(slug string, items int, duration time.Duration, err error) {
	if err != nil || items == 0 {
		slug = unknownSlug
	}
	if err != nil {
		r.renders.WithLabelValues(slug, statusError).Inc()
		return
	}
	r.renders.WithLabelValues(slug, statusOK).Inc()
	r.duration.WithLabelValues(slug).Observe(duration.Seconds())
	r.items.WithLabelValues(slug).Set(float64(items))
}
