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

package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/go-arcade/treemenu/pkg/version"
	"github.com/google/wire"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var ProviderSet = wire.NewSet(ProvideTracerProvider)

// Conf 链路追踪配置，超时单位为秒
type Conf struct {
	Enabled     bool              `mapstructure:"enabled"`
	Protocol    string            `mapstructure:"protocol"` // grpc | http
	Endpoint    string            `mapstructure:"endpoint"`
	Insecure    bool              `mapstructure:"insecure"`
	Headers     map[string]string `mapstructure:"headers"`
	SampleRatio float64           `mapstructure:"sampleRatio"`

	ServiceName    string `mapstructure:"serviceName"`
	ServiceVersion string `mapstructure:"serviceVersion"`
	Environment    string `mapstructure:"environment"`

	BatchTimeout       int `mapstructure:"batchTimeout"`
	ExportTimeout      int `mapstructure:"exportTimeout"`
	MaxExportBatchSize int `mapstructure:"maxExportBatchSize"`
}

func (c *Conf) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "treemenu"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = version.Version
	}
	if c.Protocol == "" {
		c.Protocol = "grpc"
	}
	if c.Endpoint == "" {
		c.Endpoint = map[string]string{"grpc": "localhost:4317", "http": "localhost:4318"}[c.Protocol]
	}
	if c.SampleRatio <= 0 || c.SampleRatio > 1 {
		c.SampleRatio = 1
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = 5
	}
	if c.ExportTimeout <= 0 {
		c.ExportTimeout = 30
	}
	if c.MaxExportBatchSize <= 0 {
		c.MaxExportBatchSize = 512
	}
}

func (c *Conf) exportTimeout() time.Duration {
	return time.Duration(c.ExportTimeout) * time.Second
}

// shutdownTimeout leaves room for one last export, bounded to [10s, 30s].
func (c *Conf) shutdownTimeout() time.Duration {
	return min(max(c.exportTimeout()+5*time.Second, 10*time.Second), 30*time.Second)
}

func (c *Conf) resource(ctx context.Context) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(c.ServiceName),
		semconv.ServiceVersion(c.ServiceVersion),
	}
	if c.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(c.Environment))
	}
	return resource.New(ctx, resource.WithAttributes(attrs...))
}

// ProvideTracerProvider installs the global provider; the cleanup flushes
// pending spans.
func ProvideTracerProvider(conf Conf) (*sdktrace.TracerProvider, func(), error) {
	return InitTracerProvider(context.Background(), conf)
}

// InitTracerProvider installs the W3C propagators and a global provider.
// Without export every span is still sampled, so trace ids show up in logs
// and response headers.
func InitTracerProvider(ctx context.Context, conf Conf) (*sdktrace.TracerProvider, func(), error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !conf.Enabled {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
		otel.SetTracerProvider(tp)
		return tp, func() { _ = tp.Shutdown(context.Background()) }, nil
	}

	conf.SetDefaults()
	res, err := conf.resource(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}
	exporter, err := newExporter(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(conf.SampleRatio))),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(time.Duration(conf.BatchTimeout)*time.Second),
			sdktrace.WithExportTimeout(conf.exportTimeout()),
			sdktrace.WithMaxExportBatchSize(conf.MaxExportBatchSize),
		),
	)
	otel.SetTracerProvider(tp)
	log.Infow("OpenTelemetry tracing initialized",
		"protocol", conf.Protocol,
		"endpoint", conf.Endpoint,
		"service", conf.ServiceName,
		"sampleRatio", conf.SampleRatio,
	)

	cleanup := func() {
		timeout := conf.shutdownTimeout()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := tp.Shutdown(ctx)
		switch {
		case err == nil:
		case errors.Is(err, context.DeadlineExceeded):
			log.Warnw("tracer provider shutdown timed out", "timeout", timeout)
		default:
			log.Errorw("failed to shutdown tracer provider", "error", err)
		}
	}
	return tp, cleanup, nil
}

// newExporter builds the OTLP client for conf.Protocol.
func newExporter(ctx context.Context, conf Conf) (sdktrace.SpanExporter, error) {
	var client otlptrace.Client
	switch conf.Protocol {
	case "grpc":
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpoint(conf.Endpoint),
			otlptracegrpc.WithTimeout(conf.exportTimeout()),
			otlptracegrpc.WithHeaders(conf.Headers),
		}
		if conf.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		client = otlptracegrpc.NewClient(opts...)
	case "http":
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(conf.Endpoint),
			otlptracehttp.WithTimeout(conf.exportTimeout()),
			otlptracehttp.WithHeaders(conf.Headers),
		}
		if conf.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		client = otlptracehttp.NewClient(opts...)
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", conf.Protocol)
	}
	return otlptrace.New(ctx, client)
}
