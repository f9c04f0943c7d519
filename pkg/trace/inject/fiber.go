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

package inject

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	fiberTracerName = "github.com/go-arcade/treemenu/pkg/trace/inject/fiber"

	// TraceIdHeader 回写到响应，便于和日志中的 trace_id 对照
	TraceIdHeader = "X-Trace-Id"
)

// headerCarrier 从 fasthttp 读取传播头；fasthttp 规范化了 key 的大小写，
// propagator 使用小写 key
func headerCarrier(c *fiber.Ctx) propagation.MapCarrier {
	carrier := propagation.MapCarrier{}
	c.Request().Header.VisitAll(func(key, value []byte) {
		carrier.Set(strings.ToLower(string(key)), string(value))
	})
	return carrier
}

// FiberMiddleware opens a server span per request, continuing an incoming
// W3C trace, and stores it in UserContext for the handlers below.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(fiberTracerName)
	return func(c *fiber.Ctx) error {
		parent := c.UserContext()
		if parent == nil {
			parent = context.Background()
		}
		parent = otel.GetTextMapPropagator().Extract(parent, headerCarrier(c))

		attrs := []attribute.KeyValue{
			semconv.HTTPRequestMethodKey.String(c.Method()),
			semconv.URLPath(c.Path()),
			semconv.URLScheme(c.Protocol()),
		}
		if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
			attrs = append(attrs, semconv.UserAgentOriginal(ua))
		}
		ctx, span := tracer.Start(parent, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		c.SetUserContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set(TraceIdHeader, sc.TraceID().String())
		}

		err := c.Next()

		status := c.Response().StatusCode()
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= fiber.StatusBadRequest:
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
		default:
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}
