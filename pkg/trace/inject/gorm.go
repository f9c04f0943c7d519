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
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const gormTracerName = "github.com/go-arcade/treemenu/pkg/trace/inject/gorm"

type gormContextKey int

const (
	spanKey gormContextKey = iota
	startKey
)

// GormPlugin implements gorm.Plugin, opening a client span per statement.
type GormPlugin struct {
	// WithQuery records the SQL text on the span
	WithQuery bool
	// WithRows records rows affected
	WithRows bool
}

func (p *GormPlugin) Name() string {
	return "opentelemetry"
}

func (p *GormPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		name   string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"gorm:create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"gorm:query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"gorm:update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"gorm:delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"gorm:row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"gorm:raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, h := range hooks {
		if err := h.before("opentelemetry:before_"+h.name, p.before(h.name)); err != nil {
			return err
		}
		if err := h.after("opentelemetry:after_"+h.name, p.after); err != nil {
			return err
		}
	}
	return nil
}

func (p *GormPlugin) before(callback string) func(*gorm.DB) {
	operation := strings.TrimPrefix(callback, "gorm:")
	return func(db *gorm.DB) {
		if db.Statement == nil {
			return
		}
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}

		ctx, span := otel.Tracer(gormTracerName).Start(ctx, "gorm."+operation, trace.WithSpanKind(trace.SpanKindClient))
		span.SetAttributes(
			attribute.String("db.system", "mysql"),
			attribute.String("db.operation", operation),
		)
		if db.Statement.Schema != nil && db.Statement.Schema.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Schema.Table))
		}

		ctx = context.WithValue(ctx, spanKey, span)
		db.Statement.Context = context.WithValue(ctx, startKey, time.Now())
	}
}

func (p *GormPlugin) after(db *gorm.DB) {
	if db.Statement == nil || db.Statement.Context == nil {
		return
	}
	span, ok := db.Statement.Context.Value(spanKey).(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if start, ok := db.Statement.Context.Value(startKey).(time.Time); ok {
		span.SetAttributes(attribute.Int64("db.duration_ms", time.Since(start).Milliseconds()))
	}
	if p.WithQuery && db.Statement.SQL.Len() > 0 {
		span.SetAttributes(attribute.String("db.statement", db.Statement.SQL.String()))
	}
	if p.WithRows {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}

	if err := db.Error; err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return
	}
	span.SetStatus(codes.Ok, "")
}

// RegisterGormPlugin registers the tracing plugin on db.
func RegisterGormPlugin(db *gorm.DB, withQuery bool, withRows bool) error {
	return db.Use(&GormPlugin{
		WithQuery: withQuery,
		WithRows:  withRows,
	})
}
