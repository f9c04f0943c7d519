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

package menu

import (
	"context"
	"html/template"
	"slices"
	"time"

	"github.com/go-arcade/treemenu/internal/engine/model"
	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/go-arcade/treemenu/pkg/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ItemFetcher loads every item of a menu in a single round trip, with parent
// and menu ids populated. An unknown slug yields no items and no error.
type ItemFetcher interface {
	FetchItems(ctx context.Context, slug string) ([]model.MenuItem, error)
}

// MetricsRecorder observes menu renders.
type MetricsRecorder interface {
	RecordRender(slug string, items int, duration time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordRender(string, int, time.Duration, error) {}

// DrawFunc renders a menu for the page at currentPath. It is handed to the
// page layer, which never sees the fetcher.
type DrawFunc func(slug, currentPath string) (template.HTML, error)

// MenuService 菜单渲染服务
type MenuService struct {
	fetcher  ItemFetcher
	resolver *URLResolver
	metrics  MetricsRecorder
}

func NewMenuService(fetcher ItemFetcher, routes RouteResolver, metrics MetricsRecorder) *MenuService {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &MenuService{
		fetcher:  fetcher,
		resolver: NewURLResolver(routes),
		metrics:  metrics,
	}
}

// RenderMenu renders the menu identified by slug with the item matching
// currentPath marked active. It issues exactly one fetch; an empty menu
// renders as "". Fetch errors are returned unchanged.
func (s *MenuService) RenderMenu(ctx context.Context, slug, currentPath string) (string, error) {
	ctx, span := trace.Start(ctx, "menu.RenderMenu")
	defer span.End()
	span.SetAttributes(
		attribute.String("menu.slug", slug),
		attribute.String("menu.path", currentPath),
	)

	start := time.Now()
	rows, err := s.fetcher.FetchItems(ctx, slug)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		s.metrics.RecordRender(slug, 0, time.Since(start), err)
		return "", err
	}
	span.SetAttributes(attribute.Int("menu.items", len(rows)))

	out, err := s.render(rows, currentPath)
	s.metrics.RecordRender(slug, len(rows), time.Since(start), err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.WithContext(ctx).Errorw("failed to render menu", "slug", slug, "error", err)
		return "", err
	}
	return out, nil
}

func (s *MenuService) render(rows []model.MenuItem, currentPath string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	items := make([]*model.MenuItem, len(rows))
	for i := range rows {
		items[i] = &rows[i]
	}
	slices.SortStableFunc(items, model.CompareMenuItems)

	urls := s.resolver.resolveAll(items)
	href := func(item *model.MenuItem) string { return urls[item.ID] }

	active := FindActive(items, currentPath, href)
	ancestors := IDSet{}
	if active != nil {
		ancestors = AncestorPath(active, Index(items))
	}

	level := &Level{
		Tree:      BuildTree(items),
		Active:    active,
		Ancestors: ancestors,
		Href:      href,
	}
	return level.RenderString()
}

// Drawer binds ctx to a DrawFunc for one page render.
func (s *MenuService) Drawer(ctx context.Context) DrawFunc {
	return func(slug, currentPath string) (template.HTML, error) {
		out, err := s.RenderMenu(ctx, slug, currentPath)
		if err != nil {
			return "", err
		}
		return template.HTML(out), nil
	}
}
