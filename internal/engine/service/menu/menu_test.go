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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-arcade/treemenu/internal/engine/model"
)

var errRouteNotFound = errors.New("route not found")

type fakeRoutes map[string]string

func (f fakeRoutes) ResolveRoute(name string) (string, error) {
	if path, ok := f[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", errRouteNotFound, name)
}

type countingFetcher struct {
	mu    sync.Mutex
	items map[string][]model.MenuItem
	err   error
	calls int
}

func (f *countingFetcher) FetchItems(_ context.Context, slug string) ([]model.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	src := f.items[slug]
	out := make([]model.MenuItem, len(src))
	copy(out, src)
	return out, nil
}

func (f *countingFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type renderRecord struct {
	slug  string
	items int
	err   error
}

type fakeRecorder struct {
	records []renderRecord
}

func (r *fakeRecorder) RecordRender(slug string, items int, _ time.Duration, err error) {
	r.records = append(r.records, renderRecord{slug: slug, items: items, err: err})
}

func parent(id uint64) *uint64 {
	return &id
}

func item(id uint64, parentId *uint64, title, url string, sortOrder int) model.MenuItem {
	return model.MenuItem{
		BaseModel: model.BaseModel{ID: id},
		MenuId:    1,
		ParentId:  parentId,
		Title:     title,
		Url:       url,
		SortOrder: sortOrder,
	}
}

func pointers(items []model.MenuItem) []*model.MenuItem {
	out := make([]*model.MenuItem, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// Home(/), Services(/services/) > Web(/services/web/) > WebDesign(/services/web/design/)
func servicesMenu() []model.MenuItem {
	return []model.MenuItem{
		item(1, nil, "Home", "/", 0),
		item(2, nil, "Services", "/services/", 1),
		item(3, parent(2), "Web", "/services/web/", 0),
		item(4, parent(3), "WebDesign", "/services/web/design/", 0),
	}
}
