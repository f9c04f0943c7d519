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
	"github.com/go-arcade/treemenu/internal/engine/model"
	"github.com/go-arcade/treemenu/pkg/log"
)

// Placeholder is the link target of items with neither a resolvable named
// route nor an explicit URL.
const Placeholder = "#"

// RouteResolver turns a route name into a path. Unknown or unusable names
// return an error.
type RouteResolver interface {
	ResolveRoute(name string) (string, error)
}

// URLResolver computes the effective link target of a menu item.
type URLResolver struct {
	routes RouteResolver
}

func NewURLResolver(routes RouteResolver) *URLResolver {
	return &URLResolver{routes: routes}
}

// Resolve prefers the named route, then the explicit URL, then Placeholder.
// Route resolution failures never escape.
func (r *URLResolver) Resolve(item *model.MenuItem) string {
	if item.NamedUrl != "" && r.routes != nil {
		path, err := r.routes.ResolveRoute(item.NamedUrl)
		if err == nil {
			return path
		}
		log.Debugw("named route not resolved, falling back",
			"item", item.ID,
			"namedUrl", item.NamedUrl,
			"error", err,
		)
	}
	if item.Url != "" {
		return item.Url
	}
	return Placeholder
}

// resolveAll resolves every item once so later passes share the result.
func (r *URLResolver) resolveAll(items []*model.MenuItem) map[uint64]string {
	urls := make(map[uint64]string, len(items))
	for _, item := range items {
		urls[item.ID] = r.Resolve(item)
	}
	return urls
}
