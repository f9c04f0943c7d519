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

package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// ErrRouteNotFound is returned for unknown route names and for routes whose
// path needs parameters.
var ErrRouteNotFound = errors.New("route not found")

// RouteResolver reverses fiber route names into paths. It is created before
// the app so the menu service can depend on it, and bound once routes exist.
type RouteResolver struct {
	mu  sync.RWMutex
	app *fiber.App
}

func NewRouteResolver() *RouteResolver {
	return &RouteResolver{}
}

// Bind attaches the app whose named routes are resolved.
func (r *RouteResolver) Bind(app *fiber.App) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.app = app
}

// ResolveRoute returns the path registered under name.
func (r *RouteResolver) ResolveRoute(name string) (string, error) {
	r.mu.RLock()
	app := r.app
	r.mu.RUnlock()

	if app == nil || name == "" {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	route := app.GetRoute(name)
	if route.Name != name || route.Path == "" {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}
	if strings.ContainsAny(route.Path, ":*+") {
		return "", fmt.Errorf("%w: %q needs parameters", ErrRouteNotFound, name)
	}
	return route.Path, nil
}
