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
	"strings"

	httpx "github.com/go-arcade/treemenu/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) menuRouter(r fiber.Router) {
	r.Get("/menus/:slug", rt.drawMenu)
}

// drawMenu renders a menu fragment, e.g. GET /api/v1/menus/main_menu?path=/about/
func (rt *Router) drawMenu(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return httpx.WithRepErr(c, fiber.StatusBadRequest, httpx.MenuSlugIsEmpty, c.Path())
	}

	out, err := rt.Menu.RenderMenu(c.UserContext(), slug, c.Query("path"))
	if err != nil {
		return err
	}

	return httpx.WithRepHTML(c, out)
}
