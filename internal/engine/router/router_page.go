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
	"unicode"
	"unicode/utf8"

	"github.com/go-arcade/treemenu/internal/engine/config"
	"github.com/go-arcade/treemenu/internal/engine/service/menu"
	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

type page struct {
	name    string
	path    string
	title   func(c *fiber.Ctx) string
	content func(c *fiber.Ctx) g.Node
}

func staticTitle(title string) func(*fiber.Ctx) string {
	return func(*fiber.Ctx) string { return title }
}

func paragraph(text string) func(*fiber.Ctx) g.Node {
	return func(*fiber.Ctx) g.Node { return html.P(g.Text(text)) }
}

// pages are the named routes menu items can point at via NamedUrl.
var pages = []page{
	{
		name:    "home",
		path:    "/",
		title:   staticTitle("Home"),
		content: paragraph("Pick any item in the menu above: the active item and the path leading to it stay expanded."),
	},
	{
		name:    "about",
		path:    "/about/",
		title:   staticTitle("About"),
		content: paragraph("Menus are stored in MySQL and rendered with a single query per menu."),
	},
	{
		name:    "services",
		path:    "/services/",
		title:   staticTitle("Services"),
		content: paragraph("The first level below the active item is expanded as well."),
	},
	{
		name:  "service_detail",
		path:  "/services/:service_name/",
		title: serviceTitle,
		content: func(c *fiber.Ctx) g.Node {
			return html.P(g.Textf("Details for %s.", serviceTitle(c)))
		},
	},
	{
		name:    "contact",
		path:    "/contact/",
		title:   staticTitle("Contact"),
		content: paragraph("Write to us any time."),
	},
}

// serviceTitle turns "web-development" into "Web Development".
func serviceTitle(c *fiber.Ctx) string {
	if t := titleize(c.Params("service_name")); t != "" {
		return t
	}
	return "Service"
}

// titleize 按 '-' '_' 分词，每个词首字母大写，按 rune 处理多字节字符
func titleize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + w[size:]
	}
	return strings.Join(words, " ")
}

func (rt *Router) pageRouter(r fiber.Router) {
	for _, p := range pages {
		r.Get(p.path, rt.renderPage(p)).Name(p.name)
	}
}

// pagePath normalizes the request path to the trailing-slash form routes and
// menu items are registered with.
func pagePath(c *fiber.Ctx) string {
	path := c.Path()
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// menuConf prefers the live configuration, so edits to the menu section of
// the config file apply without a restart.
func (rt *Router) menuConf() menu.Conf {
	if live := config.Current(); live != nil {
		return live.Menu
	}
	return rt.Conf
}

func (rt *Router) renderPage(p page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		conf := rt.menuConf()
		nav, err := rt.Menu.Drawer(c.UserContext())(conf.DefaultSlug, pagePath(c))
		if err != nil {
			return err
		}

		c.Type("html", "utf-8")
		return Layout(LayoutProps{
			SiteName: conf.SiteName,
			Title:    p.title(c),
			Menu:     string(nav),
			Content:  p.content(c),
		}).Render(c)
	}
}
