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
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const layoutCSS = `
body { font-family: sans-serif; margin: 0; }
header { background: #f4f4f4; padding: 1rem; }
nav ul { list-style: none; padding-left: 1rem; margin: 0; }
nav li.active > a { font-weight: bold; }
main { padding: 1rem; }
`

type LayoutProps struct {
	SiteName string
	Title    string
	// Menu is trusted markup produced by the menu service
	Menu    string
	Content g.Node
}

// Layout is the page shell every demo page renders into.
func Layout(p LayoutProps) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Textf("%s | %s", p.Title, p.SiteName)),
				html.StyleEl(g.Raw(layoutCSS)),
			),
			html.Body(
				html.Header(
					html.Nav(html.Class("menu"), g.Raw(p.Menu)),
				),
				html.Main(
					html.H1(g.Text(p.Title)),
					p.Content,
				),
			),
		),
	)
}
