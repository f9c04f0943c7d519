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
	"strconv"
	"strings"

	"github.com/go-arcade/treemenu/internal/engine/model"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

const (
	levelClassPrefix = "menu-level-"
	activeClass      = "active"
	collapsedStyle   = "display:none;"
)

// Level renders one menu tree. It only reads its fields.
type Level struct {
	Tree      Tree
	Active    *model.MenuItem
	Ancestors IDSet
	Href      func(*model.MenuItem) string
}

// Render returns the list for the children of key, or nil when there are
// none. Collapsed subtrees are still emitted inside a hidden container.
func (l *Level) Render(key ParentKey, depth int) g.Node {
	children := l.Tree.Children(key)
	if len(children) == 0 {
		return nil
	}

	entries := make([]g.Node, 0, len(children))
	for _, child := range children {
		entries = append(entries, l.entry(child, depth))
	}

	return html.Ul(
		html.Class(levelClassPrefix+strconv.Itoa(depth)),
		g.Group(entries),
	)
}

func (l *Level) entry(item *model.MenuItem, depth int) g.Node {
	subtree := l.Render(KeyOf(item.ID), depth+1)
	if subtree != nil && !l.expanded(item) {
		subtree = html.Div(html.Style(collapsedStyle), subtree)
	}

	return html.Li(
		g.If(l.isActive(item), html.Class(activeClass)),
		html.A(html.Href(l.Href(item)), g.Text(item.Title)),
		subtree,
	)
}

func (l *Level) isActive(item *model.MenuItem) bool {
	return l.Active != nil && item.ID == l.Active.ID
}

// expanded reports whether item's children are shown: item lies on the path
// to the active item, or item is a direct child of it.
func (l *Level) expanded(item *model.MenuItem) bool {
	if l.Ancestors.Has(item.ID) {
		return true
	}
	return l.Active != nil && item.HasParent(l.Active.ID)
}

// RenderString renders the whole tree from the root bucket.
func (l *Level) RenderString() (string, error) {
	node := l.Render(RootKey, 0)
	if node == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := node.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
