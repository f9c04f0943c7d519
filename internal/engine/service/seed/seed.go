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

package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-arcade/treemenu/internal/engine/model"
	"github.com/go-arcade/treemenu/internal/engine/repo"
	"github.com/go-arcade/treemenu/pkg/log"
	"sigs.k8s.io/yaml"
)

// Node is one menu item together with its children. Sibling order is the
// order of the list.
type Node struct {
	Title    string `json:"title"`
	Url      string `json:"url,omitempty"`
	NamedUrl string `json:"namedUrl,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Definition describes a whole menu.
type Definition struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Items []Node `json:"items"`
}

// Result reports what Apply did to one menu.
type Result struct {
	Slug    string
	Created bool
	Items   int64
}

// Demo is the three level main menu served by the demo pages.
var Demo = Definition{
	Slug: "main_menu",
	Name: "Main menu",
	Items: []Node{
		{Title: "Home", NamedUrl: "home"},
		{Title: "About", NamedUrl: "about"},
		{Title: "Services", NamedUrl: "services", Children: []Node{
			{Title: "Web Development", Url: "/services/web-development/", Children: []Node{
				{Title: "Frontend", Url: "/services/frontend/"},
				{Title: "Backend", Url: "/services/backend/"},
			}},
			{Title: "Mobile Apps", Url: "/services/mobile-apps/"},
			{Title: "Consulting", Url: "/services/consulting/"},
			{Title: "Support", Url: "/services/support/"},
		}},
		{Title: "Contact", NamedUrl: "contact"},
	},
}

// Validate checks required fields across the whole tree.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Slug) == "" {
		return errors.New("menu slug is required")
	}
	var walk func(nodes []Node, path string) error
	walk = func(nodes []Node, path string) error {
		for i, n := range nodes {
			at := fmt.Sprintf("%s[%d]", path, i)
			if strings.TrimSpace(n.Title) == "" {
				return fmt.Errorf("menu %s: item %s has no title", d.Slug, at)
			}
			if err := walk(n.Children, at+".children"); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(d.Items, "items")
}

// LoadFile reads menu definitions from a YAML (or JSON) file holding a list
// of definitions.
func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse menu file %s: %w", path, err)
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// Apply replaces the items of the menu described by def, creating the menu
// when missing. Running it twice leaves the same tree behind.
func Apply(ctx context.Context, menuRepo repo.IMenuRepository, def Definition) (Result, error) {
	if err := def.Validate(); err != nil {
		return Result{}, err
	}
	name := def.Name
	if name == "" {
		name = def.Slug
	}

	res := Result{Slug: def.Slug}
	err := menuRepo.Transaction(ctx, func(tx repo.IMenuRepository) error {
		menu, created, err := tx.GetOrCreateMenu(ctx, def.Slug, name)
		if err != nil {
			return fmt.Errorf("failed to get menu %s: %w", def.Slug, err)
		}
		res.Created = created

		if !created {
			if err := tx.DeleteItems(ctx, menu.ID); err != nil {
				return fmt.Errorf("failed to delete items of menu %s: %w", def.Slug, err)
			}
		}

		if err := createNodes(ctx, tx, menu.ID, nil, def.Items); err != nil {
			return err
		}

		res.Items, err = tx.CountItems(ctx, menu.ID)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	log.Infow("menu seeded", "slug", res.Slug, "created", res.Created, "items", res.Items)
	return res, nil
}

func createNodes(ctx context.Context, tx repo.IMenuRepository, menuId uint64, parentId *uint64, nodes []Node) error {
	for i, n := range nodes {
		item := &model.MenuItem{
			MenuId:    menuId,
			ParentId:  parentId,
			Title:     n.Title,
			Url:       n.Url,
			NamedUrl:  n.NamedUrl,
			SortOrder: i,
		}
		if err := tx.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("failed to create menu item %q: %w", n.Title, err)
		}
		id := item.ID
		if err := createNodes(ctx, tx, menuId, &id, n.Children); err != nil {
			return err
		}
	}
	return nil
}
