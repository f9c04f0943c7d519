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

// ParentKey identifies a bucket of siblings. The zero value is RootKey and
// never equals the key of a real item.
type ParentKey struct {
	id  uint64
	set bool
}

// RootKey buckets the top-level items.
var RootKey = ParentKey{}

// KeyOf returns the bucket key for the children of item id.
func KeyOf(id uint64) ParentKey {
	return ParentKey{id: id, set: true}
}

// IsRoot reports whether k is RootKey.
func (k ParentKey) IsRoot() bool {
	return !k.set
}

// Tree maps a parent key to its direct children, in input order.
type Tree map[ParentKey][]*model.MenuItem

// Children returns the children bucketed under key.
func (t Tree) Children(key ParentKey) []*model.MenuItem {
	return t[key]
}

// BuildTree buckets items by parent. Items whose parent is not part of the
// same set are treated as top-level items.
func BuildTree(items []*model.MenuItem) Tree {
	known := make(map[uint64]struct{}, len(items))
	for _, item := range items {
		known[item.ID] = struct{}{}
	}

	tree := make(Tree)
	for _, item := range items {
		key := RootKey
		if item.ParentId != nil {
			if _, ok := known[*item.ParentId]; ok {
				key = KeyOf(*item.ParentId)
			} else {
				log.Warnw("parent menu item not found, rendering as top level",
					"item", item.ID,
					"parentId", *item.ParentId,
				)
			}
		}
		tree[key] = append(tree[key], item)
	}
	return tree
}
