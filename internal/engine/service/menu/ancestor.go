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

// IDSet is a set of menu item ids.
type IDSet map[uint64]struct{}

// Has reports whether id is in the set.
func (s IDSet) Has(id uint64) bool {
	_, ok := s[id]
	return ok
}

// Index maps item ids to items.
func Index(items []*model.MenuItem) map[uint64]*model.MenuItem {
	byID := make(map[uint64]*model.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}

// AncestorPath returns the ids from item up to its root, inclusive. The walk
// stops at a missing parent and at the first repeated id.
func AncestorPath(item *model.MenuItem, byID map[uint64]*model.MenuItem) IDSet {
	path := make(IDSet)
	for current := item; current != nil; {
		if path.Has(current.ID) {
			log.Warnw("cycle in menu item parents", "item", current.ID)
			break
		}
		path[current.ID] = struct{}{}
		if current.ParentId == nil {
			break
		}
		current = byID[*current.ParentId]
	}
	return path
}
