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
	"testing"

	"github.com/go-arcade/treemenu/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(s IDSet) []uint64 {
	out := make([]uint64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

func TestAncestorPath_Chain(t *testing.T) {
	// root(1) > A(2) > B(3) > C(4), with siblings 5 under root and 6 under A
	items := pointers([]model.MenuItem{
		item(1, nil, "root", "/", 0),
		item(2, parent(1), "A", "/a/", 0),
		item(3, parent(2), "B", "/a/b/", 0),
		item(4, parent(3), "C", "/a/b/c/", 0),
		item(5, parent(1), "sibling", "/s/", 1),
		item(6, parent(2), "cousin", "/a/c/", 1),
	})
	byID := Index(items)

	path := AncestorPath(byID[4], byID)
	assert.ElementsMatch(t, []uint64{1, 2, 3, 4}, keys(path))
	assert.False(t, path.Has(5))
	assert.False(t, path.Has(6))
}

func TestAncestorPath_Root(t *testing.T) {
	items := pointers(servicesMenu())
	byID := Index(items)
	assert.ElementsMatch(t, []uint64{1}, keys(AncestorPath(byID[1], byID)))
}

func TestAncestorPath_Nil(t *testing.T) {
	assert.Empty(t, AncestorPath(nil, map[uint64]*model.MenuItem{}))
}

func TestAncestorPath_DanglingParent(t *testing.T) {
	items := pointers([]model.MenuItem{
		item(2, parent(42), "A", "/a/", 0),
		item(3, parent(2), "B", "/a/b/", 0),
	})
	byID := Index(items)
	assert.ElementsMatch(t, []uint64{2, 3}, keys(AncestorPath(byID[3], byID)))
}

func TestAncestorPath_CycleTerminates(t *testing.T) {
	items := pointers([]model.MenuItem{
		item(1, parent(3), "A", "/a/", 0),
		item(2, parent(1), "B", "/b/", 0),
		item(3, parent(2), "C", "/c/", 0),
	})
	byID := Index(items)

	path := AncestorPath(byID[2], byID)
	require.Len(t, path, 3)
	assert.ElementsMatch(t, []uint64{1, 2, 3}, keys(path))
}

func TestFindActive(t *testing.T) {
	items := pointers([]model.MenuItem{
		item(1, nil, "first", "/dup/", 0),
		item(2, nil, "second", "/dup/", 1),
		item(3, nil, "placeholder", "", 2),
	})
	href := func(it *model.MenuItem) string {
		if it.Url == "" {
			return Placeholder
		}
		return it.Url
	}

	active := FindActive(items, "/dup/", href)
	require.NotNil(t, active)
	assert.Equal(t, uint64(1), active.ID)

	assert.Nil(t, FindActive(items, "/nowhere/", href))
	assert.Nil(t, FindActive(items, "", href))
}
