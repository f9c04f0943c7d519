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

package model

import "cmp"

// Menu 菜单，按 slug 在页面中引用
type Menu struct {
	BaseModel
	Name  string     `gorm:"column:name;size:100;not null" json:"name"`           // 菜单名称
	Slug  string     `gorm:"column:slug;size:100;not null;uniqueIndex" json:"slug"` // 唯一标识，例如 main_menu
	Items []MenuItem `gorm:"foreignKey:MenuId;constraint:OnDelete:CASCADE" json:"-"`
}

func (Menu) TableName() string {
	return "t_menu"
}

// MenuItem 菜单项，ParentId 为空表示顶级菜单项
type MenuItem struct {
	BaseModel
	MenuId    uint64     `gorm:"column:menu_id;not null;index" json:"menuId"`
	ParentId  *uint64    `gorm:"column:parent_id;index" json:"parentId,omitempty"`
	Title     string     `gorm:"column:title;size:100;not null" json:"title"`
	Url       string     `gorm:"column:url;size:200" json:"url"`               // 显式 URL，例如 /about/
	NamedUrl  string     `gorm:"column:named_url;size:100" json:"namedUrl"`    // 路由名，例如 home
	SortOrder int        `gorm:"column:sort_order;default:0" json:"sortOrder"` // 数值越小越靠前
	Children  []MenuItem `gorm:"foreignKey:ParentId;constraint:OnDelete:CASCADE" json:"-"`
}

func (MenuItem) TableName() string {
	return "t_menu_item"
}

// IsRoot reports whether the item sits at the top level of its menu.
func (m *MenuItem) IsRoot() bool {
	return m.ParentId == nil
}

// HasParent reports whether the item's parent is the given id.
func (m *MenuItem) HasParent(id uint64) bool {
	return m.ParentId != nil && *m.ParentId == id
}

// CompareMenuItems orders siblings by sort order, then id.
func CompareMenuItems(a, b *MenuItem) int {
	if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
