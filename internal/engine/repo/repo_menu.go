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

package repo

import (
	"context"
	"errors"

	"github.com/go-arcade/treemenu/internal/engine/model"
	"github.com/go-arcade/treemenu/pkg/database"
	"gorm.io/gorm"
)

var menuItemColumns = []string{
	"t_menu_item.id",
	"t_menu_item.menu_id",
	"t_menu_item.parent_id",
	"t_menu_item.title",
	"t_menu_item.url",
	"t_menu_item.named_url",
	"t_menu_item.sort_order",
}

type IMenuRepository interface {
	FetchItems(ctx context.Context, slug string) ([]model.MenuItem, error)
	GetMenuBySlug(ctx context.Context, slug string) (*model.Menu, error)
	GetOrCreateMenu(ctx context.Context, slug, name string) (*model.Menu, bool, error)
	CreateItem(ctx context.Context, item *model.MenuItem) error
	DeleteItems(ctx context.Context, menuId uint64) error
	CountItems(ctx context.Context, menuId uint64) (int64, error)
	Transaction(ctx context.Context, fn func(repo IMenuRepository) error) error
}

type MenuRepo struct {
	database.IDatabase
}

func NewMenuRepo(db database.IDatabase) IMenuRepository {
	return &MenuRepo{
		IDatabase: db,
	}
}

// FetchItems 一次查询获取菜单下的全部菜单项
// menu 通过 JOIN 按 slug 过滤，parent_id 与 menu_id 直接随行返回，
// 结果按 (sort_order, id) 排序，调用方无需再次访问数据库
func (r *MenuRepo) FetchItems(ctx context.Context, slug string) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := database.ReadDB(r.Database().WithContext(ctx)).
		Model(&model.MenuItem{}).
		Select(menuItemColumns).
		Joins("JOIN t_menu ON t_menu.id = t_menu_item.menu_id").
		Where("t_menu.slug = ?", slug).
		Order("t_menu_item.sort_order ASC, t_menu_item.id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetMenuBySlug 根据 slug 获取菜单，不存在时返回 gorm.ErrRecordNotFound
// 走主库，避免写入后从库延迟导致重复创建
func (r *MenuRepo) GetMenuBySlug(ctx context.Context, slug string) (*model.Menu, error) {
	var menu model.Menu
	err := database.WriteDB(r.Database().WithContext(ctx)).
		Select("id", "name", "slug", "created_at", "updated_at").
		Where("slug = ?", slug).First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// GetOrCreateMenu 获取菜单，不存在则创建；第二个返回值表示是否新建
func (r *MenuRepo) GetOrCreateMenu(ctx context.Context, slug, name string) (*model.Menu, bool, error) {
	menu, err := r.GetMenuBySlug(ctx, slug)
	if err == nil {
		return menu, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	menu = &model.Menu{Name: name, Slug: slug}
	if err := r.Database().WithContext(ctx).Create(menu).Error; err != nil {
		return nil, false, err
	}
	return menu, true, nil
}

// CreateItem 创建菜单项
func (r *MenuRepo) CreateItem(ctx context.Context, item *model.MenuItem) error {
	return r.Database().WithContext(ctx).Omit("Children").Create(item).Error
}

// DeleteItems 删除菜单下的全部菜单项
func (r *MenuRepo) DeleteItems(ctx context.Context, menuId uint64) error {
	return r.Database().WithContext(ctx).
		Where("menu_id = ?", menuId).
		Delete(&model.MenuItem{}).Error
}

// CountItems 统计菜单下的菜单项数量
func (r *MenuRepo) CountItems(ctx context.Context, menuId uint64) (int64, error) {
	return Count(r.Database().WithContext(ctx).Model(&model.MenuItem{}).Where("menu_id = ?", menuId))
}

// Transaction 在同一事务中执行 fn
func (r *MenuRepo) Transaction(ctx context.Context, fn func(repo IMenuRepository) error) error {
	return r.Database().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MenuRepo{IDatabase: database.Wrap(tx)})
	})
}
