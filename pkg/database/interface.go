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

package database

import "gorm.io/gorm"

// IDatabase is what repositories depend on: a handle to the primary
// connection, with replicas reachable through ReadDB.
type IDatabase interface {
	Database() *gorm.DB
}

type databaseAdapter struct {
	manager Manager
}

// NewDatabaseAdapter creates an IDatabase adapter from Manager
func NewDatabaseAdapter(manager Manager) IDatabase {
	return &databaseAdapter{manager: manager}
}

func (d *databaseAdapter) Database() *gorm.DB {
	return d.manager.MySQL()
}

type gormDatabase struct {
	db *gorm.DB
}

// Wrap exposes a plain *gorm.DB, typically a transaction, as IDatabase.
func Wrap(db *gorm.DB) IDatabase {
	return &gormDatabase{db: db}
}

func (g *gormDatabase) Database() *gorm.DB {
	return g.db
}
