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

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// ReadDB routes the statement to a replica. Without a registered resolver
// the clause is a no-op and the default source serves it.
func ReadDB(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Read)
}

// WriteDB pins the statement to a primary source.
func WriteDB(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Write)
}

// registerResolver 仅在配置了 primary 或 replicas 时调用
func registerResolver(db *gorm.DB, cfg Database) error {
	sources, err := dialectors(cfg.MySQL.Primary)
	if err != nil {
		return fmt.Errorf("failed to build primary sources: %w", err)
	}
	replicas, err := dialectors(cfg.MySQL.Replicas)
	if err != nil {
		return fmt.Errorf("failed to build replica sources: %w", err)
	}

	resolver := dbresolver.Register(dbresolver.Config{
		Sources:           sources,
		Replicas:          replicas,
		Policy:            dbresolver.RandomPolicy{},
		TraceResolverMode: cfg.OutPut,
	}).
		SetConnMaxIdleTime(cfg.ConnMaxIdleTime()).
		SetConnMaxLifetime(cfg.ConnMaxLifetime()).
		SetMaxIdleConns(cfg.MaxIdleConns).
		SetMaxOpenConns(cfg.MaxOpenConns)
	if err := db.Use(resolver); err != nil {
		return fmt.Errorf("failed to register DBResolver plugin: %w", err)
	}
	return nil
}
