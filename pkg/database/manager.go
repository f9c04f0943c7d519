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
	"context"
	"fmt"
	"time"

	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/go-arcade/treemenu/pkg/retry"
	"github.com/go-arcade/treemenu/pkg/trace/inject"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Manager owns the MySQL connection used by the menu repositories
type Manager interface {
	// MySQL returns the MySQL database connection
	MySQL() *gorm.DB

	// Close closes all database connections
	Close() error
}

type managerImpl struct {
	mysql *gorm.DB
}

// MySQL returns the MySQL database connection
func (m *managerImpl) MySQL() *gorm.DB {
	return m.mysql
}

// Close closes all database connections
func (m *managerImpl) Close() error {
	if m.mysql == nil {
		return nil
	}
	sqlDB, err := m.mysql.DB()
	if err != nil {
		return fmt.Errorf("failed to get MySQL handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close MySQL: %w", err)
	}
	return nil
}

// NewManager creates a new database manager with a MySQL connection
func NewManager(cfg Database) (Manager, error) {
	mysqlDB, err := newMySQLConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MySQL: %w", err)
	}
	log.Info("MySQL database connected successfully")
	return &managerImpl{mysql: mysqlDB}, nil
}

// NewManagerFromDB wraps an already opened connection.
func NewManagerFromDB(db *gorm.DB) Manager {
	return &managerImpl{mysql: db}
}

// GormConfig returns the gorm configuration shared by every connection:
// t_ table prefix, singular table names and the zap-backed logger.
func GormConfig(output bool) *gorm.Config {
	logConfig := gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Info,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	}

	var gormLogger gormlogger.Interface
	if output {
		gormLogger = NewGormLoggerAdapter(logConfig, gormlogger.Info)
	} else {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	return &gorm.Config{
		Logger: gormLogger,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	}
}

// newMySQLConnection opens the default source, registers dbresolver when
// primary or replica sources are configured, then the tracing plugin.
func newMySQLConnection(cfg Database) (*gorm.DB, error) {
	mysqlCfg := cfg.MySQL
	if err := mysqlCfg.Source.validate(); err != nil {
		return nil, err
	}

	// 启动时 MySQL 可能尚未就绪，按指数退避重试
	var db *gorm.DB
	err := retry.Do(context.Background(), func(context.Context) error {
		var openErr error
		db, openErr = gorm.Open(mysql.Open(mysqlCfg.DSN()), GormConfig(cfg.OutPut))
		return openErr
	},
		retry.Attempts(cfg.ConnectRetries),
		retry.Backoff(cfg.ConnectBackoffDuration(), 30*time.Second),
		retry.OnRetry(func(attempt int, wait time.Duration, err error) {
			log.Warnw("MySQL not reachable, retrying", "host", mysqlCfg.Host, "attempt", attempt, "wait", wait, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if len(mysqlCfg.Primary) > 0 || len(mysqlCfg.Replicas) > 0 {
		if err := registerResolver(db, cfg); err != nil {
			return nil, err
		}
		log.Infow("MySQL read-write separation enabled",
			"primary", len(mysqlCfg.Primary),
			"replicas", len(mysqlCfg.Replicas),
		)
	}

	if err := inject.RegisterGormPlugin(db, cfg.OutPut, true); err != nil {
		return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime())

	return db, nil
}
