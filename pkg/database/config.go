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
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	dataTablePrefix = "t_"
	defaultPort     = "3306"
)

// Source is one MySQL endpoint.
type Source struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// DSN builds the go-sql-driver DSN, with parseTime so timestamps scan into time.Time.
func (s Source) DSN() string {
	port := s.Port
	if port == "" {
		port = defaultPort
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		s.User, s.Password, s.Host, port, s.DBName)
}

func (s Source) validate() error {
	if s.Host == "" || s.User == "" || s.DBName == "" {
		return fmt.Errorf("incomplete database source %q: host, user and dbname are required", s.Host)
	}
	return nil
}

// MySQLConfig is the default source plus optional dbresolver sources.
// Menu reads go to Replicas when any are configured; writes (seeding) go to
// Primary, or to the default source when Primary is empty.
type MySQLConfig struct {
	Source   `mapstructure:",squash"`
	Primary  []Source `mapstructure:"primary"`
	Replicas []Source `mapstructure:"replicas"`
}

// Database 数据库连接池与数据源配置，时间单位为秒
type Database struct {
	OutPut       bool `mapstructure:"output"`
	MaxOpenConns int  `mapstructure:"maxOpenConns"`
	MaxIdleConns int  `mapstructure:"maxIdleConns"`
	MaxLifetime  int  `mapstructure:"maxLifeTime"`
	MaxIdleTime  int  `mapstructure:"maxIdleTime"`

	// 启动连接重试次数与首次退避
	ConnectRetries int `mapstructure:"connectRetries"`
	ConnectBackoff int `mapstructure:"connectBackoff"`

	MySQL MySQLConfig `mapstructure:"mysql"`
}

// SetDefaults fills the settings left at zero.
func (d *Database) SetDefaults() {
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 20
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 5
	}
	if d.MaxLifetime <= 0 {
		d.MaxLifetime = 300
	}
	if d.MaxIdleTime <= 0 {
		d.MaxIdleTime = 60
	}
	if d.ConnectRetries <= 0 {
		d.ConnectRetries = 5
	}
	if d.ConnectBackoff <= 0 {
		d.ConnectBackoff = 1
	}
	if d.MySQL.Port == "" {
		d.MySQL.Port = defaultPort
	}
}

func (d *Database) ConnMaxLifetime() time.Duration {
	return time.Duration(d.MaxLifetime) * time.Second
}

func (d *Database) ConnMaxIdleTime() time.Duration {
	return time.Duration(d.MaxIdleTime) * time.Second
}

func (d *Database) ConnectBackoffDuration() time.Duration {
	return time.Duration(d.ConnectBackoff) * time.Second
}

// dialectors opens a dialector per source.
func dialectors(sources []Source) ([]gorm.Dialector, error) {
	out := make([]gorm.Dialector, 0, len(sources))
	for _, s := range sources {
		if err := s.validate(); err != nil {
			return nil, err
		}
		out = append(out, mysql.Open(s.DSN()))
	}
	return out, nil
}
