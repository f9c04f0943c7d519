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

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/treemenu/internal/engine/service/menu"
	"github.com/go-arcade/treemenu/pkg/database"
	"github.com/go-arcade/treemenu/pkg/http"
	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/go-arcade/treemenu/pkg/metrics"
	"github.com/go-arcade/treemenu/pkg/trace"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 TREEMENU_DATABASE_MYSQL_HOST
const EnvPrefix = "TREEMENU"

type AppConfig struct {
	Log      log.Conf
	Http     http.Http
	Database database.Database
	Metrics  metrics.MetricsConfig
	Trace    trace.Conf
	Menu     menu.Conf
}

var (
	cfg  *AppConfig
	once sync.Once
	mu   sync.RWMutex
)

func NewConf(confDir string) *AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		mu.Lock()
		cfg = loaded
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// Current returns the last configuration read from disk, including changes
// picked up by the file watcher.
func Current() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func newViper(confDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(confDir) //文件名
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	c.Http.SetDefaults()
	c.Database.SetDefaults()
	c.Metrics.SetDefaults()
	c.Menu.SetDefaults()
	return &c, nil
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (*AppConfig, error) {
	v := newViper(confDir)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	loaded, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("The configuration changes, re-analyze the configuration file: %s", e.Name)
		changed, err := unmarshal(v)
		if err != nil {
			log.Errorw("failed to reload configuration", "path", e.Name, "error", err)
			return
		}
		mu.Lock()
		cfg = changed
		mu.Unlock()
		log.SetLevel(changed.Log.Level)
	})
	v.WatchConfig()

	log.Infow("config file loaded",
		"path", confDir,
	)
	return loaded, nil
}
