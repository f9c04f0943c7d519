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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[log]
output = "stdout"
level = "DEBUG"

[http]
port = 9000
accessLog = true

[database]
output = false
maxOpenConns = 50

[database.mysql]
host = "db.internal"
user = "treemenu"
password = "secret"
dbname = "treemenu"

[[database.mysql.replicas]]
host = "replica-1.internal"
user = "reader"
dbname = "treemenu"

[trace]
enabled = false
protocol = "http"

[menu]
siteName = "Acme"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	conf, err := LoadConfigFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", conf.Log.Level)
	assert.Equal(t, 9000, conf.Http.Port)
	assert.True(t, conf.Http.AccessLog)
	assert.Equal(t, "0.0.0.0", conf.Http.Host)
	assert.Equal(t, 10, conf.Http.ShutdownTimeout)

	assert.Equal(t, 50, conf.Database.MaxOpenConns)
	assert.Equal(t, 5, conf.Database.MaxIdleConns)
	assert.Equal(t, "db.internal", conf.Database.MySQL.Host)
	assert.Equal(t, "3306", conf.Database.MySQL.Port)
	require.Len(t, conf.Database.MySQL.Replicas, 1)
	assert.Equal(t, "replica-1.internal", conf.Database.MySQL.Replicas[0].Host)

	assert.Equal(t, "http", conf.Trace.Protocol)
	assert.Equal(t, 9090, conf.Metrics.Port)

	assert.Equal(t, "main_menu", conf.Menu.DefaultSlug)
	assert.Equal(t, "Acme", conf.Menu.SiteName)
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	// only keys present in the file can be overridden
	t.Setenv("TREEMENU_MENU_SITENAME", "Override")
	t.Setenv("TREEMENU_HTTP_PORT", "9100")

	conf, err := LoadConfigFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, "Override", conf.Menu.SiteName)
	assert.Equal(t, 9100, conf.Http.Port)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestProviders(t *testing.T) {
	conf, err := LoadConfigFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Same(t, &conf.Http, ProvideHttpConfig(conf))
	assert.Same(t, &conf.Log, ProvideLogConfig(conf))
	assert.Equal(t, conf.Database, ProvideDatabaseConfig(conf))
	assert.Equal(t, "Acme", ProvideMenuConfig(conf).SiteName)
	assert.False(t, ProvideTraceConfig(conf).Enabled)
}

func TestNewConf_Current(t *testing.T) {
	conf := NewConf(writeConfig(t, sampleConfig))
	require.NotNil(t, conf)

	assert.Same(t, conf, Current())
	assert.Equal(t, "Acme", Current().Menu.SiteName)
	assert.Equal(t, "main_menu", Current().Menu.DefaultSlug)

	// 只加载一次
	assert.Same(t, conf, NewConf(filepath.Join(t.TempDir(), "other.toml")))
}
