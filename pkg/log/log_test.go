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

package log

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// resetGlobal 恢复 stdout 默认 logger，避免影响其他测试
func resetGlobal(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { require.NoError(t, Init(SetDefaults())) })
}

func TestConf_Validate(t *testing.T) {
	cases := map[string]struct {
		conf    Conf
		wantErr bool
	}{
		"stdout":           {conf: Conf{Output: "stdout", Level: "INFO"}},
		"file":             {conf: Conf{Output: "file", Path: "/tmp/logs", KeepHours: 3, RotateSize: 5, RotateNum: 2}},
		"file without dir": {conf: Conf{Output: "file"}, wantErr: true},
		"unknown format":   {conf: Conf{Output: "stdout", Format: "xml"}, wantErr: true},
		"json format":      {conf: Conf{Output: "stdout", Format: "JSON"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConf_ValidateFillsRotation(t *testing.T) {
	c := Conf{Output: "file", Path: "/tmp/logs"}
	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.RotateSize)
	assert.Equal(t, 10, c.RotateNum)
	assert.Equal(t, 7, c.KeepHours)
}

func TestNewLog_File(t *testing.T) {
	resetGlobal(t)
	dir := t.TempDir()

	zl, err := NewLog(&Conf{Output: "file", Path: dir, Filename: "menu.log", Level: "info"})
	require.NoError(t, err)

	Infow("menu rendered", "slug", "main_menu")
	Debug("dropped at info level")
	_ = zl.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "menu.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "menu rendered")
	assert.Contains(t, string(data), "main_menu")
	assert.NotContains(t, string(data), "dropped at info level")
}

func TestNewLog_JSONFormat(t *testing.T) {
	resetGlobal(t)
	dir := t.TempDir()

	zl, err := NewLog(&Conf{Output: "file", Format: "json", Path: dir, Filename: "menu.json", Level: "INFO"})
	require.NoError(t, err)
	Warnw("orphan item", "id", 7)
	_ = zl.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "menu.json"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "orphan item", entry["msg"])
	assert.EqualValues(t, 7, entry["id"])
}

func TestSetLevel(t *testing.T) {
	resetGlobal(t)
	require.NoError(t, Init(&Conf{Output: "stdout", Level: "INFO"}))
	assert.Equal(t, zapcore.InfoLevel, Level())

	assert.Equal(t, zapcore.DebugLevel, SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, getSugar().Desugar().Core().Enabled(zapcore.DebugLevel))

	assert.Equal(t, zapcore.InfoLevel, SetLevel("bogus"))
	assert.False(t, getSugar().Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestGetSugar_AutoInit(t *testing.T) {
	mu.Lock()
	sugar, logger = nil, nil
	mu.Unlock()
	once = sync.Once{}

	Errorw("logged before any Init", "error", "boom")

	mu.RLock()
	defer mu.RUnlock()
	assert.NotNil(t, sugar)
}

func TestWithContext(t *testing.T) {
	require.NoError(t, Init(SetDefaults()))
	assert.Same(t, getSugar(), WithContext(context.Background()))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	assert.NotSame(t, getSugar(), WithContext(ctx))
}

func TestConcurrentLogging(t *testing.T) {
	require.NoError(t, Init(SetDefaults()))
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Infow("concurrent render", "n", i)
		}()
	}
	wg.Wait()
	assert.NoError(t, Sync())
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"Warning": zapcore.WarnLevel,
		"ERROR":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"":        zapcore.InfoLevel,
	} {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
