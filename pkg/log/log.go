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
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	once   sync.Once
	logger *zap.Logger
	sugar  *zap.SugaredLogger

	// 所有 logger 共享同一个级别，配置热加载时直接调整
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

var ProviderSet = wire.NewSet(ProvideLogger)

// Logger is the handle injected into components that log outside of the
// package-level helpers.
type Logger struct {
	Log *zap.SugaredLogger
}

func ProvideLogger(conf *Conf) (*Logger, error) {
	zl, err := NewLog(conf)
	if err != nil {
		return nil, err
	}
	return &Logger{Log: zl.Sugar()}, nil
}

// Conf 日志配置，KeepHours 沿用旧名，实际按天保留
type Conf struct {
	Output     string // stdout | file
	Format     string // console | json
	Path       string
	Filename   string
	Level      string
	KeepHours  int
	RotateSize int // MB
	RotateNum  int
}

func SetDefaults() *Conf {
	return &Conf{
		Output:     "stdout",
		Format:     "console",
		Path:       "./logs",
		Filename:   defaultFilename,
		Level:      "INFO",
		KeepHours:  7,
		RotateSize: 100,
		RotateNum:  10,
	}
}

// Validate rejects a file output without a directory and fills the rotation
// settings left at zero.
func (c *Conf) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	if c.Output != "file" {
		return nil
	}
	if c.Path == "" {
		return errors.New("log path is required when output is 'file'")
	}
	if c.RotateSize <= 0 {
		c.RotateSize = 100
	}
	if c.RotateNum <= 0 {
		c.RotateNum = 10
	}
	if c.KeepHours <= 0 {
		c.KeepHours = 7
	}
	return nil
}

// NewLog builds a logger from conf and installs it as the global one.
func NewLog(conf *Conf) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	out := zapcore.AddSync(os.Stdout)
	if conf.Output == "file" {
		out = getFileLogWriter(conf)
	}
	level.SetLevel(parseLogLevel(conf.Level))

	zl := zap.New(
		zapcore.NewCore(newEncoder(conf.Format), out, level),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)

	mu.Lock()
	logger, sugar = zl, zl.Sugar()
	mu.Unlock()

	zl.Debug("log initialized",
		zap.String("output", conf.Output),
		zap.String("level", level.Level().String()),
	)
	return zl, nil
}

func Init(conf *Conf) error {
	_, err := NewLog(conf)
	return err
}

// SetLevel changes the level of every logger built by this package and
// returns the level actually applied.
func SetLevel(s string) zapcore.Level {
	l := parseLogLevel(s)
	if level.Level() != l {
		level.SetLevel(l)
		getSugar().Infow("log level changed", "level", l.String())
	}
	return l
}

func Level() zapcore.Level {
	return level.Level()
}

// getSugar 未初始化时退回 stdout 默认配置
func getSugar() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s != nil {
		return s
	}

	once.Do(func() {
		mu.RLock()
		ready := sugar != nil
		mu.RUnlock()
		if !ready {
			_ = Init(SetDefaults())
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Sync flushes buffered entries. Errors are dropped: syncing stdout fails
// with EINVAL on some platforms.
func Sync() error {
	mu.RLock()
	zl := logger
	mu.RUnlock()
	if zl != nil {
		_ = zl.Sync()
	}
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.MessageKey = "msg"
	ec.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.DateTime))
	}
	ec.EncodeDuration = zapcore.StringDurationEncoder
	ec.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(format, "json") {
		ec.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// parseLogLevel is case-insensitive and falls back to INFO.
func parseLogLevel(s string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
