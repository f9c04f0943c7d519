//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/go-arcade/treemenu/internal/engine/bootstrap"
	"github.com/go-arcade/treemenu/internal/engine/config"
	"github.com/go-arcade/treemenu/internal/engine/repo"
	"github.com/go-arcade/treemenu/internal/engine/router"
	"github.com/go-arcade/treemenu/internal/engine/service/menu"
	"github.com/go-arcade/treemenu/pkg/database"
	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/go-arcade/treemenu/pkg/metrics"
	"github.com/go-arcade/treemenu/pkg/shutdown"
	"github.com/go-arcade/treemenu/pkg/trace"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		log.ProviderSet,
		// 基础设施
		database.ProviderSet,
		trace.ProviderSet,
		metrics.ProviderSet,
		shutdown.ProviderSet,
		wire.Bind(new(menu.MetricsRecorder), new(*metrics.MenuMetricsRecorder)),
		// 仓储层
		repo.ProviderSet,
		// 服务层
		menu.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
