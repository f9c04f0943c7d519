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
	"fmt"

	"github.com/go-arcade/treemenu/internal/engine/bootstrap"
	"github.com/go-arcade/treemenu/internal/engine/service/seed"
	"github.com/go-arcade/treemenu/pkg/database"
	"github.com/spf13/cobra"
)

var (
	seedFile   string
	renderSlug string
	renderPath string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the menu tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.AutoMigrate(app.DB.Database()); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		app.Logger.Log.Infow("menu tables migrated", "models", len(database.GetRegisteredModels()))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load menu definitions, the demo main menu by default",
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := []seed.Definition{seed.Demo}
		if seedFile != "" {
			loaded, err := seed.LoadFile(seedFile)
			if err != nil {
				return err
			}
			defs = loaded
		}

		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.AutoMigrate(app.DB.Database()); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		for _, def := range defs {
			res, err := seed.Apply(cmd.Context(), app.Repos.Menu, def)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d items (created=%t)\n", res.Slug, res.Items, res.Created)
		}
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the HTML of one menu for a request path",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}
		defer cleanup()

		slug := renderSlug
		if slug == "" {
			slug = app.AppConf.Menu.DefaultSlug
		}
		out, err := app.Menu.RenderMenu(cmd.Context(), slug, renderPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "yaml file with menu definitions, e.g. conf.d/menus.yaml")
	renderCmd.Flags().StringVarP(&renderSlug, "menu", "m", "", "menu slug, defaults to menu.defaultSlug")
	renderCmd.Flags().StringVarP(&renderPath, "path", "p", "/", "request path used to find the active item")
}
