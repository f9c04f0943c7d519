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

package menu

// Conf 页面菜单配置
type Conf struct {
	// DefaultSlug 页面布局中渲染的菜单
	DefaultSlug string `mapstructure:"defaultSlug"`
	// SiteName 页面标题后缀
	SiteName string `mapstructure:"siteName"`
}

func (c *Conf) SetDefaults() {
	if c.DefaultSlug == "" {
		c.DefaultSlug = "main_menu"
	}
	if c.SiteName == "" {
		c.SiteName = "Tree Menu"
	}
}
