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

package middleware

import (
	"strings"

	"github.com/go-arcade/treemenu/pkg/http"
	"github.com/go-arcade/treemenu/pkg/trace/inject"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware lets other sites fetch menu fragments. The endpoints are
// read only; credentials are allowed only for an explicit origin list.
func CorsMiddleware(conf *http.Http) fiber.Handler {
	origins := "*"
	if conf != nil && len(conf.CorsOrigins) > 0 {
		origins = strings.Join(conf.CorsOrigins, ",")
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions}, ","),
		AllowHeaders:     strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, RequestIdHeader}, ","),
		ExposeHeaders:    RequestIdHeader + "," + inject.TraceIdHeader,
		AllowCredentials: origins != "*",
	})
}
