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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpx "github.com/go-arcade/treemenu/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErr(t *testing.T, body io.Reader) httpx.ResponseErr {
	t.Helper()
	var rep httpx.ResponseErr
	require.NoError(t, json.NewDecoder(body).Decode(&rep))
	return rep
}

func TestRequestMiddleware_WithExistingRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		assert.Equal(t, "existing-request-id-12345", c.Get(RequestIdHeader))
		assert.Equal(t, "existing-request-id-12345", c.Locals("request_id"))
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIdHeader, "existing-request-id-12345")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "existing-request-id-12345", resp.Header.Get(RequestIdHeader))
}

func TestRequestMiddleware_WithoutRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)

	_, err = uuid.Parse(resp.Header.Get(RequestIdHeader))
	assert.NoError(t, err, "X-Request-Id should be a valid UUID")
}

func TestRealIPMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.3 "}, "10.0.0.3"},
		{"socket", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(RealIPMiddleware())
			app.Get("/", func(c *fiber.Ctx) error {
				return c.SendString(c.Locals("ip").(string))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.expected == "" {
				assert.NotEmpty(t, string(body))
				return
			}
			assert.Equal(t, tt.expected, string(body))
		})
	}
}

func TestExceptionMiddleware_RecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic(errors.New("database exploded"))
	})
	app.Get("/expected", func(c *fiber.Ctx) error {
		panic(httpx.ResponseErr{ErrCode: 4101, ErrMsg: "Menu slug is empty"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	rep := decodeErr(t, resp.Body)
	assert.Equal(t, httpx.InternalError.Code, rep.ErrCode)
	assert.Equal(t, httpx.InternalError.Msg, rep.ErrMsg)
	assert.Equal(t, "/boom", rep.Path)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/expected", nil))
	require.NoError(t, err)
	assert.Equal(t, "Menu slug is empty", decodeErr(t, resp.Body).ErrMsg)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("storage unavailable")
	})
	app.Get("/bad", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "slug required")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, httpx.InternalError.Msg, decodeErr(t, resp.Body).ErrMsg)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	rep := decodeErr(t, resp.Body)
	assert.Equal(t, httpx.BadRequest.Code, rep.ErrCode)
	assert.Equal(t, "slug required", rep.ErrMsg)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, httpx.NotFound.Code, decodeErr(t, resp.Body).ErrCode)
}

func TestSkipAccessLog(t *testing.T) {
	assert.True(t, skipAccessLog("/health"))
	assert.True(t, skipAccessLog("/static/site.css"))
	assert.False(t, skipAccessLog("/services/"))
	assert.False(t, skipAccessLog("/healthz"))
}

func TestAccessLogMiddleware_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware(), AccessLogMiddleware(&httpx.Http{AccessLog: true}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestCorsMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		conf        *httpx.Http
		origin      string
		allowOrigin string
		credentials string
	}{
		{name: "any origin", conf: nil, origin: "https://shop.example", allowOrigin: "*"},
		{name: "listed origin", conf: &httpx.Http{CorsOrigins: []string{"https://shop.example"}}, origin: "https://shop.example", allowOrigin: "https://shop.example", credentials: "true"},
		{name: "unlisted origin", conf: &httpx.Http{CorsOrigins: []string{"https://shop.example"}}, origin: "https://evil.example", allowOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(CorsMiddleware(tt.conf))
			app.Get("/api/v1/menus/main_menu", func(c *fiber.Ctx) error {
				return c.SendString("<ul></ul>")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/menus/main_menu", nil)
			req.Header.Set(fiber.HeaderOrigin, tt.origin)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.allowOrigin, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
			assert.Equal(t, tt.credentials, resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
		})
	}
}
