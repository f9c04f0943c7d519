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
	"errors"
	"runtime/debug"

	"github.com/go-arcade/treemenu/pkg/http"
	"github.com/go-arcade/treemenu/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware 捕获 panic，统一返回 ResponseErr
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithContext(c.UserContext()).Errorw("panic recovered",
				"path", c.Path(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = http.WithRepErrMsg(c, fiber.StatusInternalServerError, http.InternalError.Code, errorToString(r), c.Path())
		}
	}()

	return c.Next()
}

func errorToString(r any) string {
	switch v := r.(type) {
	case http.ResponseErr:
		// 符合预期的错误，可以直接返回给客户端
		return v.Error()
	case error:
		// 一律返回服务器错误，避免返回堆栈错误给客户端
		return http.InternalError.Msg
	case string:
		return v
	default:
		return http.InternalError.Msg
	}
}

// ErrorHandler 是 fiber 的全局错误处理，未被处理的错误统一转为 ResponseErr
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		rep := http.Failed
		switch fe.Code {
		case fiber.StatusNotFound:
			rep = http.NotFound
		case fiber.StatusBadRequest:
			rep = http.BadRequest
		}
		return http.WithRepErrMsg(c, fe.Code, rep.Code, fe.Message, c.Path())
	}

	var re http.ResponseErr
	if errors.As(err, &re) {
		return c.Status(fiber.StatusInternalServerError).JSON(re)
	}

	log.WithContext(c.UserContext()).Errorw("request failed", "path", c.Path(), "error", err)
	return http.WithRepErr(c, fiber.StatusInternalServerError, http.InternalError, c.Path())
}
