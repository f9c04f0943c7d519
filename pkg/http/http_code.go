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

package http

var (
	Failed        = failed(500, "Request failed")
	BadRequest    = failed(4000, "Bad request")
	NotFound      = failed(4004, "Not found")
	InternalError = failed(5000, "Internal error, please contact the administrator")
	ShuttingDown  = failed(5003, "Service is shutting down")

	// menu
	MenuSlugIsEmpty  = failed(4101, "Menu slug is empty")
	MenuRenderFailed = failed(5101, "Menu render failed")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数
func failed(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
	}
}
