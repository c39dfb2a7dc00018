// Copyright 2025 Blobgate Team
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

package router

import (
	"github.com/gofiber/fiber/v2"

	httpx "github.com/blobgate/blobgate/pkg/http"
	"github.com/blobgate/blobgate/pkg/http/middleware"
	"github.com/blobgate/blobgate/pkg/tools"
)

// toolsRouter registers the JSON tool wrappers. These mirror the object
// routes but take base64 payloads in a JSON body, for callers that cannot
// send multipart forms.
func (rt *Router) toolsRouter(r fiber.Router) {
	toolsGroup := r.Group("/tools")
	{
		toolsGroup.Post("/upload", rt.toolUpload)
		toolsGroup.Post("/delete", rt.toolDelete)
	}
}

func (rt *Router) toolUpload(c *fiber.Ctx) error {
	var args tools.UploadArgs
	if err := c.BodyParser(&args); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, "invalid request body", c.Path())
	}

	reply, err := rt.Tools.Upload(c.UserContext(), &args)
	if err != nil {
		return repStorageErr(c, err)
	}

	c.Locals(middleware.DETAIL, reply)
	c.Locals(middleware.OPERATION, "tool upload")
	return nil
}

func (rt *Router) toolDelete(c *fiber.Ctx) error {
	var args tools.DeleteArgs
	if err := c.BodyParser(&args); err != nil {
		return httpx.WithRepErrMsg(c, httpx.RequestParameterParsingFailed.Code, "invalid request body", c.Path())
	}

	reply, err := rt.Tools.Delete(c.UserContext(), &args)
	if err != nil {
		return repStorageErr(c, err)
	}

	c.Locals(middleware.DETAIL, reply)
	c.Locals(middleware.OPERATION, "tool delete")
	return nil
}
