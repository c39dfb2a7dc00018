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

// Package tools exposes dispatch operations to chat/agent callers that move
// payloads as base64 text. The wrappers decode, forward and re-encode; they
// add no logic beyond encoding and logging.
package tools

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/blobgate/blobgate/pkg/log"
	"github.com/blobgate/blobgate/pkg/storage"
)

type Tools struct {
	dispatch *storage.Dispatch
	log      log.ILogger
}

func New(dispatch *storage.Dispatch, logger log.ILogger) *Tools {
	return &Tools{
		dispatch: dispatch,
		log:      logger,
	}
}

// UploadArgs is the agent-facing upload request. Content is base64-encoded.
// An empty Provider targets the active provider.
type UploadArgs struct {
	Provider    string            `json:"provider,omitempty"`
	Content     string            `json:"content"`
	Filename    string            `json:"filename,omitempty"`
	ContentType string            `json:"contentType,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type UploadReply struct {
	URL      string         `json:"url"`
	ID       string         `json:"id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DeleteArgs is the agent-facing delete request.
type DeleteArgs struct {
	Provider string `json:"provider,omitempty"`
	URL      string `json:"url"`
}

type DeleteReply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Upload decodes the base64 content and forwards it to the dispatch service.
func (t *Tools) Upload(ctx context.Context, args *UploadArgs) (*UploadReply, error) {
	data, err := base64.StdEncoding.DecodeString(args.Content)
	if err != nil {
		return nil, fmt.Errorf("tools: invalid base64 content: %w", err)
	}

	opts := &storage.UploadOptions{
		Filename:    args.Filename,
		ContentType: args.ContentType,
		Metadata:    args.Metadata,
	}

	var res *storage.UploadResult
	if args.Provider != "" {
		res, err = t.dispatch.UploadTo(ctx, args.Provider, data, opts)
	} else {
		res, err = t.dispatch.Upload(ctx, data, opts)
	}
	if err != nil {
		return nil, err
	}

	t.log.Infow("tool upload",
		"provider", args.Provider,
		"filename", args.Filename,
		"size", len(data),
		"url", res.URL,
	)

	return &UploadReply{
		URL:      res.URL,
		ID:       res.ID,
		Metadata: res.Metadata,
	}, nil
}

// Delete forwards a delete to the dispatch service.
func (t *Tools) Delete(ctx context.Context, args *DeleteArgs) (*DeleteReply, error) {
	var (
		res *storage.DeleteResult
		err error
	)
	if args.Provider != "" {
		res, err = t.dispatch.DeleteFrom(ctx, args.Provider, args.URL)
	} else {
		res, err = t.dispatch.Delete(ctx, args.URL)
	}
	if err != nil {
		return nil, err
	}

	t.log.Infow("tool delete",
		"provider", args.Provider,
		"url", args.URL,
		"success", res.Success,
	)

	return &DeleteReply{
		Success: res.Success,
		Message: res.Message,
	}, nil
}
