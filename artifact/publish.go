// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/go-a2a/gemma-lora/dataset"
	"github.com/go-a2a/gemma-lora/pkg/logging"
	"github.com/go-a2a/gemma-lora/types"
)

// ContentTypeJSONL is the content type stored with published dataset files.
const ContentTypeJSONL = "application/jsonl"

// Published records where a split's output was stored.
type Published struct {
	Split string `json:"split"`
	URI   string `json:"uri"`
}

// PublishSplits uploads the output file of every result to store as "{split}.jsonl". Uploads
// run concurrently; results are returned in input order.
//
// Results must have distinct split names.
func PublishSplits(ctx context.Context, store types.ArtifactStore, results []dataset.Result) ([]Published, error) {
	seen := make(map[string]bool, len(results))
	for _, res := range results {
		if res.Split.Name == "" {
			return nil, fmt.Errorf("split for %s has no name", res.Split.Output)
		}
		if seen[res.Split.Name] {
			return nil, fmt.Errorf("duplicate split %q", res.Split.Name)
		}
		seen[res.Split.Name] = true
	}

	published := make([]Published, len(results))

	eg, gctx := errgroup.WithContext(ctx)
	for i, res := range results {
		eg.Go(func() error {
			uri, err := publishFile(gctx, store, ObjectName(res.Split.Name), res.Split.Output)
			if err != nil {
				return fmt.Errorf("publish split %s: %w", res.Split.Name, err)
			}
			published[i] = Published{Split: res.Split.Name, URI: uri}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	for _, p := range published {
		logger.InfoContext(ctx, "split published", slog.String("split", p.Split), slog.String("uri", p.URI))
	}

	return published, nil
}

// ObjectName returns the name a split is stored under.
func ObjectName(split string) string {
	return split + ".jsonl"
}

func publishFile(ctx context.Context, store types.ArtifactStore, name, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer f.Close()

	return store.Put(ctx, name, f, ContentTypeJSONL)
}
