// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Split names one source file and the JSONL file produced from it.
type Split struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Output string `json:"output"`
}

// ParseSplit parses the "name=source:output" form used on the command line.
func ParseSplit(s string) (Split, error) {
	name, paths, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Split{}, fmt.Errorf("split %q: want name=source:output", s)
	}
	src, dst, ok := strings.Cut(paths, ":")
	if !ok || src == "" || dst == "" {
		return Split{}, fmt.Errorf("split %q: want name=source:output", s)
	}
	return Split{Name: name, Source: src, Output: dst}, nil
}

// Result summarizes one converted [Split].
type Result struct {
	Split   Split
	Records int
}

// ReformatSplits converts every split, several at a time. Results are returned in the order of
// splits. The first failure cancels the remaining conversions; splits already written stay
// written.
func (r *Reformatter) ReformatSplits(ctx context.Context, splits []Split) ([]Result, error) {
	if err := checkSplits(splits); err != nil {
		return nil, err
	}

	results := make([]Result, len(splits))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.concurrency)

	for i, split := range splits {
		eg.Go(func() error {
			examples, err := r.Reformat(gctx, split.Source, split.Output)
			if err != nil {
				return fmt.Errorf("split %s: %w", split.Name, err)
			}
			results[i] = Result{Split: split, Records: len(examples)}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	r.loggerFrom(ctx).InfoContext(ctx, "splits reformatted", slog.Int("splits", len(splits)))

	return results, nil
}

// checkSplits rejects duplicate names and splits that would write the same file.
func checkSplits(splits []Split) error {
	names := make(map[string]bool, len(splits))
	outputs := make(map[string]string, len(splits))
	for _, split := range splits {
		if split.Name == "" {
			return fmt.Errorf("split for %s has no name", split.Source)
		}
		if names[split.Name] {
			return fmt.Errorf("duplicate split %q", split.Name)
		}
		names[split.Name] = true

		out := filepath.Clean(split.Output)
		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("splits %q and %q both write %s", prev, split.Name, out)
		}
		outputs[out] = split.Name
	}
	return nil
}
