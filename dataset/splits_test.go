// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/gemma-lora/dataset"
	"github.com/go-a2a/gemma-lora/types"
)

func TestParseSplit(t *testing.T) {
	tests := []struct {
		in      string
		want    dataset.Split
		wantErr bool
	}{
		{
			in:   "train=data/pqal_train_set.json:out/train.jsonl",
			want: dataset.Split{Name: "train", Source: "data/pqal_train_set.json", Output: "out/train.jsonl"},
		},
		{in: "train", wantErr: true},
		{in: "=a.json:b.jsonl", wantErr: true},
		{in: "train=a.json", wantErr: true},
		{in: "train=a.json:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := dataset.ParseSplit(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSplit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSplit(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func writeSplitSource(t *testing.T, dir, name string, n int) string {
	t.Helper()
	content := "{"
	for i := range n {
		if i > 0 {
			content += ","
		}
		content += fmt.Sprintf(`"%s-%d": {"QUESTION": "q%d", "CONTEXTS": ["c"], "LABELS": ["l"], "reasoning_required_pred": "yes"}`, name, i, i)
	}
	content += "}"

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReformatSplits(t *testing.T) {
	dir := t.TempDir()
	splits := []dataset.Split{
		{Name: "train", Source: writeSplitSource(t, dir, "train", 5), Output: filepath.Join(dir, "train.jsonl")},
		{Name: "validation", Source: writeSplitSource(t, dir, "validation", 2), Output: filepath.Join(dir, "validation.jsonl")},
		{Name: "test", Source: writeSplitSource(t, dir, "test", 3), Output: filepath.Join(dir, "test.jsonl")},
	}

	got, err := dataset.New(dataset.WithConcurrency(2)).ReformatSplits(t.Context(), splits)
	if err != nil {
		t.Fatalf("ReformatSplits() error = %v", err)
	}

	want := []dataset.Result{
		{Split: splits[0], Records: 5},
		{Split: splits[1], Records: 2},
		{Split: splits[2], Records: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReformatSplits() mismatch (-want +got):\n%s", diff)
	}
	for _, split := range splits {
		if _, err := os.Stat(split.Output); err != nil {
			t.Errorf("split %s output: %v", split.Name, err)
		}
	}
}

func TestReformatSplitsFailure(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"x": {"QUESTION": "q"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	splits := []dataset.Split{
		{Name: "train", Source: writeSplitSource(t, dir, "train", 1), Output: filepath.Join(dir, "train.jsonl")},
		{Name: "broken", Source: bad, Output: filepath.Join(dir, "broken.jsonl")},
	}

	_, err := dataset.New().ReformatSplits(t.Context(), splits)
	if !errors.Is(err, types.ErrMissingField) {
		t.Errorf("ReformatSplits() error = %v, want %v", err, types.ErrMissingField)
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.jsonl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("failed split left output behind: %v", err)
	}
}

func TestReformatSplitsRejectsConflicts(t *testing.T) {
	tests := []struct {
		name   string
		splits []dataset.Split
	}{
		{
			name: "duplicate name",
			splits: []dataset.Split{
				{Name: "train", Source: "a.json", Output: "a.jsonl"},
				{Name: "train", Source: "b.json", Output: "b.jsonl"},
			},
		},
		{
			name: "shared output",
			splits: []dataset.Split{
				{Name: "train", Source: "a.json", Output: "out/x.jsonl"},
				{Name: "test", Source: "b.json", Output: "out/./x.jsonl"},
			},
		},
		{
			name: "unnamed",
			splits: []dataset.Split{
				{Source: "a.json", Output: "a.jsonl"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := dataset.New().ReformatSplits(t.Context(), tt.splits); err == nil {
				t.Error("ReformatSplits() error = nil, want error")
			}
		})
	}
}
