// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/go-a2a/gemma-lora/types"
)

func TestCreateJobConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   *genai.CreateTuningJobConfig
	}{
		{
			name: "defaults",
			mutate: func(c *Config) {
				c.DisplayName = "gemma-pubmedqa"
			},
			want: &genai.CreateTuningJobConfig{
				TunedModelDisplayName:  "gemma-pubmedqa",
				EpochCount:             genai.Ptr[int32](3),
				LearningRateMultiplier: genai.Ptr[float32](1),
				AdapterSize:            genai.AdapterSizeFour,
			},
		},
		{
			name: "validation and hyperparameters",
			mutate: func(c *Config) {
				c.Description = "PubMedQA adapter"
				c.Dataset.Validation = &DataSource{URI: "gs://bucket/validation.jsonl"}
				c.Hyperparameters = &Hyperparameters{
					Epochs:       2,
					LearningRate: 0.5,
					BatchSize:    8,
					AdapterSize:  16,
				}
			},
			want: &genai.CreateTuningJobConfig{
				Description:       "PubMedQA adapter",
				ValidationDataset: &genai.TuningValidationDataset{GCSURI: "gs://bucket/validation.jsonl"},
				EpochCount:        genai.Ptr[int32](2),
				LearningRate:      genai.Ptr[float32](0.5),
				BatchSize:         genai.Ptr[int32](8),
				AdapterSize:       genai.AdapterSizeSixteen,
			},
		},
		{
			name: "sft leaves adapter size to the service",
			mutate: func(c *Config) {
				c.Method = MethodSFT
				c.Hyperparameters = nil
			},
			want: &genai.CreateTuningJobConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			if diff := cmp.Diff(tt.want, cfg.CreateJobConfig()); diff != "" {
				t.Errorf("CreateJobConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrainingDataset(t *testing.T) {
	t.Run("gcs", func(t *testing.T) {
		got, err := validConfig().TrainingDataset()
		if err != nil {
			t.Fatalf("TrainingDataset() error = %v", err)
		}
		want := &genai.TuningDataset{GCSURI: "gs://bucket/train.jsonl"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TrainingDataset() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("local jsonl", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "train.jsonl")
		content := heredoc.Doc(`
			{"input": "QUESTION:a?", "output": "yes"}
			{"input": "QUESTION:b?", "output": "no"}
		`)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := validConfig()
		cfg.Dataset.Training.URI = path

		got, err := cfg.TrainingDataset()
		if err != nil {
			t.Fatalf("TrainingDataset() error = %v", err)
		}
		want := &genai.TuningDataset{
			Examples: []*genai.TuningExample{
				{TextInput: "QUESTION:a?", Output: "yes"},
				{TextInput: "QUESTION:b?", Output: "no"},
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TrainingDataset() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed jsonl", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "train.jsonl")
		if err := os.WriteFile(path, []byte(`{"input": "a", "extra": 1}`), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg := validConfig()
		cfg.Dataset.Training.URI = path

		if _, err := cfg.TrainingDataset(); !errors.Is(err, types.ErrMalformedInput) {
			t.Errorf("TrainingDataset() error = %v, want %v", err, types.ErrMalformedInput)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := validConfig()
		cfg.Dataset.Training.URI = filepath.Join(t.TempDir(), "absent.jsonl")

		if _, err := cfg.TrainingDataset(); !errors.Is(err, types.ErrIO) {
			t.Errorf("TrainingDataset() error = %v, want %v", err, types.ErrIO)
		}
	})
}

func TestInlineExamples(t *testing.T) {
	got := InlineExamples([]types.FormattedExample{
		{Input: "in", Output: "maybe"},
	})
	want := []*genai.TuningExample{
		{TextInput: "in", Output: "maybe"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InlineExamples() mismatch (-want +got):\n%s", diff)
	}
}
