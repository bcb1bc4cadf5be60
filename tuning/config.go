// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/tiendc/go-deepcopy"
)

// ErrInvalidConfig reports a tuning configuration that cannot be submitted.
var ErrInvalidConfig = errors.New("invalid tuning config")

// adapterSizes lists the adapter sizes accepted by the managed tuning service.
var adapterSizes = []int{1, 2, 4, 8, 16}

// DefaultConfig returns a LoRA configuration with the defaults used for Gemma adapters.
func DefaultConfig() *Config {
	return &Config{
		Method:  MethodLoRA,
		Dataset: &DatasetConfig{},
		LoRA: &LoRAConfig{
			Rank:          4,
			Alpha:         8,
			Dropout:       0.05,
			TargetModules: []string{"q_proj", "v_proj"},
		},
		Hyperparameters: &Hyperparameters{
			Epochs:                 3,
			LearningRateMultiplier: 1.0,
		},
	}
}

// LoadConfig reads a JSON tuning configuration from path on top of [DefaultConfig].
//
// Unknown members are rejected.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tuning config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := json.UnmarshalRead(f, cfg, json.RejectUnknownMembers(true)); err != nil {
		return nil, fmt.Errorf("decode tuning config %s: %w", path, err)
	}

	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() (*Config, error) {
	var dst Config
	if err := deepcopy.Copy(&dst, c); err != nil {
		return nil, fmt.Errorf("clone tuning config: %w", err)
	}
	return &dst, nil
}

// Validate reports the first problem that prevents c from being submitted.
func (c *Config) Validate() error {
	if c.SourceModel == "" {
		return invalid("source model is required")
	}

	if c.Dataset == nil || c.Dataset.Training == nil || c.Dataset.Training.URI == "" {
		return invalid("training data URI is required")
	}
	for _, src := range []*DataSource{c.Dataset.Training, c.Dataset.Validation} {
		if src != nil && src.Format != "" && src.Format != DataFormatJSONL {
			return invalid("unsupported data format %q", src.Format)
		}
	}
	if v := c.Dataset.Validation; v != nil && v.URI != "" && !isGCS(v.URI) {
		return invalid("validation data must be a gs:// URI, got %q", v.URI)
	}

	switch c.Method {
	case MethodLoRA, MethodQLoRA:
		if c.LoRA == nil {
			return invalid("LoRA config is required for %s tuning", c.Method)
		}
		if err := c.LoRA.validate(); err != nil {
			return err
		}
	case MethodSFT:
	default:
		return invalid("unknown tuning method %q", c.Method)
	}

	if h := c.Hyperparameters; h != nil {
		if h.Epochs < 0 || h.BatchSize < 0 {
			return invalid("epochs and batch size must not be negative")
		}
		if h.LearningRate < 0 || h.LearningRateMultiplier < 0 {
			return invalid("learning rate must not be negative")
		}
	}

	if size := c.adapterSize(); size != 0 && !slices.Contains(adapterSizes, size) {
		return invalid("adapter size %d is not one of %v", size, adapterSizes)
	}

	return nil
}

func (l *LoRAConfig) validate() error {
	if l.Rank <= 0 {
		return invalid("LoRA rank must be positive")
	}
	if l.Alpha <= 0 {
		return invalid("LoRA alpha must be positive")
	}
	if l.Dropout < 0 || l.Dropout > 1 {
		return invalid("LoRA dropout must be between 0 and 1")
	}
	return nil
}

// adapterSize returns the adapter size sent to the service, zero for the service default.
func (c *Config) adapterSize() int {
	if c.Hyperparameters != nil && c.Hyperparameters.AdapterSize != 0 {
		return c.Hyperparameters.AdapterSize
	}
	if c.Method != MethodSFT && c.LoRA != nil {
		return c.LoRA.Rank
	}
	return 0
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func isGCS(uri string) bool {
	return strings.HasPrefix(uri, "gs://")
}
