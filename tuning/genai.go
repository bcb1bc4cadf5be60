// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"google.golang.org/genai"

	"github.com/go-a2a/gemma-lora/types"
)

var genaiAdapterSizes = map[int]genai.AdapterSize{
	1:  genai.AdapterSizeOne,
	2:  genai.AdapterSizeTwo,
	4:  genai.AdapterSizeFour,
	8:  genai.AdapterSizeEight,
	16: genai.AdapterSizeSixteen,
}

// CreateJobConfig converts c into the Gen AI tuning job request options.
func (c *Config) CreateJobConfig() *genai.CreateTuningJobConfig {
	jc := &genai.CreateTuningJobConfig{
		TunedModelDisplayName: c.DisplayName,
		Description:           c.Description,
	}

	if c.Dataset != nil && c.Dataset.Validation != nil && c.Dataset.Validation.URI != "" {
		jc.ValidationDataset = &genai.TuningValidationDataset{
			GCSURI: c.Dataset.Validation.URI,
		}
	}

	if h := c.Hyperparameters; h != nil {
		if h.Epochs > 0 {
			jc.EpochCount = genai.Ptr(int32(h.Epochs))
		}
		if h.LearningRate > 0 {
			jc.LearningRate = genai.Ptr(float32(h.LearningRate))
		}
		if h.LearningRateMultiplier > 0 {
			jc.LearningRateMultiplier = genai.Ptr(float32(h.LearningRateMultiplier))
		}
		if h.BatchSize > 0 {
			jc.BatchSize = genai.Ptr(int32(h.BatchSize))
		}
	}

	if size, ok := genaiAdapterSizes[c.adapterSize()]; ok {
		jc.AdapterSize = size
	}

	return jc
}

// TrainingDataset returns the training dataset of c.
//
// A gs:// source is passed by reference. Any other source is read as a local JSONL file of
// formatted examples and sent inline.
func (c *Config) TrainingDataset() (*genai.TuningDataset, error) {
	if c.Dataset == nil || c.Dataset.Training == nil || c.Dataset.Training.URI == "" {
		return nil, fmt.Errorf("%w: training data URI is required", ErrInvalidConfig)
	}

	uri := c.Dataset.Training.URI
	if isGCS(uri) {
		return &genai.TuningDataset{GCSURI: uri}, nil
	}

	examples, err := readExamples(uri)
	if err != nil {
		return nil, err
	}
	return &genai.TuningDataset{Examples: InlineExamples(examples)}, nil
}

// InlineExamples converts formatted examples into Gen AI tuning examples.
func InlineExamples(examples []types.FormattedExample) []*genai.TuningExample {
	out := make([]*genai.TuningExample, len(examples))
	for i, ex := range examples {
		out[i] = &genai.TuningExample{
			TextInput: ex.Input,
			Output:    ex.Output,
		}
	}
	return out
}

func readExamples(path string) ([]types.FormattedExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer f.Close()

	var examples []types.FormattedExample
	dec := jsontext.NewDecoder(f)
	for {
		var ex types.FormattedExample
		if err := json.UnmarshalDecode(dec, &ex, json.RejectUnknownMembers(true)); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %s: %w", types.ErrMalformedInput, path, err)
		}
		examples = append(examples, ex)
	}

	return examples, nil
}
