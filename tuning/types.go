// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

// Method represents the fine-tuning method to use.
type Method string

const (
	MethodLoRA  Method = "lora"
	MethodQLoRA Method = "qlora"
	MethodSFT   Method = "supervised_fine_tuning"
)

// DataFormat represents the format of training data.
type DataFormat string

const (
	DataFormatJSONL DataFormat = "jsonl"
)

// DataSource represents a data source configuration.
type DataSource struct {
	// URI is a gs:// object or a local JSONL path.
	URI string `json:"uri"`

	// Format is the format of the data. Empty means jsonl.
	Format DataFormat `json:"format,omitempty"`
}

// DatasetConfig represents dataset configuration for fine-tuning.
type DatasetConfig struct {
	Training   *DataSource `json:"training"`
	Validation *DataSource `json:"validation,omitempty"`
}

// LoRAConfig represents the low-rank adaptation settings.
type LoRAConfig struct {
	// Rank is the rank of the adapter matrices. It is sent to the service as the adapter size.
	Rank int `json:"rank"`

	// Alpha is the LoRA scaling parameter.
	Alpha int `json:"alpha"`

	// Dropout is the dropout rate applied to the adapter inputs.
	Dropout float64 `json:"dropout,omitempty"`

	// TargetModules are the modules to apply LoRA to.
	TargetModules []string `json:"target_modules,omitempty"`
}

// Hyperparameters represents the training hyperparameters.
type Hyperparameters struct {
	Epochs                 int     `json:"epochs,omitempty"`
	LearningRate           float64 `json:"learning_rate,omitempty"`
	LearningRateMultiplier float64 `json:"learning_rate_multiplier,omitempty"`
	BatchSize              int     `json:"batch_size,omitempty"`

	// AdapterSize overrides LoRA.Rank when non-zero.
	AdapterSize int `json:"adapter_size,omitempty"`
}

// Config represents the description of a tuning job.
type Config struct {
	// SourceModel is the base model to fine-tune.
	SourceModel string `json:"source_model"`

	// Method is the fine-tuning method to use.
	Method Method `json:"method"`

	// DisplayName for the tuned model. Generated by [Service.Submit] when empty.
	DisplayName string `json:"display_name,omitempty"`

	Description string `json:"description,omitempty"`

	Dataset         *DatasetConfig   `json:"dataset"`
	LoRA            *LoRAConfig      `json:"lora,omitempty"`
	Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
}
