// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

// Default member names of a PubMedQA style source record.
const (
	DefaultQuestionField = "QUESTION"
	DefaultContextsField = "CONTEXTS"
	DefaultLabelsField   = "LABELS"
	DefaultAnswerField   = "reasoning_required_pred"
)

// FieldNames locates the members of a [SourceRecord] inside the source JSON object.
type FieldNames struct {
	Question string
	Contexts string
	Labels   string
	Answer   string
}

// DefaultFieldNames returns the [FieldNames] of the PubMedQA layout.
func DefaultFieldNames() FieldNames {
	return FieldNames{
		Question: DefaultQuestionField,
		Contexts: DefaultContextsField,
		Labels:   DefaultLabelsField,
		Answer:   DefaultAnswerField,
	}
}

// SourceRecord is one entry of the nested question/answer dataset.
type SourceRecord struct {
	// ID is the key of the record in the source mapping.
	ID string

	Question string
	Contexts []string

	// Labels has one entry per context passage. Only its length is used.
	Labels []string

	Answer string
}

// FormattedExample is the flattened prompt/completion pair used for supervised fine-tuning.
type FormattedExample struct {
	Input  string `json:"input" jsonschema:"prompt built from the question and its context passages"`
	Output string `json:"output" jsonschema:"answer label the model is trained to complete"`
}
