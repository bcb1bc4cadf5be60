// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"

	"github.com/go-a2a/gemma-lora/internal/pool"
	"github.com/go-a2a/gemma-lora/types"
)

// Literal parts of a prompt.
const (
	QuestionPrefix = "QUESTION:"
	ContextPrefix  = "CONTEXT: "

	// Instruction asks the model for a constrained-vocabulary answer. Every prompt ends with it.
	Instruction = "TARGET: the answer to the question given the context is (yes|no|maybe): "
)

// MismatchPolicy decides what happens when a record has a different number of context
// passages and labels.
type MismatchPolicy int

const (
	// MismatchError rejects the record with [types.ErrLengthMismatch].
	MismatchError MismatchPolicy = iota

	// MismatchTruncate uses the shorter of the two sequences.
	MismatchTruncate
)

// String returns the flag spelling of the policy.
func (p MismatchPolicy) String() string {
	switch p {
	case MismatchError:
		return "error"
	case MismatchTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("MismatchPolicy(%d)", int(p))
	}
}

// ParseMismatchPolicy parses "error" or "truncate".
func ParseMismatchPolicy(s string) (MismatchPolicy, error) {
	switch s {
	case "error", "":
		return MismatchError, nil
	case "truncate":
		return MismatchTruncate, nil
	default:
		return 0, fmt.Errorf("unknown mismatch policy %q", s)
	}
}

// BuildPrompt renders the prompt for rec: the question line, then the context passages one per
// line, then instruction. The number of passages is driven by the label count.
func BuildPrompt(rec *types.SourceRecord, instruction string, policy MismatchPolicy) (string, error) {
	n := len(rec.Labels)
	if n != len(rec.Contexts) {
		if policy != MismatchTruncate {
			return "", &types.FieldError{
				Record: rec.ID,
				Err:    fmt.Errorf("%w: %d contexts, %d labels", types.ErrLengthMismatch, len(rec.Contexts), n),
			}
		}
		n = min(n, len(rec.Contexts))
	}

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	buf.WriteString(QuestionPrefix)
	buf.WriteString(rec.Question)
	buf.WriteByte('\n')
	buf.WriteString(ContextPrefix)
	for _, passage := range rec.Contexts[:n] {
		buf.WriteString(passage)
		buf.WriteByte('\n')
	}
	buf.WriteString(instruction)

	return buf.String(), nil
}
