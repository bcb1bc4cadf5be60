// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/gemma-lora/types"
)

// lineOptions renders `{"input": ..., "output": ...}`, the spacing the fine-tuning
// framework's own tooling writes.
var lineOptions = json.JoinOptions(
	jsontext.SpaceAfterColon(true),
	jsontext.SpaceAfterComma(true),
)

// Encode writes examples to w as line-delimited JSON, one object per line.
func Encode(w io.Writer, examples []types.FormattedExample) error {
	enc := jsontext.NewEncoder(w, lineOptions)
	for i := range examples {
		if err := json.MarshalEncode(enc, &examples[i]); err != nil {
			return fmt.Errorf("encode example %d: %w", i, err)
		}
	}
	return nil
}
