// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/go-a2a/gemma-lora/pkg/logging"
	"github.com/go-a2a/gemma-lora/types"
)

// maxLineSize bounds a single JSONL line accepted by [Verify].
const maxLineSize = 64 << 20

var exampleSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	schema, err := jsonschema.For[types.FormattedExample](nil)
	if err != nil {
		return nil, err
	}
	return schema.Resolve(nil)
})

// Schema returns the indented JSON Schema every output line conforms to.
func Schema() ([]byte, error) {
	resolved, err := exampleSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	return json.Marshal(resolved.Schema(), jsontext.WithIndent("  "))
}

// Report summarizes a verified JSONL file.
type Report struct {
	Path    string         `json:"path"`
	Lines   int            `json:"lines"`
	Answers map[string]int `json:"answers"`
}

// Verify checks that every line of the JSONL file at path is a well-formed example whose input
// is a prompt ending with instruction. An empty instruction selects [Instruction].
func Verify(ctx context.Context, path, instruction string) (*Report, error) {
	if instruction == "" {
		instruction = Instruction
	}
	resolved, err := exampleSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}
	defer f.Close()

	report := &Report{
		Path:    path,
		Answers: make(map[string]int),
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for sc.Scan() {
		report.Lines++
		answer, err := verifyLine(resolved, sc.Bytes(), instruction)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, report.Lines, err)
		}
		report.Answers[answer]++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", types.ErrIO, path, err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "dataset verified",
		slog.String("path", path),
		slog.Int("lines", report.Lines),
	)

	return report, nil
}

// verifyLine validates one JSONL line and returns its answer label.
func verifyLine(resolved *jsonschema.Resolved, line []byte, instruction string) (string, error) {
	var instance map[string]any
	if err := sonic.ConfigStd.Unmarshal(line, &instance); err != nil {
		return "", malformed(err)
	}
	if instance == nil {
		return "", malformed(errors.New("line is not a JSON object"))
	}
	if err := resolved.Validate(instance); err != nil {
		return "", malformed(err)
	}

	input := instance["input"].(string)
	if !strings.HasPrefix(input, QuestionPrefix) {
		return "", fmt.Errorf("%w: input does not start with %q", types.ErrMalformedInput, QuestionPrefix)
	}
	if !strings.HasSuffix(input, instruction) {
		return "", fmt.Errorf("%w: input does not end with the instruction", types.ErrMalformedInput)
	}
	return instance["output"].(string), nil
}
