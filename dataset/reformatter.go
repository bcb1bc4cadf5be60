// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/moby/sys/atomicwriter"

	"github.com/go-a2a/gemma-lora/internal/pool"
	"github.com/go-a2a/gemma-lora/pkg/logging"
	"github.com/go-a2a/gemma-lora/types"
)

const (
	defaultFileMode    fs.FileMode = 0o644
	defaultConcurrency             = 4
)

// Reformatter converts nested question/answer datasets into prompt/completion pairs.
//
// A Reformatter holds only configuration and is safe for concurrent use.
type Reformatter struct {
	fields      types.FieldNames
	instruction string
	policy      MismatchPolicy
	fileMode    fs.FileMode
	concurrency int
	logger      *slog.Logger
}

// Option is a functional option for configuring the [Reformatter].
type Option func(*Reformatter)

// WithFieldNames sets the member names of the source records.
func WithFieldNames(fields types.FieldNames) Option {
	return func(r *Reformatter) {
		r.fields = fields
	}
}

// WithAnswerField sets only the member name holding the answer label.
func WithAnswerField(name string) Option {
	return func(r *Reformatter) {
		r.fields.Answer = name
	}
}

// WithMismatchPolicy sets how context/label length mismatches are handled.
func WithMismatchPolicy(policy MismatchPolicy) Option {
	return func(r *Reformatter) {
		r.policy = policy
	}
}

// WithInstruction replaces the [Instruction] suffix.
func WithInstruction(instruction string) Option {
	return func(r *Reformatter) {
		r.instruction = instruction
	}
}

// WithFileMode sets the permission bits of written files.
func WithFileMode(mode fs.FileMode) Option {
	return func(r *Reformatter) {
		r.fileMode = mode
	}
}

// WithConcurrency bounds the number of splits converted at once by [Reformatter.ReformatSplits].
func WithConcurrency(n int) Option {
	return func(r *Reformatter) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets a custom logger. Without it the logger is taken from the context.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reformatter) {
		r.logger = logger
	}
}

// New returns a [Reformatter] for the PubMedQA layout, adjusted by opts.
func New(opts ...Option) *Reformatter {
	r := &Reformatter{
		fields:      types.DefaultFieldNames(),
		instruction: Instruction,
		policy:      MismatchError,
		fileMode:    defaultFileMode,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reformat converts the source file at src into a JSONL file at dst using the default
// [Reformatter], and returns the produced examples.
func Reformat(ctx context.Context, src, dst string) ([]types.FormattedExample, error) {
	return New().Reformat(ctx, src, dst)
}

// Format builds one [types.FormattedExample] per record, in order.
func (r *Reformatter) Format(records []types.SourceRecord) ([]types.FormattedExample, error) {
	examples := make([]types.FormattedExample, 0, len(records))
	for i := range records {
		prompt, err := BuildPrompt(&records[i], r.instruction, r.policy)
		if err != nil {
			return nil, err
		}
		examples = append(examples, types.FormattedExample{
			Input:  prompt,
			Output: records[i].Answer,
		})
	}
	return examples, nil
}

// Reformat converts the source file at src into a JSONL file at dst and returns the produced
// examples.
//
// The output is written to a temporary file and renamed over dst, so a failed call leaves dst
// as it was.
func (r *Reformatter) Reformat(ctx context.Context, src, dst string) ([]types.FormattedExample, error) {
	logger := r.loggerFrom(ctx)

	if same, err := samePath(src, dst); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	} else if same {
		return nil, fmt.Errorf("%w: output %s would overwrite the source", types.ErrIO, dst)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: read source: %w", types.ErrIO, err)
	}

	records, err := r.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	logger.DebugContext(ctx, "source decoded",
		slog.String("source", src),
		slog.Int("records", len(records)),
	)

	examples, err := r.Format(records)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", src, err)
	}

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)
	if err := Encode(buf, examples); err != nil {
		return nil, err
	}

	// last point at which a cancelled multi-split run can still leave dst untouched
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := atomicwriter.WriteFile(dst, buf.Bytes(), r.fileMode); err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", types.ErrIO, dst, err)
	}

	logger.InfoContext(ctx, "dataset reformatted",
		slog.String("source", src),
		slog.String("output", dst),
		slog.Int("records", len(examples)),
	)

	return examples, nil
}

func (r *Reformatter) loggerFrom(ctx context.Context) *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// samePath reports whether a and b name the same file.
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}

	fa, errA := os.Stat(absA)
	fb, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(fa, fb), nil
}
