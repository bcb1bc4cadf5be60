// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-a2a/gemma-lora/pkg/logging"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := logging.NewContext(t.Context(), logger)
	logging.FromContext(ctx).Info("converted", slog.Int("records", 3))

	if got := buf.String(); !strings.Contains(got, `"records":3`) {
		t.Errorf("log output = %q, want records attribute", got)
	}
}

func TestFromContextDefault(t *testing.T) {
	if got := logging.FromContext(t.Context()); got != slog.Default() {
		t.Errorf("FromContext() = %p, want slog.Default()", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := logging.ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := logging.New(nil, slog.LevelInfo, logging.Format("xml")); err == nil {
		t.Error("New() with unknown format: want error")
	}
}
