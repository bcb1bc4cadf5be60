// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values so that every stage of a
// conversion or tuning run logs through the logger configured by the command line:
//
//	logger, err := logging.New(os.Stderr, slog.LevelInfo, logging.FormatJSON)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger)
//
//	logging.FromContext(ctx).Info("split converted", slog.String("split", "train"), slog.Int("records", n))
//
// When no logger is found in the context, [FromContext] returns [slog.Default].
package logging
