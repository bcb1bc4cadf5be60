// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types defines the records, errors and interfaces shared by the gemma-lora packages.
package types
