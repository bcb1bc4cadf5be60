// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package lora prepares supervised fine-tuning data for LoRA tuning of Gemma models.
//
// The work is split across packages:
//
//   - dataset: reformats nested question/context/label JSON into prompt/completion JSONL
//   - artifact: stores converted files locally or in Google Cloud Storage
//   - tuning: describes and submits tuning jobs to the Gen AI tunings API
//
// The gemma-lora command wires them together.
package lora

// Version is the version of gemma-lora.
var Version = "v0.0.0"
