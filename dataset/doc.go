// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset converts nested question/answer datasets into the prompt/completion JSONL
// files consumed by LoRA supervised fine-tuning.
//
// A source file is a single JSON object mapping record identifiers to records:
//
//	{
//	  "21645374": {
//	    "QUESTION": "Do mitochondria play a role in remodelling lace plant leaves?",
//	    "CONTEXTS": ["Programmed cell death (PCD) is ...", "..."],
//	    "LABELS": ["BACKGROUND", "RESULTS"],
//	    "reasoning_required_pred": "yes"
//	  }
//	}
//
// Each record becomes one line of the output file:
//
//	{"input": "QUESTION:Do mitochondria ...\nCONTEXT: Programmed cell death ...\n...\nTARGET: the answer to the question given the context is (yes|no|maybe): ", "output": "yes"}
//
// Records are written in the order their keys appear in the source document, and the output
// is byte-identical across runs on the same input.
//
// # Usage
//
//	examples, err := dataset.Reformat(ctx, "pqal_train_set.json", "train.jsonl")
//
// A [Reformatter] configures member names, the instruction suffix and the policy for records
// whose context and label counts differ:
//
//	r := dataset.New(
//		dataset.WithAnswerField("final_decision"),
//		dataset.WithMismatchPolicy(dataset.MismatchTruncate),
//	)
//	results, err := r.ReformatSplits(ctx, []dataset.Split{
//		{Name: "train", Source: "train.json", Output: "train.jsonl"},
//		{Name: "validation", Source: "dev.json", Output: "validation.jsonl"},
//	})
//
// [Verify] re-reads a produced file and checks each line against [Schema].
package dataset
