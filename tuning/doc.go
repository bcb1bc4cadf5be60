// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tuning describes LoRA tuning jobs for Gemma models and submits them to the Gen AI
// tunings API.
//
// A job is described by a [Config], usually loaded from a JSON file:
//
//	{
//	  "source_model": "gemma-3-4b-it",
//	  "method": "lora",
//	  "dataset": {
//	    "training": {"uri": "gs://bucket/pubmedqa/train.jsonl"},
//	    "validation": {"uri": "gs://bucket/pubmedqa/validation.jsonl"}
//	  },
//	  "lora": {"rank": 8, "alpha": 16},
//	  "hyperparameters": {"epochs": 3}
//	}
//
// Submitting and waiting for a job:
//
//	cfg, err := tuning.LoadConfig("tuning.json")
//	if err != nil {
//		return err
//	}
//	svc, err := tuning.NewService(ctx, "my-project", "us-central1")
//	if err != nil {
//		return err
//	}
//	job, err := svc.Submit(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	job, err = svc.Wait(ctx, job.Name, time.Minute)
//
// The package never trains anything itself.
package tuning
