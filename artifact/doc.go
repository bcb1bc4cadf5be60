// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact provides stores for the dataset files handed to a remote tuning service.
//
// Two implementations of [types.ArtifactStore] are provided:
//
//   - InMemoryStore: in-process storage for tests and dry runs, URIs of the form mem://{name}
//   - GCSStore: Google Cloud Storage, URIs of the form gs://{bucket}/{prefix}{name}
//
// Converted splits are uploaded with [PublishSplits]:
//
//	store, err := artifact.NewGCSStore(ctx, "gs://my-bucket/pubmedqa/")
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	published, err := artifact.PublishSplits(ctx, store, results)
//
// The returned URIs are used as the training and validation sources of a tuning job.
package artifact
