// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/go-a2a/gemma-lora/types"
)

// GCSStore represents an artifact store implementation using Google Cloud Storage (GCS).
//
// Objects are stored as {prefix}{name} in a single bucket.
type GCSStore struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
	prefix string
}

var _ types.ArtifactStore = (*GCSStore)(nil)

// ParseGCSURI splits "gs://bucket/some/prefix" into its bucket and object prefix. A non-empty
// prefix always ends with "/".
func ParseGCSURI(uri string) (bucket, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("%q is not a gs:// URI", uri)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%q has no bucket", uri)
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, nil
}

// NewGCSStore creates a new [GCSStore] writing under uri, a "gs://bucket/prefix" location.
//
// Without opts the client authenticates with Application Default Credentials.
func NewGCSStore(ctx context.Context, uri string, opts ...option.ClientOption) (*GCSStore, error) {
	bucketName, prefix, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}

	if len(opts) == 0 {
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{
				storage.ScopeReadWrite,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("get credentials for storage: %w", err)
		}
		opts = append(opts, option.WithAuthCredentials(creds))
	}

	client, err := storage.NewGRPCClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: client.Bucket(bucketName),
		name:   bucketName,
		prefix: prefix,
	}, nil
}

// objectName constructs the object name in GCS.
func (s *GCSStore) objectName(name string) string {
	return s.prefix + name
}

// Put implements [types.ArtifactStore].
//
// A failed upload is aborted, so no partial object is left in the bucket.
func (s *GCSStore) Put(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	objectName := s.objectName(name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.bucket.Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if err := upload(w, r, cancel); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.name, objectName), nil
}

// upload copies r into w and commits it with Close. On a copy failure the upload is aborted
// through cancel, the writer's context, and w is never closed: closing a [storage.Writer]
// finalizes the object.
func upload(w io.WriteCloser, r io.Reader, cancel context.CancelFunc) error {
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		return err
	}
	return w.Close()
}

// Get implements [types.ArtifactStore].
func (s *GCSStore) Get(ctx context.Context, name string) ([]byte, error) {
	objectName := s.objectName(name)

	r, err := s.bucket.Object(objectName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%s: %w", objectName, types.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", objectName, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", objectName, err)
	}
	return data, nil
}

// List implements [types.ArtifactStore].
func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.bucket.Objects(ctx, &storage.Query{
		Prefix: s.objectName(prefix),
	})

	names := []string{}
	for {
		attrs, err := it.Next()
		if err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, err
		}
		names = append(names, strings.TrimPrefix(attrs.Name, s.prefix))
	}
	slices.Sort(names)

	return names, nil
}

// Close implements [types.ArtifactStore].
func (s *GCSStore) Close() error {
	return s.client.Close()
}
