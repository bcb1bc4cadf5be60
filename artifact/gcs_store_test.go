// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type recordingWriter struct {
	bytes.Buffer
	closed bool
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name          string
		r             io.Reader
		wantErr       bool
		wantClosed    bool
		wantCancelled bool
	}{
		{
			name:       "commits on success",
			r:          strings.NewReader("line\n"),
			wantClosed: true,
		},
		{
			name:          "aborts on read failure",
			r:             &failingReader{data: "partial", err: errors.New("disk gone")},
			wantErr:       true,
			wantCancelled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recordingWriter{}
			cancelled := false

			err := upload(w, tt.r, func() { cancelled = true })
			if (err != nil) != tt.wantErr {
				t.Fatalf("upload() error = %v, wantErr %v", err, tt.wantErr)
			}
			if w.closed != tt.wantClosed {
				t.Errorf("upload() closed writer = %t, want %t", w.closed, tt.wantClosed)
			}
			if cancelled != tt.wantCancelled {
				t.Errorf("upload() cancelled = %t, want %t", cancelled, tt.wantCancelled)
			}
		})
	}
}
