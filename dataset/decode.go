// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/gemma-lora/types"
)

// Decode reads a source mapping from src and returns its records in the order their keys
// appear in the document.
func (r *Reformatter) Decode(src io.Reader) ([]types.SourceRecord, error) {
	dec := jsontext.NewDecoder(src)

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, malformed(err)
	}
	if tok.Kind() != '{' {
		return nil, fmt.Errorf("%w: top-level value is %v, want object", types.ErrMalformedInput, tok.Kind())
	}

	var records []types.SourceRecord
	for dec.PeekKind() != '}' {
		name, err := dec.ReadToken()
		if err != nil {
			return nil, malformed(err)
		}
		rec, err := r.decodeRecord(dec, name.String())
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, malformed(err)
	}

	switch _, err := dec.ReadToken(); {
	case errors.Is(err, io.EOF):
		return records, nil
	case err != nil:
		return nil, malformed(err)
	default:
		return nil, fmt.Errorf("%w: trailing data after top-level object", types.ErrMalformedInput)
	}
}

func (r *Reformatter) decodeRecord(dec *jsontext.Decoder, id string) (types.SourceRecord, error) {
	rec := types.SourceRecord{ID: id}

	if kind := dec.PeekKind(); kind != '{' {
		v, err := dec.ReadValue()
		if err != nil {
			return rec, malformed(err)
		}
		return rec, &types.FieldError{
			Record: id,
			Err:    fmt.Errorf("%w: record is %v, want object", types.ErrMalformedInput, v.Kind()),
		}
	}

	var members map[string]jsontext.Value
	if err := json.UnmarshalDecode(dec, &members); err != nil {
		return rec, &types.FieldError{Record: id, Err: malformed(err)}
	}

	if err := member(id, r.fields.Question, members, &rec.Question); err != nil {
		return rec, err
	}
	if err := member(id, r.fields.Contexts, members, &rec.Contexts); err != nil {
		return rec, err
	}
	if err := member(id, r.fields.Labels, members, &rec.Labels); err != nil {
		return rec, err
	}
	if err := member(id, r.fields.Answer, members, &rec.Answer); err != nil {
		return rec, err
	}

	return rec, nil
}

// member unmarshals the named member into out. Absent and null members are both missing.
func member[T any](id, name string, members map[string]jsontext.Value, out *T) error {
	v, ok := members[name]
	if !ok || v.Kind() == 'n' {
		return &types.FieldError{Record: id, Field: name, Err: types.ErrMissingField}
	}
	if err := json.Unmarshal(v, out); err != nil {
		return &types.FieldError{Record: id, Field: name, Err: malformed(err)}
	}
	return nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", types.ErrMalformedInput, err)
}
