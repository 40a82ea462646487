// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/subratsf/amfstore/core"
)

// recordVersion prefixes every encoded DocumentRecord.
const recordVersion uint64 = 1

// DocumentRecordMUS encodes a DocumentRecord as
//
//	version · id · digest · document · createdAt · updatedAt
//
// using varints for numbers and length-prefixed strings. Timestamps are
// stored as Unix microseconds in UTC.
var DocumentRecordMUS = documentRecordMUS{}

type documentRecordMUS struct{}

func (documentRecordMUS) Marshal(r core.DocumentRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(recordVersion, bs)
	n += ord.String.Marshal(string(r.ID), bs[n:])
	n += ord.String.Marshal(r.Digest, bs[n:])
	n += ord.String.Marshal(string(r.Document), bs[n:])
	n += varint.Int64.Marshal(toMicros(r.CreatedAt), bs[n:])
	n += varint.Int64.Marshal(toMicros(r.UpdatedAt), bs[n:])
	return n
}

func (documentRecordMUS) Unmarshal(bs []byte) (r core.DocumentRecord, n int, err error) {
	version, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return r, n, err
	}
	if version != recordVersion {
		return r, n, fmt.Errorf("unknown record version %d", version)
	}

	var (
		m       int
		id      string
		doc     string
		created int64
		updated int64
	)
	if id, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + m, err
	}
	n += m
	if r.Digest, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + m, err
	}
	n += m
	if doc, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + m, err
	}
	n += m
	if created, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return r, n + m, err
	}
	n += m
	if updated, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return r, n + m, err
	}
	n += m

	r.ID = core.StoreID(id)
	r.Document = []byte(doc)
	r.CreatedAt = fromMicros(created)
	r.UpdatedAt = fromMicros(updated)
	return r, n, nil
}

func (documentRecordMUS) Size(r core.DocumentRecord) (size int) {
	size = varint.Uint64.Size(recordVersion)
	size += ord.String.Size(string(r.ID))
	size += ord.String.Size(r.Digest)
	size += ord.String.Size(string(r.Document))
	size += varint.Int64.Size(toMicros(r.CreatedAt))
	return size + varint.Int64.Size(toMicros(r.UpdatedAt))
}

func toMicros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func fromMicros(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us).UTC()
}

// MarshalDocumentRecord serializes a DocumentRecord to bytes.
func MarshalDocumentRecord(record *core.DocumentRecord) []byte {
	buf := make([]byte, DocumentRecordMUS.Size(*record))
	DocumentRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalDocumentRecord deserializes a DocumentRecord from bytes.
// Decoding errors are reported as ErrSerializationFailed, and input that
// ends early as ErrTruncatedData.
func UnmarshalDocumentRecord(data []byte) (*core.DocumentRecord, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	record, n, err := DocumentRecordMUS.Unmarshal(data)
	if err != nil {
		if errors.Is(err, mus.ErrTooSmallByteSlice) {
			return nil, fmt.Errorf("%w: %w", ErrTruncatedData, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &record, nil
}
