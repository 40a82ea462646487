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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subratsf/amfstore/core"
)

func TestMarshalUnmarshalDocumentRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := []byte(`{"@id":"#doc","@type":["doc:Document"]}`)

	tests := []struct {
		name   string
		record *core.DocumentRecord
	}{
		{
			name: "full record",
			record: &core.DocumentRecord{
				ID:        core.NewStoreID(1),
				Digest:    core.DigestFromContent(doc),
				Document:  doc,
				CreatedAt: now,
				UpdatedAt: now.Add(time.Hour),
			},
		},
		{
			name: "zero timestamps",
			record: &core.DocumentRecord{
				ID:       core.NewStoreID(18446744073709551615), // max uint64
				Digest:   core.DigestFromContent(doc),
				Document: doc,
			},
		},
		{
			name: "unicode document",
			record: &core.DocumentRecord{
				ID:        core.NewStoreID(7),
				Document:  []byte(`{"name":"Тест 🐾"}`),
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocumentRecord(tt.record)
			require.NotEmpty(t, data)
			assert.Equal(t, DocumentRecordMUS.Size(*tt.record), len(data))

			decoded, err := UnmarshalDocumentRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record.ID, decoded.ID)
			assert.Equal(t, tt.record.Digest, decoded.Digest)
			assert.Equal(t, tt.record.Document, decoded.Document)
			assert.True(t, tt.record.CreatedAt.Equal(decoded.CreatedAt))
			assert.True(t, tt.record.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestUnmarshalDocumentRecord_Invalid(t *testing.T) {
	record := &core.DocumentRecord{
		ID:        core.NewStoreID(3),
		Document:  []byte(`{"@graph":[]}`),
		CreatedAt: time.Now().UTC(),
	}
	data := MarshalDocumentRecord(record)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty data", []byte{}, ErrTruncatedData},
		{"truncated", data[:len(data)/2], ErrTruncatedData},
		{"unknown version", append([]byte{9}, data[1:]...), ErrSerializationFailed},
		{"trailing bytes", append(append([]byte{}, data...), 0, 0), ErrSerializationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocumentRecord(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
