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


package core

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

const storeIDPrefix = "store-"

// StoreID is the opaque handle of one registered graph store.
type StoreID string

// NewStoreID formats a sequence number as a store identifier.
// Sequence numbers must never be reused by the caller.
func NewStoreID(seq uint64) StoreID {
	return StoreID(storeIDPrefix + strconv.FormatUint(seq, 10))
}

// Sequence returns the sequence number a StoreID was minted from.
func (id StoreID) Sequence() (uint64, bool) {
	s, ok := strings.CutPrefix(string(id), storeIDPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id StoreID) String() string {
	return string(id)
}

// DigestFromContent returns the hex encoded 256-bit blake2b digest of data.
func DigestFromContent(data []byte) string {
	h, _ := blake2b.New(32, nil) // only fails for invalid sizes or keys
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DocumentRecord is the persisted form of a registered graph document.
type DocumentRecord struct {
	ID        StoreID
	Digest    string    // blake2b digest of Document
	Document  []byte    // JSON encoded graph document
	CreatedAt time.Time // When the document was first registered
	UpdatedAt time.Time // When the document was last replaced
}

// StoreInfo describes a registered store.
type StoreInfo struct {
	ID         StoreID   `json:"id"`
	Digest     string    `json:"digest"`
	APIName    string    `json:"apiName,omitempty"`
	APIVersion string    `json:"apiVersion,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SearchKind is the kind of navigation item a search hit refers to.
type SearchKind string

const (
	SearchKindEndpoint      SearchKind = "endpoint"
	SearchKindOperation     SearchKind = "operation"
	SearchKindType          SearchKind = "type"
	SearchKindSecurity      SearchKind = "security"
	SearchKindDocumentation SearchKind = "documentation"
)

type SearchResult struct {
	ID    string     `json:"id"`
	Kind  SearchKind `json:"kind"`
	Label string     `json:"label"`
	Score float32    `json:"score"`
}
