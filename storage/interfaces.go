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
	"context"

	"github.com/subratsf/amfstore/core"
)

// DocumentRepository persists registered graph documents and the sequence
// store identifiers are minted from.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// NextSequence returns the next store sequence number. Values are
	// strictly increasing for the lifetime of the underlying database and
	// are never handed out twice, including across Clear and restarts.
	NextSequence(ctx context.Context) (uint64, error)

	// SaveDocument inserts or replaces the record for record.ID.
	// Digest is computed from Document when empty. CreatedAt is kept from an
	// existing record, or set to now for new ones. UpdatedAt is set to now.
	SaveDocument(ctx context.Context, record *core.DocumentRecord) error

	// GetDocument retrieves a record by store identifier.
	// Returns ErrNotFound if the record doesn't exist, and ErrDigestMismatch
	// if the stored document no longer matches its digest.
	GetDocument(ctx context.Context, id core.StoreID) (*core.DocumentRecord, error)

	// DeleteDocument removes a record. Deleting a missing record is not an error.
	DeleteDocument(ctx context.Context, id core.StoreID) error

	// ListDocuments returns every record in sequence order.
	ListDocuments(ctx context.Context) ([]*core.DocumentRecord, error)

	// Clear removes every record. The sequence is not reset.
	Clear(ctx context.Context) error

	// Close releases the repository. The backend it was created on stays open.
	Close() error
}
