package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/storage"
)

// DocumentRepository implements storage.DocumentRepository using BadgerDB.
type DocumentRepository struct {
	backend *Backend
	mu      sync.Mutex // guards idSeq; badger.Sequence.Next is not safe after Release
	idSeq   *badger.Sequence
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (storage.DocumentRepository, error) {
	idSeq, err := backend.GetSequence(documentIDSeq)
	if err != nil {
		return nil, err
	}

	return &DocumentRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DocumentRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idSeq == nil {
		return nil
	}
	err := r.idSeq.Release()
	r.idSeq = nil
	return err
}

func (r *DocumentRepository) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// NextSequence returns the next store sequence number.
func (r *DocumentRepository) NextSequence(ctx context.Context) (uint64, error) {
	if err := r.check(ctx); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idSeq == nil {
		return 0, storage.ErrStorageClosed
	}

	next, err := r.idSeq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		if next, err = r.idSeq.Next(); err != nil {
			return 0, err
		}
	}
	return next, nil
}

// SaveDocument inserts or replaces a document record.
func (r *DocumentRepository) SaveDocument(ctx context.Context, record *core.DocumentRecord) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if err := core.ValidateDocumentRecord(record); err != nil {
		return err
	}
	key, err := makeDocumentKey(record.ID)
	if err != nil {
		return err
	}

	return r.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		existing, err := readDocument(tx, key)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		if existing != nil {
			record.CreatedAt = existing.CreatedAt
		} else if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		record.UpdatedAt = now
		if record.Digest == "" {
			record.Digest = core.DigestFromContent(record.Document)
		}

		return tx.Set(key, storage.MarshalDocumentRecord(record))
	})
}

// GetDocument retrieves a document record by store identifier.
func (r *DocumentRepository) GetDocument(ctx context.Context, id core.StoreID) (*core.DocumentRecord, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	key, err := makeDocumentKey(id)
	if err != nil {
		return nil, err
	}

	var record *core.DocumentRecord
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		record, err = readDocument(tx, key)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteDocument removes a document record. Missing records are ignored.
func (r *DocumentRepository) DeleteDocument(ctx context.Context, id core.StoreID) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	key, err := makeDocumentKey(id)
	if err != nil {
		return err
	}
	return r.backend.WithTransaction(ctx, func(tx *badger.Txn) error {
		return tx.Delete(key)
	})
}

// ListDocuments returns every document record in registration order.
func (r *DocumentRepository) ListDocuments(ctx context.Context) ([]*core.DocumentRecord, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}

	var records []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var record *core.DocumentRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = decodeDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Clear drops every document record. The sequence is kept.
func (r *DocumentRepository) Clear(ctx context.Context) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	return r.backend.DropPrefix([]byte(documentRecordPrefix))
}

// readDocument reads and verifies one record inside tx.
func readDocument(tx *badger.Txn, key []byte) (*core.DocumentRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var record *core.DocumentRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = decodeDocument(val)
		return err
	})
	return record, err
}

// decodeDocument unmarshals and verifies a record. The result does not
// alias val, which badger reuses once Value returns.
func decodeDocument(val []byte) (*core.DocumentRecord, error) {
	record, err := storage.UnmarshalDocumentRecord(val)
	if err != nil {
		return nil, err
	}
	if digest := core.DigestFromContent(record.Document); digest != record.Digest {
		return nil, fmt.Errorf("%w: store %s", storage.ErrDigestMismatch, record.ID)
	}
	return record, nil
}
