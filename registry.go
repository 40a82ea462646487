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


package amfstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/search"
	"github.com/subratsf/amfstore/storage"
	"github.com/subratsf/amfstore/storage/badger"
	"github.com/subratsf/amfstore/store"
	"github.com/subratsf/amfstore/transport"
)

// entry is one registered store and the metadata of its document.
type entry struct {
	store     *store.Partial
	digest    string
	createdAt time.Time
	updatedAt time.Time
}

// Registry hosts many graph stores keyed by store identifiers.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex // guards stores; held exclusively while persisting
	stores map[core.StoreID]*entry

	// seq mints ids when there is no repository.
	seq       atomic.Uint64
	repo      storage.DocumentRepository
	backend   *badger.Backend // set when the registry owns its storage
	transport transport.Transport
	storeOpts []store.Option
	closed    atomic.Bool
	logger    *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	logger     *slog.Logger
	repository storage.DocumentRepository
	transport  transport.Transport
	factory    store.SerializerFactory
	searcher   *search.Searcher
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(o *registryOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithRepository persists registered documents in repo and restores the
// documents it already holds. The registry does not close repo.
func WithRepository(repo storage.DocumentRepository) RegistryOption {
	return func(o *registryOptions) {
		o.repository = repo
	}
}

// WithTransport sets the transport reads are dispatched through.
// Default is transport.Direct(). The registry closes it on Close.
func WithTransport(t transport.Transport) RegistryOption {
	return func(o *registryOptions) {
		o.transport = t
	}
}

// WithSerializerFactory sets the factory every store binds its serializer
// with. Default is store.DefaultSerializerFactory.
func WithSerializerFactory(factory store.SerializerFactory) RegistryOption {
	return func(o *registryOptions) {
		o.factory = factory
	}
}

// WithSearcher sets the searcher shared by every store.
func WithSearcher(searcher *search.Searcher) RegistryOption {
	return func(o *registryOptions) {
		o.searcher = searcher
	}
}

func applyOptions(opts []RegistryOption) *registryOptions {
	options := &registryOptions{
		logger:    slog.Default(),
		transport: transport.Direct(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// NewRegistry creates a registry. Without WithRepository it keeps documents
// in memory only.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	return newRegistry(applyOptions(opts))
}

// Open creates a registry persisted in a BadgerDB database at filePath,
// restoring every document registered there before. Closing the registry
// closes the database.
func Open(filePath string, opts ...RegistryOption) (*Registry, error) {
	options := applyOptions(opts)

	backend, err := badger.OpenBackend(filePath, false, badger.WithLogger(options.logger))
	if err != nil {
		return nil, err
	}
	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	options.repository = repo

	r, err := newRegistry(options)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}
	r.backend = backend
	return r, nil
}

func newRegistry(options *registryOptions) (*Registry, error) {
	if options.transport == nil {
		return nil, fmt.Errorf("%w: nil transport", core.ErrInvalidArgument)
	}

	storeOpts := []store.Option{store.WithLogger(options.logger)}
	if options.factory != nil {
		storeOpts = append(storeOpts, store.WithSerializerFactory(options.factory))
	}
	if options.searcher != nil {
		storeOpts = append(storeOpts, store.WithSearcher(options.searcher))
	}

	r := &Registry{
		stores:    make(map[core.StoreID]*entry),
		repo:      options.repository,
		transport: options.transport,
		storeOpts: storeOpts,
		logger:    options.logger,
	}
	if r.repo != nil {
		if err := r.restore(context.Background()); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// restore registers every persisted document under its original id.
func (r *Registry) restore(ctx context.Context) error {
	records, err := r.repo.ListDocuments(ctx)
	if err != nil {
		return err
	}
	for _, record := range records {
		doc, err := graph.Parse(record.Document)
		if err != nil {
			return fmt.Errorf("restore %s: %w", record.ID, err)
		}
		partial, err := store.NewPartial(doc, r.storeOpts...)
		if err != nil {
			return fmt.Errorf("restore %s: %w", record.ID, err)
		}
		r.stores[record.ID] = &entry{
			store:     partial,
			digest:    record.Digest,
			createdAt: record.CreatedAt,
			updatedAt: record.UpdatedAt,
		}
	}
	r.logger.Info("registry restored", "stores", len(records))
	return nil
}

func (r *Registry) check(ctx context.Context) error {
	if r.closed.Load() {
		return ErrRegistryClosed
	}
	return ctx.Err()
}

// mint returns a store identifier that has never been issued before.
func (r *Registry) mint(ctx context.Context) (core.StoreID, error) {
	if r.repo == nil {
		return core.NewStoreID(r.seq.Add(1)), nil
	}
	seq, err := r.repo.NextSequence(ctx)
	if err != nil {
		return "", err
	}
	return core.NewStoreID(seq), nil
}

// encode turns document into an indexed graph and its JSON form.
func encode(document any) (*graph.Document, []byte, error) {
	doc, err := graph.New(document)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", core.ErrInvalidDocument, err)
	}
	return doc, data, nil
}

// Add registers document and returns the identifier of its new store.
// document may be a decoded JSON value, raw JSON bytes or a *graph.Document.
func (r *Registry) Add(ctx context.Context, document any) (core.StoreID, error) {
	if err := r.check(ctx); err != nil {
		return "", err
	}
	doc, data, err := encode(document)
	if err != nil {
		return "", err
	}
	partial, err := store.NewPartial(doc, r.storeOpts...)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.mint(ctx)
	if err != nil {
		return "", err
	}
	record := &core.DocumentRecord{ID: id, Digest: core.DigestFromContent(data), Document: data}
	if r.repo != nil {
		if err := r.repo.SaveDocument(ctx, record); err != nil {
			return "", err
		}
	} else {
		record.CreatedAt = time.Now().UTC()
		record.UpdatedAt = record.CreatedAt
	}

	r.stores[id] = &entry{
		store:     partial,
		digest:    record.Digest,
		createdAt: record.CreatedAt,
		updatedAt: record.UpdatedAt,
	}
	r.logger.Debug("store added", "store", id)
	return id, nil
}

// Replace swaps the document of an existing store. On error the store keeps
// its current document.
func (r *Registry) Replace(ctx context.Context, id core.StoreID, document any) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	doc, data, err := encode(document)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.stores[id]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrUnknownStore, id)
	}
	record := &core.DocumentRecord{ID: id, Digest: core.DigestFromContent(data), Document: data}
	if r.repo != nil {
		if err := r.repo.SaveDocument(ctx, record); err != nil {
			return err
		}
	} else {
		record.UpdatedAt = time.Now().UTC()
	}
	if err := e.store.ReplaceDocument(doc); err != nil {
		return err
	}
	e.digest = record.Digest
	e.updatedAt = record.UpdatedAt
	r.logger.Debug("store replaced", "store", id)
	return nil
}

// Delete removes a store. Deleting an unknown id is not an error.
func (r *Registry) Delete(ctx context.Context, id core.StoreID) error {
	if err := r.check(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[id]; !ok {
		return nil
	}
	if r.repo != nil {
		if err := r.repo.DeleteDocument(ctx, id); err != nil {
			return err
		}
	}
	delete(r.stores, id)
	r.logger.Debug("store deleted", "store", id)
	return nil
}

// Clear removes every store. Readers observe either all stores or none.
func (r *Registry) Clear(ctx context.Context) error {
	if err := r.check(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.repo != nil {
		if err := r.repo.Clear(ctx); err != nil {
			return err
		}
	}
	removed := len(r.stores)
	r.stores = make(map[core.StoreID]*entry)
	r.logger.Debug("registry cleared", "stores", removed)
	return nil
}

func (r *Registry) lookup(id core.StoreID) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownStore, id)
	}
	return e, nil
}

// Read runs command with args against the store identified by id and
// returns its result. Lookups that find nothing return a nil result.
//
// Unknown ids fail with core.ErrUnknownStore, names outside the Command set
// with core.ErrUnknownCommand and badly typed arguments with
// core.ErrInvalidArgument. Other errors are returned as the store produced
// them.
func (r *Registry) Read(ctx context.Context, id core.StoreID, command Command, args ...any) (any, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	h, ok := handlers[command]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownCommand, command)
	}
	partial := e.store
	return r.transport.Call(ctx, func(ctx context.Context) (any, error) {
		return h(ctx, partial, args)
	})
}

// IDs returns the registered store identifiers in registration order.
func (r *Registry) IDs() []core.StoreID {
	r.mu.RLock()
	ids := make([]core.StoreID, 0, len(r.stores))
	for id := range r.stores {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	slices.SortFunc(ids, func(a, b core.StoreID) int {
		sa, _ := a.Sequence()
		sb, _ := b.Sequence()
		return cmp.Compare(sa, sb)
	})
	return ids
}

// Info describes the store identified by id. APIName and APIVersion are
// empty when the document encodes no API.
func (r *Registry) Info(ctx context.Context, id core.StoreID) (*core.StoreInfo, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	e, ok := r.stores[id]
	var info *core.StoreInfo
	if ok {
		info = &core.StoreInfo{
			ID:        id,
			Digest:    e.digest,
			CreatedAt: e.createdAt,
			UpdatedAt: e.updatedAt,
		}
	}
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownStore, id)
	}

	summary, err := e.store.APISummary(ctx)
	if err != nil && !errors.Is(err, core.ErrMalformedGraph) {
		return nil, err
	}
	if summary != nil {
		info.APIName = summary.Name
		info.APIVersion = summary.Version
	}
	return info, nil
}

// Close releases the transport and, for registries created with Open, the
// database. Close is idempotent.
func (r *Registry) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if err := r.transport.Close(); err != nil {
		r.logger.Error("error closing transport", "err", err)
		errs = append(errs, err)
	}
	if r.backend != nil {
		if err := r.repo.Close(); err != nil {
			r.logger.Error("error closing document repository", "err", err)
			errs = append(errs, err)
		}
		if err := r.backend.Close(); err != nil {
			r.logger.Error("error closing backend storage", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
