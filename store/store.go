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


package store

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/search"
	"github.com/subratsf/amfstore/serializer"
)

// GraphSerializer converts nodes of the document it was created for into
// typed domain objects.
type GraphSerializer interface {
	Summary(api graph.Node) (*core.ApiSummary, error)
	EndPoint(n graph.Node) (*core.ApiEndPoint, error)
	EndPointListItem(n graph.Node) (*core.ApiEndPointListItem, error)
	Operation(n graph.Node) (*core.ApiOperation, error)
	Shape(n graph.Node) (*core.ApiShapeUnion, error)
	SecurityRequirement(n graph.Node) (*core.ApiSecurityRequirement, error)
	SecurityScheme(n graph.Node) *core.ApiSecurityScheme
	Documentation(n graph.Node) *core.ApiDocumentation
	NodeShapeListItem(n graph.Node) *core.ApiNodeShapeListItem
	SecuritySchemeListItem(n graph.Node) *core.ApiSecuritySchemeListItem
}

// SerializerFactory binds a GraphSerializer to a document. It is called
// every time a store's document changes.
type SerializerFactory func(doc *graph.Document) GraphSerializer

// DefaultSerializerFactory returns the serializer package implementation.
func DefaultSerializerFactory(doc *graph.Document) GraphSerializer {
	return serializer.New(doc)
}

// binding pairs a document with the serializer created for it. Both are
// swapped together.
type binding struct {
	doc        *graph.Document
	serializer GraphSerializer
}

// Store owns one graph document and the serializer bound to it.
//
// Reads are safe for concurrent use. ReplaceDocument swaps the document
// atomically but does not wait for reads already in progress; the last
// write wins.
type Store struct {
	state    atomic.Pointer[binding]
	factory  SerializerFactory
	searcher *search.Searcher
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithSerializerFactory sets the factory used to bind serializers.
// Default is DefaultSerializerFactory.
func WithSerializerFactory(factory SerializerFactory) Option {
	return func(s *Store) error {
		if factory == nil {
			return core.ErrInvalidArgument
		}
		s.factory = factory
		return nil
	}
}

// WithSearcher sets the searcher used by Partial.Search.
func WithSearcher(searcher *search.Searcher) Option {
	return func(s *Store) error {
		if searcher == nil {
			return core.ErrInvalidArgument
		}
		s.searcher = searcher
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a store for document. A nil document creates an empty store
// whose readers return nil results until ReplaceDocument is called.
//
// document may be a decoded JSON value, raw JSON bytes or a *graph.Document.
// Anything that is not a graph document fails with core.ErrInvalidDocument.
func New(document any, opts ...Option) (*Store, error) {
	s := &Store{
		factory: DefaultSerializerFactory,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.searcher == nil {
		searcher, err := search.NewSearcher(search.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.searcher = searcher
	}
	if document != nil {
		if err := s.ReplaceDocument(document); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReplaceDocument swaps the backing document and re-binds the serializer.
// On error the current document is kept.
func (s *Store) ReplaceDocument(document any) error {
	doc, err := graph.New(document)
	if err != nil {
		return err
	}
	s.state.Store(&binding{doc: doc, serializer: s.factory(doc)})
	s.logger.Debug("document bound", "root", graph.ID(doc.Root()))
	return nil
}

// Document returns the current document, or nil if none is bound.
func (s *Store) Document() *graph.Document {
	if b := s.state.Load(); b != nil {
		return b.doc
	}
	return nil
}

// current returns the active binding, or nil when no document is bound.
func (s *Store) current(ctx context.Context) (*binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.state.Load(), nil
}

// APISummary returns the serialized summary of the encoded API node, or nil
// when no document is bound.
func (s *Store) APISummary(ctx context.Context) (*core.ApiSummary, error) {
	b, err := s.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	api, err := b.doc.Encodes()
	if err != nil {
		return nil, err
	}
	return b.serializer.Summary(api)
}
