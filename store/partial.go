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
	"strings"

	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/search"
	"github.com/subratsf/amfstore/vocabulary"
)

// Partial is a Store that also answers narrow queries and extracts reduced
// documents for a single endpoint, schema or security requirement.
//
// Lookups by id return nil for ids that do not exist. Only a missing
// doc:encodes, endpoint path or operation method is reported as an error.
type Partial struct {
	*Store
}

// NewPartial creates a Partial store for document. See New.
func NewPartial(document any, opts ...Option) (*Partial, error) {
	s, err := New(document, opts...)
	if err != nil {
		return nil, err
	}
	return &Partial{Store: s}, nil
}

// endpoints returns the endpoint nodes of the encoded API in document order.
func endpoints(doc *graph.Document) ([]graph.Node, error) {
	api, err := doc.Encodes()
	if err != nil {
		return nil, err
	}
	return doc.Nodes(api, vocabulary.APIEndpoint), nil
}

func findByID(nodes []graph.Node, id string) graph.Node {
	for _, n := range nodes {
		if graph.ID(n) == id {
			return n
		}
	}
	return nil
}

// isShape reports whether any of the node types is a data shape class.
func isShape(doc *graph.Document, n graph.Node) bool {
	for _, t := range doc.Types(n) {
		if ns, _ := vocabulary.Split(t); ns == vocabulary.Shapes || t == vocabulary.ShaclNodeShape {
			return true
		}
	}
	return false
}

func isSecurity(doc *graph.Document, n graph.Node) bool {
	return doc.HasType(n, vocabulary.SecuritySecurityRequirement) ||
		doc.HasType(n, vocabulary.SecuritySecurityScheme) ||
		doc.HasType(n, vocabulary.SecurityParametrizedSecurityScheme)
}

// SummaryPartial returns a document holding the document node and the
// encoded API without its endpoints.
func (p *Partial) SummaryPartial(ctx context.Context) (*graph.Document, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	api, err := b.doc.Encodes()
	if err != nil {
		return nil, err
	}
	return b.doc.Wrap(b.doc.Reduce(api, nil, vocabulary.APIEndpoint)), nil
}

// Endpoint returns a reduced document rooted at the endpoint with the given
// id. Operations and every shape reachable from them are inlined. An
// endpoint without a path fails with a MalformedGraphError.
func (p *Partial) Endpoint(ctx context.Context, id string) (*graph.Document, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	eps, err := endpoints(b.doc)
	if err != nil {
		return nil, err
	}
	endpoint := findByID(eps, id)
	if endpoint == nil {
		return nil, nil
	}
	return reduceEndpoint(b.doc, endpoint)
}

// reduceEndpoint reduces endpoint, which must carry its path.
func reduceEndpoint(doc *graph.Document, endpoint graph.Node) (*graph.Document, error) {
	if !doc.Has(endpoint, vocabulary.APIPath) {
		return nil, core.NewMalformedGraphError(doc.Key(vocabulary.APIPath), graph.ID(endpoint))
	}
	return doc.Reduce(endpoint, nil), nil
}

// PartialOperationEndpoint returns the reduced endpoint containing the
// operation identified by operation. The value is matched against
// operation ids across all endpoints first; when no id matches it is
// compared to operation methods, ignoring case. Endpoints and operations
// are visited in document order and the first match wins.
func (p *Partial) PartialOperationEndpoint(ctx context.Context, operation string) (*graph.Document, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	eps, err := endpoints(b.doc)
	if err != nil {
		return nil, err
	}

	match := func(op graph.Node) bool { return graph.ID(op) == operation }
	endpoint, _ := findOperation(b.doc, eps, match)
	if endpoint == nil {
		endpoint, _ = findOperation(b.doc, eps, func(op graph.Node) bool {
			return strings.EqualFold(b.doc.String(op, vocabulary.APIMethod), operation)
		})
	}
	if endpoint == nil {
		return nil, nil
	}
	return reduceEndpoint(b.doc, endpoint)
}

func findOperation(doc *graph.Document, eps []graph.Node, match func(graph.Node) bool) (endpoint, operation graph.Node) {
	for _, ep := range eps {
		for _, op := range doc.Nodes(ep, vocabulary.APISupportedOperation) {
			if match(op) {
				return ep, op
			}
		}
	}
	return nil, nil
}

// Schema returns a reduced document rooted at the shape with the given id.
// ldContext is attached as the document context; when nil the source
// context is used. Self-referencing shapes are kept as links.
func (p *Partial) Schema(ctx context.Context, id string, ldContext graph.Context) (*graph.Document, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	n, ok := b.doc.Lookup(id)
	if !ok || !isShape(b.doc, n) {
		return nil, nil
	}
	return b.doc.Reduce(n, ldContext), nil
}

// SecurityRequirement returns a reduced document rooted at the security
// requirement or security scheme with the given id.
func (p *Partial) SecurityRequirement(ctx context.Context, id string, ldContext graph.Context) (*graph.Document, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	n, ok := b.doc.Lookup(id)
	if !ok || !isSecurity(b.doc, n) {
		return nil, nil
	}
	return b.doc.Reduce(n, ldContext), nil
}

// Operation returns the serialized operation with the given id.
func (p *Partial) Operation(ctx context.Context, id string) (*core.ApiOperation, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	eps, err := endpoints(b.doc)
	if err != nil {
		return nil, err
	}
	_, op := findOperation(b.doc, eps, func(op graph.Node) bool { return graph.ID(op) == id })
	if op == nil {
		return nil, nil
	}
	return b.serializer.Operation(op)
}

// OperationParent returns the serialized endpoint that declares the
// operation with the given id.
func (p *Partial) OperationParent(ctx context.Context, id string) (*core.ApiEndPoint, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	eps, err := endpoints(b.doc)
	if err != nil {
		return nil, err
	}
	ep, _ := findOperation(b.doc, eps, func(op graph.Node) bool { return graph.ID(op) == id })
	if ep == nil {
		return nil, nil
	}
	return b.serializer.EndPoint(ep)
}

// Type returns the serialized shape with the given id.
func (p *Partial) Type(ctx context.Context, id string) (*core.ApiShapeUnion, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	n, ok := b.doc.Lookup(id)
	if !ok || !isShape(b.doc, n) {
		return nil, nil
	}
	return b.serializer.Shape(n)
}

// ListEndpoints returns the navigation view of every endpoint.
func (p *Partial) ListEndpoints(ctx context.Context) ([]core.ApiEndPointListItem, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	eps, err := endpoints(b.doc)
	if err != nil {
		return nil, err
	}
	items := make([]core.ApiEndPointListItem, 0, len(eps))
	for _, ep := range eps {
		item, err := b.serializer.EndPointListItem(ep)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// ListTypes returns the declared shapes, including those of referenced
// modules.
func (p *Partial) ListTypes(ctx context.Context) ([]core.ApiNodeShapeListItem, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	items := make([]core.ApiNodeShapeListItem, 0)
	for _, n := range b.doc.Declares() {
		if isShape(b.doc, n) {
			items = append(items, *b.serializer.NodeShapeListItem(n))
		}
	}
	return items, nil
}

// ListSecurity returns the declared security schemes.
func (p *Partial) ListSecurity(ctx context.Context) ([]core.ApiSecuritySchemeListItem, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	items := make([]core.ApiSecuritySchemeListItem, 0)
	for _, n := range b.doc.Declares() {
		if b.doc.HasType(n, vocabulary.SecuritySecurityScheme) {
			items = append(items, *b.serializer.SecuritySchemeListItem(n))
		}
	}
	return items, nil
}

// ListDocumentations returns the documentation pages of the API.
func (p *Partial) ListDocumentations(ctx context.Context) ([]core.ApiDocumentation, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	api, err := b.doc.Encodes()
	if err != nil {
		return nil, err
	}
	docs := make([]core.ApiDocumentation, 0)
	for _, n := range b.doc.Nodes(api, vocabulary.CoreDocumentation) {
		docs = append(docs, *b.serializer.Documentation(n))
	}
	return docs, nil
}

// Search scores endpoints, operations, types, security schemes and
// documentation pages against query and returns up to limit hits.
func (p *Partial) Search(ctx context.Context, query string, limit int) ([]core.SearchResult, error) {
	b, err := p.current(ctx)
	if err != nil || b == nil {
		return nil, err
	}
	items, err := searchItems(b.doc)
	if err != nil {
		return nil, err
	}
	return p.searcher.Find(items, query, limit), nil
}

func searchItems(doc *graph.Document) ([]search.Item, error) {
	api, err := doc.Encodes()
	if err != nil {
		return nil, err
	}
	text := func(n graph.Node, iris ...string) string {
		parts := make([]string, 0, len(iris))
		for _, iri := range iris {
			if v := doc.String(n, iri); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, " ")
	}

	var items []search.Item
	for _, ep := range doc.Nodes(api, vocabulary.APIEndpoint) {
		path := doc.String(ep, vocabulary.APIPath)
		items = append(items, search.Item{
			ID:    graph.ID(ep),
			Kind:  core.SearchKindEndpoint,
			Label: path,
			Text:  text(ep, vocabulary.CoreName, vocabulary.CoreDescription),
		})
		for _, op := range doc.Nodes(ep, vocabulary.APISupportedOperation) {
			label := doc.String(op, vocabulary.CoreName)
			if label == "" {
				label = strings.ToUpper(doc.String(op, vocabulary.APIMethod)) + " " + path
			}
			opText := text(op, vocabulary.APIMethod, vocabulary.CoreDescription, vocabulary.CoreSummary, vocabulary.APIOperationID)
			items = append(items, search.Item{
				ID:    graph.ID(op),
				Kind:  core.SearchKindOperation,
				Label: label,
				Text:  opText + " " + path,
			})
		}
	}
	for _, n := range doc.Declares() {
		switch {
		case isShape(doc, n):
			items = append(items, search.Item{
				ID:    graph.ID(n),
				Kind:  core.SearchKindType,
				Label: doc.String(n, vocabulary.ShaclName),
				Text:  text(n, vocabulary.CoreDisplayName, vocabulary.CoreDescription),
			})
		case doc.HasType(n, vocabulary.SecuritySecurityScheme):
			label := doc.String(n, vocabulary.CoreDisplayName)
			if label == "" {
				label = doc.String(n, vocabulary.CoreName)
			}
			items = append(items, search.Item{
				ID:    graph.ID(n),
				Kind:  core.SearchKindSecurity,
				Label: label,
				Text:  text(n, vocabulary.CoreName, vocabulary.SecurityType, vocabulary.CoreDescription),
			})
		}
	}
	for _, n := range doc.Nodes(api, vocabulary.CoreDocumentation) {
		items = append(items, search.Item{
			ID:    graph.ID(n),
			Kind:  core.SearchKindDocumentation,
			Label: doc.String(n, vocabulary.CoreTitle),
			Text:  text(n, vocabulary.CoreDescription),
		})
	}
	return items, nil
}
