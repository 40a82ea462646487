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


package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/vocabulary"
)

// Node is a JSON-LD node as produced by encoding/json.
type Node = map[string]any

// Context maps prefixes to namespace IRIs.
type Context map[string]any

// Document is a read-only, indexed view over a graph document.
// It never mutates the value it was built from.
type Document struct {
	source   Node              // top level object as supplied
	root     Node              // document node (differs from source for flattened graphs)
	context  Context           // merged @context
	prefixes map[string]string // namespace IRI -> prefix
	index    map[string]Node   // @id -> node
}

// New builds a Document from a decoded JSON value, raw JSON bytes, or an
// existing Document. A single-element list is unwrapped.
func New(value any) (*Document, error) {
	switch v := value.(type) {
	case *Document:
		if v == nil {
			return nil, fmt.Errorf("%w: nil document", core.ErrInvalidDocument)
		}
		return v, nil
	case []byte:
		return Parse(v)
	case json.RawMessage:
		return Parse(v)
	}

	source, err := core.NormalizeDocument(value)
	if err != nil {
		return nil, err
	}
	return build(source), nil
}

// Parse decodes raw JSON into a Document.
func Parse(data []byte) (*Document, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidDocument, err)
	}
	return New(value)
}

// Decode reads a single JSON value from r into a Document.
func Decode(r io.Reader) (*Document, error) {
	var value any
	if err := json.NewDecoder(r).Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidDocument, err)
	}
	return New(value)
}

func build(source Node) *Document {
	d := &Document{
		source:   source,
		root:     source,
		context:  mergeContext(source["@context"]),
		prefixes: make(map[string]string),
		index:    make(map[string]Node),
	}
	for prefix, ns := range d.context {
		if s, ok := ns.(string); ok && !strings.HasPrefix(prefix, "@") {
			d.prefixes[s] = prefix
		}
	}

	d.indexValue(source)

	if flat, ok := source["@graph"].([]any); ok {
		d.root = d.flattenedRoot(flat)
	}
	return d
}

// mergeContext folds an object or a list of objects into one Context.
// Remote context references (strings) are ignored.
func mergeContext(value any) Context {
	switch v := value.(type) {
	case map[string]any:
		return Context(v)
	case []any:
		merged := make(Context)
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				for k, ns := range m {
					merged[k] = ns
				}
			}
		}
		return merged
	}
	return nil
}

func (d *Document) indexValue(value any) {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			d.indexValue(item)
		}
	case map[string]any:
		if id, ok := v["@id"].(string); ok && len(v) > 1 {
			// Keep the richest occurrence of an id
			if prev, seen := d.index[id]; !seen || len(v) > len(prev) {
				d.index[id] = v
			}
		}
		for k, child := range v {
			if k == "@context" {
				continue
			}
			d.indexValue(child)
		}
	}
}

func (d *Document) flattenedRoot(nodes []any) Node {
	var encoder Node
	for _, item := range nodes {
		n, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if d.HasType(n, vocabulary.DocDocument) {
			return n
		}
		if encoder == nil {
			if _, ok := d.Get(n, vocabulary.DocEncodes); ok {
				encoder = n
			}
		}
	}
	if encoder != nil {
		return encoder
	}
	return d.source
}

// Root returns the document node.
func (d *Document) Root() Node {
	return d.root
}

// Context returns the document's merged @context. Callers must not modify it.
func (d *Document) Context() Context {
	return d.context
}

// Lookup returns the node with the given @id.
func (d *Document) Lookup(id string) (Node, bool) {
	n, ok := d.index[id]
	return n, ok
}

// Key returns the property name under which iri appears in this document:
// the compact form when the context declares a prefix for its namespace,
// otherwise the IRI itself.
func (d *Document) Key(iri string) string {
	ns, local := vocabulary.Split(iri)
	if prefix, ok := d.prefixes[ns]; ok && ns != "" {
		return prefix + ":" + local
	}
	return iri
}

// Expand turns a compact term into an IRI using the context. Terms that are
// keywords, unknown prefixes or already absolute are returned unchanged.
func (d *Document) Expand(term string) string {
	if strings.HasPrefix(term, "@") {
		return term
	}
	prefix, local, ok := strings.Cut(term, ":")
	if !ok || strings.HasPrefix(local, "//") {
		return term
	}
	if ns, ok := d.context[prefix].(string); ok {
		return ns + local
	}
	return term
}

// Encodes returns the API node encoded by the document.
func (d *Document) Encodes() (Node, error) {
	n, ok := d.Node(d.root, vocabulary.DocEncodes)
	if !ok {
		return nil, core.NewMalformedGraphError(d.Key(vocabulary.DocEncodes), ID(d.root))
	}
	return n, nil
}

// Declares returns the declarations of the document followed by those of
// the modules it references.
func (d *Document) Declares() []Node {
	declares := d.Nodes(d.root, vocabulary.DocDeclares)
	for _, ref := range d.Nodes(d.root, vocabulary.DocReferences) {
		declares = append(declares, d.Nodes(ref, vocabulary.DocDeclares)...)
	}
	return declares
}

// MarshalJSON encodes the value the document was built from.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.source)
}
