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
	"maps"
	"slices"

	"github.com/subratsf/amfstore/vocabulary"
)

// Reduce builds a self-contained document rooted at a copy of root.
//
// Links reachable from root are replaced with copies of the nodes they point
// to. A node whose @id was already copied into the reduction is emitted as a
// bare link instead of being expanded again, so cyclic references terminate
// and every link in the result points at a node inside it.
//
// ctx is attached as @context; when nil the source document's context is used.
// Properties named in exclude (expanded IRIs) are dropped at every depth.
func (d *Document) Reduce(root Node, ctx Context, exclude ...string) *Document {
	r := &reducer{
		doc:     d,
		seen:    make(map[string]struct{}),
		exclude: make(map[string]struct{}, len(exclude)),
	}
	for _, iri := range exclude {
		r.exclude[iri] = struct{}{}
	}

	out := r.node(root)
	if ctx == nil {
		ctx = d.context
	}
	if ctx != nil {
		copied := make(map[string]any, len(ctx))
		for k, v := range ctx {
			copied[k] = v
		}
		out["@context"] = copied
	}
	return build(out)
}

// Wrap returns a document whose root is a copy of the source document node
// encoding the given (already reduced) node. Used to give partial summaries
// the same shape as a full document.
func (d *Document) Wrap(encoded *Document) *Document {
	wrapper := make(Node, 4)
	if id := ID(d.root); id != "" {
		wrapper["@id"] = id
	}
	if t, ok := d.root["@type"]; ok {
		wrapper["@type"] = t
	}

	body := make(Node, len(encoded.root))
	for k, v := range encoded.root {
		if k == "@context" {
			wrapper["@context"] = v
			continue
		}
		body[k] = v
	}
	wrapper[d.Key(vocabulary.DocEncodes)] = body
	return build(wrapper)
}

type reducer struct {
	doc     *Document
	seen    map[string]struct{}
	exclude map[string]struct{}
}

func (r *reducer) node(n Node) Node {
	if id := ID(n); id != "" {
		r.seen[id] = struct{}{}
	}
	out := make(Node, len(n))
	// Sorted so the first occurrence of a shared node, which is the one
	// expanded, does not depend on map order.
	for _, k := range slices.Sorted(maps.Keys(n)) {
		v := n[k]
		if k == "@context" {
			continue
		}
		if _, skip := r.exclude[r.doc.Expand(k)]; skip {
			continue
		}
		out[k] = r.value(v)
	}
	return out
}

func (r *reducer) value(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = r.value(item)
		}
		return out
	case map[string]any:
		id := ID(t)
		if id == "" {
			return r.node(t)
		}
		if _, done := r.seen[id]; done {
			return Node{"@id": id}
		}
		target := t
		if indexed, ok := r.doc.index[id]; ok {
			target = indexed
		} else if _, isLink := LinkID(t); isLink {
			// Dangling in the source as well
			return Node{"@id": id}
		}
		return r.node(target)
	default:
		return v
	}
}
