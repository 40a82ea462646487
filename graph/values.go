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
	"strconv"
)

// ID returns the @id of a node, or "" if it has none.
func ID(n Node) string {
	id, _ := n["@id"].(string)
	return id
}

// LinkID reports whether v is a bare reference ({"@id": ...}) and returns
// the referenced id.
func LinkID(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	id, ok := m["@id"].(string)
	return id, ok
}

// Get returns the raw value of the property iri, looked up first under its
// compact key and then under the expanded IRI.
func (d *Document) Get(n Node, iri string) (any, bool) {
	if n == nil {
		return nil, false
	}
	if v, ok := n[d.Key(iri)]; ok {
		return v, true
	}
	v, ok := n[iri]
	return v, ok
}

// Has reports whether the property iri is present on n.
func (d *Document) Has(n Node, iri string) bool {
	_, ok := d.Get(n, iri)
	return ok
}

// Values returns the values of the property iri as a list.
func (d *Document) Values(n Node, iri string) []any {
	v, ok := d.Get(n, iri)
	if !ok || v == nil {
		return nil
	}
	if list, ok := v.([]any); ok {
		return list
	}
	return []any{v}
}

// Resolve turns a value into a node, following links through the index.
// Dangling links and non-object values do not resolve.
func (d *Document) Resolve(v any) (Node, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	if id, isLink := LinkID(m); isLink {
		target, found := d.index[id]
		return target, found
	}
	if _, isLiteral := m["@value"]; isLiteral {
		return nil, false
	}
	return m, true
}

// Nodes returns the resolved node values of the property iri.
func (d *Document) Nodes(n Node, iri string) []Node {
	values := d.Values(n, iri)
	if len(values) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(values))
	for _, v := range values {
		if node, ok := d.Resolve(v); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Node returns the first resolved node value of the property iri.
func (d *Document) Node(n Node, iri string) (Node, bool) {
	for _, v := range d.Values(n, iri) {
		if node, ok := d.Resolve(v); ok {
			return node, true
		}
	}
	return nil, false
}

// String returns the first literal value of the property iri as a string.
func (d *Document) String(n Node, iri string) string {
	for _, v := range d.Values(n, iri) {
		if s, ok := literalString(v); ok {
			return s
		}
	}
	return ""
}

// Strings returns every literal value of the property iri as strings.
func (d *Document) Strings(n Node, iri string) []string {
	values := d.Values(n, iri)
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := literalString(v); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bool returns the first literal value of the property iri as a bool.
func (d *Document) Bool(n Node, iri string) (bool, bool) {
	for _, v := range d.Values(n, iri) {
		switch b := literal(v).(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed, true
			}
		}
	}
	return false, false
}

// Int returns the first literal value of the property iri as an int.
func (d *Document) Int(n Node, iri string) (int, bool) {
	for _, v := range d.Values(n, iri) {
		switch num := literal(v).(type) {
		case float64:
			return int(num), true
		case int:
			return num, true
		case int64:
			return int(num), true
		case json.Number:
			if i, err := num.Int64(); err == nil {
				return int(i), true
			}
		case string:
			if i, err := strconv.Atoi(num); err == nil {
				return i, true
			}
		}
	}
	return 0, false
}

// Types returns the expanded @type values of a node.
func (d *Document) Types(n Node) []string {
	var raw []string
	switch t := n["@type"].(type) {
	case string:
		raw = []string{t}
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	types := make([]string, 0, len(raw))
	for _, t := range raw {
		types = append(types, d.Expand(t))
	}
	return types
}

// HasType reports whether the node is typed with the (expanded) iri.
func (d *Document) HasType(n Node, iri string) bool {
	for _, t := range d.Types(n) {
		if t == iri {
			return true
		}
	}
	return false
}

// literal unwraps {"@value": v} objects and single element lists.
func literal(v any) any {
	for {
		switch t := v.(type) {
		case map[string]any:
			inner, ok := t["@value"]
			if !ok {
				if id, isLink := LinkID(t); isLink {
					return id
				}
				return nil
			}
			v = inner
		case []any:
			if len(t) == 0 {
				return nil
			}
			v = t[0]
		default:
			return v
		}
	}
}

func literalString(v any) (string, bool) {
	switch s := literal(v).(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}
