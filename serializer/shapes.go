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


package serializer

import (
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/vocabulary"
)

// kinds is checked in order; the first matching type wins. AnyShape is the
// fallback since nearly every shape carries it.
var kinds = []struct {
	iri  string
	kind core.ShapeKind
}{
	{vocabulary.ShapesRecursiveShape, core.ShapeKindRecursive},
	{vocabulary.ShapesScalarShape, core.ShapeKindScalar},
	{vocabulary.ShapesMatrixShape, core.ShapeKindArray},
	{vocabulary.ShapesArrayShape, core.ShapeKindArray},
	{vocabulary.ShapesTupleShape, core.ShapeKindTuple},
	{vocabulary.ShapesUnionShape, core.ShapeKindUnion},
	{vocabulary.ShapesFileShape, core.ShapeKindFile},
	{vocabulary.ShapesNilShape, core.ShapeKindNil},
	{vocabulary.ShaclNodeShape, core.ShapeKindNode},
	{vocabulary.ShapesSchemaShape, core.ShapeKindSchema},
}

// Kind classifies a shape node.
func (s *Serializer) Kind(n graph.Node) core.ShapeKind {
	for _, k := range kinds {
		if s.doc.HasType(n, k.iri) {
			return k.kind
		}
	}
	return core.ShapeKindAny
}

// Shape serializes a data shape and everything it references. Shapes that
// reference themselves, directly or through other shapes, are cut at the
// second occurrence with a recursive marker.
func (s *Serializer) Shape(n graph.Node) (*core.ApiShapeUnion, error) {
	if n == nil {
		return nil, core.ErrInvalidArgument
	}
	return s.shape(n, make(map[string]bool)), nil
}

func (s *Serializer) shape(n graph.Node, path map[string]bool) *core.ApiShapeUnion {
	id := graph.ID(n)
	out := &core.ApiShapeUnion{
		ID:          id,
		Types:       s.doc.Types(n),
		Kind:        s.Kind(n),
		Name:        s.str(n, vocabulary.ShaclName),
		DisplayName: s.str(n, vocabulary.CoreDisplayName),
		Description: s.str(n, vocabulary.CoreDescription),
	}
	if id != "" && path[id] {
		return &core.ApiShapeUnion{
			ID:       id,
			Kind:     core.ShapeKindRecursive,
			Name:     out.Name,
			FixPoint: id,
		}
	}
	if id != "" {
		path[id] = true
		defer delete(path, id)
	}

	out.ReadOnly = s.flag(n, vocabulary.ShapesReadOnly)
	out.Deprecated = s.flag(n, vocabulary.CoreDeprecated)
	out.Values = s.doc.Strings(n, vocabulary.ShaclIn)
	out.Inherits = s.shapes(n, vocabulary.ShapesInherits, path)
	out.And = s.shapes(n, vocabulary.ShaclAnd, path)
	out.Or = s.shapes(n, vocabulary.ShaclOr, path)
	out.Xone = s.shapes(n, vocabulary.ShaclXone, path)

	switch out.Kind {
	case core.ShapeKindRecursive:
		out.FixPoint = s.str(n, vocabulary.ShapesFixPoint)
	case core.ShapeKindScalar:
		s.scalar(n, out)
	case core.ShapeKindFile:
		s.scalar(n, out)
		out.FileTypes = s.doc.Strings(n, vocabulary.ShapesFileType)
	case core.ShapeKindArray:
		if items, ok := s.doc.Node(n, vocabulary.ShapesItems); ok {
			out.Items = s.shape(items, path)
		}
	case core.ShapeKindTuple:
		out.Tuple = s.shapes(n, vocabulary.ShapesItems, path)
	case core.ShapeKindUnion:
		out.AnyOf = s.shapes(n, vocabulary.ShapesAnyOf, path)
	case core.ShapeKindNode:
		out.Closed = s.flag(n, vocabulary.ShaclClosed)
		for _, p := range s.doc.Nodes(n, vocabulary.ShaclProperty) {
			out.Properties = append(out.Properties, s.property(p, path))
		}
	}
	return out
}

func (s *Serializer) scalar(n graph.Node, out *core.ApiShapeUnion) {
	if dt := s.str(n, vocabulary.ShaclDatatype); dt != "" {
		out.DataType = vocabulary.Local(s.doc.Expand(dt))
	}
	out.Format = s.str(n, vocabulary.ShapesFormat)
	out.Pattern = s.str(n, vocabulary.ShaclPattern)
	if v, ok := s.doc.Int(n, vocabulary.ShaclMinLength); ok {
		out.MinLength = &v
	}
	if v, ok := s.doc.Int(n, vocabulary.ShaclMaxLength); ok {
		out.MaxLength = &v
	}
}

func (s *Serializer) shapes(n graph.Node, iri string, path map[string]bool) []core.ApiShapeUnion {
	var out []core.ApiShapeUnion
	for _, child := range s.doc.Nodes(n, iri) {
		out = append(out, *s.shape(child, path))
	}
	return out
}

func (s *Serializer) property(n graph.Node, path map[string]bool) core.ApiPropertyShape {
	p := core.ApiPropertyShape{
		ID:   graph.ID(n),
		Name: s.str(n, vocabulary.ShaclName),
	}
	if v := s.str(n, vocabulary.ShaclPath); v != "" {
		p.Path = vocabulary.Local(s.doc.Expand(v))
	}
	p.MinCount, _ = s.doc.Int(n, vocabulary.ShaclMinCount)
	if v, ok := s.doc.Int(n, vocabulary.ShaclMaxCount); ok {
		p.MaxCount = &v
	}
	if rng, ok := s.doc.Node(n, vocabulary.ShapesRange); ok {
		p.Range = s.shape(rng, path)
	}
	return p
}

// NodeShapeListItem serializes the navigation view of a declared type.
func (s *Serializer) NodeShapeListItem(n graph.Node) *core.ApiNodeShapeListItem {
	return &core.ApiNodeShapeListItem{
		ID:          graph.ID(n),
		Name:        s.str(n, vocabulary.ShaclName),
		DisplayName: s.str(n, vocabulary.CoreDisplayName),
	}
}
