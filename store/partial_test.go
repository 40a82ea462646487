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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/internal/fixtures"
	"github.com/subratsf/amfstore/serializer"
	"github.com/subratsf/amfstore/vocabulary"
)

func newPetStore(t *testing.T) *Partial {
	t.Helper()
	p, err := NewPartial(fixtures.PetStore())
	require.NoError(t, err)
	return p
}

func TestEndpoint(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	doc, err := p.Endpoint(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, doc)

	_, ok := doc.Lookup("op1")
	assert.True(t, ok)
	// Payload schemas are inlined into the partial model
	_, ok = doc.Lookup("#petList")
	assert.True(t, ok)
	_, ok = doc.Lookup("#pet")
	assert.True(t, ok)

	endpoint, err := serializer.New(doc).EndPoint(doc.Root())
	require.NoError(t, err)
	assert.Equal(t, "e1", endpoint.ID)
	require.Len(t, endpoint.Operations, 2)
	assert.Equal(t, "op1", endpoint.Operations[0].ID)

	schema := endpoint.Operations[0].Responses[0].Payloads[0].Schema
	require.NotNil(t, schema)
	require.NotNil(t, schema.Items)
	assert.Equal(t, "Pet", schema.Items.Name)

	t.Run("missing", func(t *testing.T) {
		doc, err := p.Endpoint(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("operation id is not an endpoint", func(t *testing.T) {
		doc, err := p.Endpoint(ctx, "op1")
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})
}

func TestEndpoint_MissingPath(t *testing.T) {
	ctx := context.Background()
	p, err := NewPartial(map[string]any{
		"@context": map[string]any{
			"doc":         vocabulary.Document,
			"apiContract": vocabulary.APIContract,
		},
		"@id":   "#doc",
		"@type": []any{"doc:Document"},
		"doc:encodes": map[string]any{
			"@id": "#api",
			"apiContract:endpoint": []any{
				map[string]any{
					"@id":   "e1",
					"@type": []any{"apiContract:EndPoint"},
					"apiContract:supportedOperation": []any{
						map[string]any{"@id": "op1", "apiContract:method": "get"},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	readers := map[string]func() error{
		"endpoint": func() error {
			doc, err := p.Endpoint(ctx, "e1")
			assert.Nil(t, doc)
			return err
		},
		"partial operation endpoint": func() error {
			doc, err := p.PartialOperationEndpoint(ctx, "op1")
			assert.Nil(t, doc)
			return err
		},
		"list endpoints": func() error {
			_, err := p.ListEndpoints(ctx)
			return err
		},
	}
	for name, read := range readers {
		t.Run(name, func(t *testing.T) {
			var mge *core.MalformedGraphError
			require.ErrorAs(t, read(), &mge)
			assert.Equal(t, "apiContract:path", mge.Key)
			assert.Equal(t, "e1", mge.NodeID)
		})
	}

	// Unknown ids are still not an error
	doc, err := p.Endpoint(ctx, "e9")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestEndpoint_NoEncodes(t *testing.T) {
	ctx := context.Background()
	p, err := NewPartial(map[string]any{"@id": "#doc", "@type": []any{"doc:Document"}})
	require.NoError(t, err)

	_, err = p.Endpoint(ctx, "e1")
	assert.ErrorIs(t, err, core.ErrMalformedGraph)
	_, err = p.PartialOperationEndpoint(ctx, "op1")
	assert.ErrorIs(t, err, core.ErrMalformedGraph)
	_, err = p.SummaryPartial(ctx)
	assert.ErrorIs(t, err, core.ErrMalformedGraph)
}

func TestPartialOperationEndpoint(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	tests := []struct {
		name     string
		query    string
		wantRoot string
	}{
		{"operation in first endpoint", "op1", "e1"},
		{"operation in second endpoint", "op3", "e2"},
		{"last operation", "op4", "e2"},
		{"method falls back to first endpoint", "get", "e1"},
		{"method ignores case", "DELETE", "e2"},
		{"no match", "patch", ""},
		{"unknown id", "missing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := p.PartialOperationEndpoint(ctx, tt.query)
			require.NoError(t, err)
			if tt.wantRoot == "" {
				assert.Nil(t, doc)
				return
			}
			require.NotNil(t, doc)
			assert.Equal(t, tt.wantRoot, graph.ID(doc.Root()))
		})
	}
}

func TestPartialOperationEndpoint_MatchesEndpoint(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	byOperation, err := p.PartialOperationEndpoint(ctx, "op1")
	require.NoError(t, err)
	byID, err := p.Endpoint(ctx, "e1")
	require.NoError(t, err)

	a, err := json.Marshal(byOperation)
	require.NoError(t, err)
	b, err := json.Marshal(byID)
	require.NoError(t, err)
	assert.JSONEq(t, string(b), string(a))
}

func TestPartialOperationEndpoint_IDBeforeMethod(t *testing.T) {
	ctx := context.Background()
	// e1 has a "post" operation; e2 has an operation whose id is "post"
	p, err := NewPartial(map[string]any{
		"@context": map[string]any{
			"doc":         vocabulary.Document,
			"apiContract": vocabulary.APIContract,
		},
		"@id":   "#doc",
		"@type": []any{"doc:Document"},
		"doc:encodes": map[string]any{
			"@id": "#api",
			"apiContract:endpoint": []any{
				map[string]any{
					"@id":              "e1",
					"apiContract:path": "/a",
					"apiContract:supportedOperation": []any{
						map[string]any{"@id": "a-post", "apiContract:method": "post"},
					},
				},
				map[string]any{
					"@id":              "e2",
					"apiContract:path": "/b",
					"apiContract:supportedOperation": []any{
						map[string]any{"@id": "post", "apiContract:method": "get"},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	doc, err := p.PartialOperationEndpoint(ctx, "post")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "e2", graph.ID(doc.Root()))
}

func TestSchema(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	t.Run("self referencing type terminates", func(t *testing.T) {
		doc, err := p.Schema(ctx, "#pet", nil)
		require.NoError(t, err)
		require.NotNil(t, doc)

		data, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.NotEmpty(t, data)

		shape, err := serializer.New(doc).Shape(doc.Root())
		require.NoError(t, err)
		assert.Equal(t, "Pet", shape.Name)
		assert.Equal(t, core.ShapeKindRecursive, shape.Properties[1].Range.Kind)
	})

	t.Run("context attached", func(t *testing.T) {
		ldContext := graph.Context{"shacl": vocabulary.Shacl, "shapes": vocabulary.Shapes}
		doc, err := p.Schema(ctx, "#petList", ldContext)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, ldContext, doc.Context())

		items, ok := doc.Node(doc.Root(), vocabulary.ShapesItems)
		require.True(t, ok)
		assert.Equal(t, "#pet", graph.ID(items))
	})

	t.Run("flattened cycle", func(t *testing.T) {
		flat, err := NewPartial(fixtures.Flattened())
		require.NoError(t, err)
		doc, err := flat.Schema(ctx, "#/declares/Item", nil)
		require.NoError(t, err)
		require.NotNil(t, doc)
	})

	for _, id := range []string{"missing", "e1", "#apiKey"} {
		t.Run("not a shape "+id, func(t *testing.T) {
			doc, err := p.Schema(ctx, id, nil)
			assert.NoError(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestSecurityRequirement(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	t.Run("requirement", func(t *testing.T) {
		doc, err := p.SecurityRequirement(ctx, "op4/sec", nil)
		require.NoError(t, err)
		require.NotNil(t, doc)

		req, err := serializer.New(doc).SecurityRequirement(doc.Root())
		require.NoError(t, err)
		require.Len(t, req.Schemes, 1)
		require.NotNil(t, req.Schemes[0].Scheme)
		assert.Equal(t, "api_key", req.Schemes[0].Scheme.Name)
	})

	t.Run("scheme", func(t *testing.T) {
		doc, err := p.SecurityRequirement(ctx, "#oauth2", nil)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "#oauth2", graph.ID(doc.Root()))
	})

	t.Run("not security", func(t *testing.T) {
		doc, err := p.SecurityRequirement(ctx, "#pet", nil)
		assert.NoError(t, err)
		assert.Nil(t, doc)
	})
}

func TestSummaryPartial(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	doc, err := p.SummaryPartial(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc)

	api, err := doc.Encodes()
	require.NoError(t, err)
	assert.False(t, doc.Has(api, vocabulary.APIEndpoint))
	assert.False(t, doc.Has(doc.Root(), vocabulary.DocDeclares))
	_, ok := doc.Lookup("#pet")
	assert.False(t, ok)

	partial, err := serializer.New(doc).Summary(api)
	require.NoError(t, err)
	full, err := p.APISummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, full, partial)
}

func TestOperationReaders(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	op, err := p.Operation(ctx, "op2")
	require.NoError(t, err)
	require.NotNil(t, op)
	assert.Equal(t, "post", op.Method)

	parent, err := p.OperationParent(ctx, "op3")
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, "e2", parent.ID)

	op, err = p.Operation(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, op)

	parent, err = p.OperationParent(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, parent)
}

func TestType(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	shape, err := p.Type(ctx, "#category")
	require.NoError(t, err)
	require.NotNil(t, shape)
	assert.Equal(t, core.ShapeKindUnion, shape.Kind)

	shape, err = p.Type(ctx, "op1")
	assert.NoError(t, err)
	assert.Nil(t, shape)
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	endpoints, err := p.ListEndpoints(ctx)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)
	assert.Equal(t, "/pets", endpoints[0].Path)
	assert.Len(t, endpoints[0].Operations, 2)

	types, err := p.ListTypes(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(types))
	for _, typ := range types {
		names = append(names, typ.Name)
	}
	assert.Equal(t, []string{"Pet", "Tag", "PetList", "Category"}, names)

	security, err := p.ListSecurity(ctx)
	require.NoError(t, err)
	require.Len(t, security, 2)
	assert.Equal(t, "#oauth2", security[0].ID)

	docs, err := p.ListDocumentations(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Introduction", docs[0].Title)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	p := newPetStore(t)

	results, err := p.Search(ctx, "pet", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "#pet", results[0].ID)
	assert.Equal(t, core.SearchKindType, results[0].Kind)

	results, err = p.Search(ctx, "introduction", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.SearchKindDocumentation, results[0].Kind)

	results, err = p.Search(ctx, "oauth", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "#oauth2", results[0].ID)
}

func TestPartial_NoDocument(t *testing.T) {
	ctx := context.Background()
	p, err := NewPartial(nil)
	require.NoError(t, err)

	doc, err := p.Endpoint(ctx, "e1")
	assert.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = p.SummaryPartial(ctx)
	assert.NoError(t, err)
	assert.Nil(t, doc)

	list, err := p.ListEndpoints(ctx)
	assert.NoError(t, err)
	assert.Nil(t, list)
}
