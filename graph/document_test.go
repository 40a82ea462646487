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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/internal/fixtures"
	"github.com/subratsf/amfstore/vocabulary"
)

func TestNew_Forms(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantName string
	}{
		{name: "compact", value: fixtures.PetStore(), wantName: "Pet Store"},
		{name: "compact bytes", value: fixtures.PetStoreJSON(), wantName: "Pet Store"},
		{name: "raw message", value: json.RawMessage(fixtures.PetStoreJSON()), wantName: "Pet Store"},
		{name: "expanded list", value: fixtures.Expanded(), wantName: "Expanded API"},
		{name: "flattened", value: fixtures.Flattened(), wantName: "Flat API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := New(tt.value)
			require.NoError(t, err)

			api, err := doc.Encodes()
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, doc.String(api, vocabulary.CoreName))
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "nil", value: nil},
		{name: "number", value: 3.0},
		{name: "two roots", value: []any{map[string]any{"@context": map[string]any{}}, map[string]any{"@context": map[string]any{}}}},
		{name: "bad json", value: []byte(`{"@context":`)},
		{name: "nil document", value: (*Document)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.value)
			assert.ErrorIs(t, err, core.ErrInvalidDocument)
		})
	}
}

func TestNew_ReturnsExistingDocument(t *testing.T) {
	doc, err := New(fixtures.PetStore())
	require.NoError(t, err)

	same, err := New(doc)
	require.NoError(t, err)
	assert.Same(t, doc, same)
}

func TestDecode(t *testing.T) {
	doc, err := Decode(bytes.NewReader(fixtures.FlattenedJSON()))
	require.NoError(t, err)
	assert.Equal(t, "#", ID(doc.Root()))
}

func TestDocument_Key(t *testing.T) {
	compact, err := New(fixtures.PetStore())
	require.NoError(t, err)
	expanded, err := New(fixtures.Expanded())
	require.NoError(t, err)

	assert.Equal(t, "apiContract:endpoint", compact.Key(vocabulary.APIEndpoint))
	assert.Equal(t, "shacl:name", compact.Key(vocabulary.ShaclName))
	assert.Equal(t, vocabulary.APIEndpoint, expanded.Key(vocabulary.APIEndpoint))
}

func TestDocument_Expand(t *testing.T) {
	doc, err := New(fixtures.PetStore())
	require.NoError(t, err)

	assert.Equal(t, vocabulary.XSD+"string", doc.Expand("xsd:string"))
	assert.Equal(t, "@id", doc.Expand("@id"))
	assert.Equal(t, "unknown:term", doc.Expand("unknown:term"))
	assert.Equal(t, "http://example.com/x", doc.Expand("http://example.com/x"))
}

func TestDocument_Encodes_Missing(t *testing.T) {
	doc, err := New(map[string]any{
		"@context": map[string]any{"doc": vocabulary.Document},
		"@id":      "#root",
	})
	require.NoError(t, err)

	_, err = doc.Encodes()
	require.ErrorIs(t, err, core.ErrMalformedGraph)

	var mge *core.MalformedGraphError
	require.ErrorAs(t, err, &mge)
	assert.Equal(t, "doc:encodes", mge.Key)
	assert.Equal(t, "#root", mge.NodeID)
}

func TestDocument_LinksResolve(t *testing.T) {
	doc, err := New(fixtures.PetStore())
	require.NoError(t, err)

	payload, ok := doc.Lookup("op3/200/json")
	require.True(t, ok)

	schema, ok := doc.Node(payload, vocabulary.ShapesSchema)
	require.True(t, ok)
	assert.Equal(t, "#pet", ID(schema))
	assert.Equal(t, "Pet", doc.String(schema, vocabulary.ShaclName))
	assert.True(t, doc.HasType(schema, vocabulary.ShaclNodeShape))
}

func TestDocument_Literals(t *testing.T) {
	doc, err := New(fixtures.PetStore())
	require.NoError(t, err)

	param, ok := doc.Lookup("e2/petId")
	require.True(t, ok)
	required, ok := doc.Bool(param, vocabulary.APIRequired)
	require.True(t, ok)
	assert.True(t, required)

	name, ok := doc.Lookup("#pet/property/name")
	require.True(t, ok)
	minCount, ok := doc.Int(name, vocabulary.ShaclMinCount)
	require.True(t, ok)
	assert.Equal(t, 1, minCount)
	assert.Equal(t, "data:name", doc.String(name, vocabulary.ShaclPath))

	api, err := doc.Encodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"https"}, doc.Strings(api, vocabulary.APIScheme))
}

func TestDocument_ExpandedLiterals(t *testing.T) {
	doc, err := New(fixtures.Expanded())
	require.NoError(t, err)

	api, err := doc.Encodes()
	require.NoError(t, err)
	assert.Equal(t, "v2", doc.String(api, vocabulary.CoreVersion))

	endpoints := doc.Nodes(api, vocabulary.APIEndpoint)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "/users", doc.String(endpoints[0], vocabulary.APIPath))
}

func TestDocument_Declares(t *testing.T) {
	doc, err := New(fixtures.PetStore())
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, n := range doc.Declares() {
		ids = append(ids, ID(n))
	}
	assert.Equal(t, []string{"#pet", "#tag", "#petList", "#category", "#oauth2", "#apiKey"}, ids)
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc, err := New(fixtures.PetStore())
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, ID(doc.Root()), ID(again.Root()))
}
