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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/internal/fixtures"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		document any
		wantErr  error
	}{
		{"compact document", fixtures.PetStore(), nil},
		{"expanded list", fixtures.Expanded(), nil},
		{"flattened graph", fixtures.Flattened(), nil},
		{"raw json", fixtures.PetStoreJSON(), nil},
		{"string", "not a graph", core.ErrInvalidDocument},
		{"plain object", map[string]any{"name": "x"}, core.ErrInvalidDocument},
		{"two element list", []any{map[string]any{}, map[string]any{}}, core.ErrInvalidDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.document)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s.Document())
		})
	}
}

func TestNew_Options(t *testing.T) {
	t.Run("nil factory", func(t *testing.T) {
		_, err := New(nil, WithSerializerFactory(nil))
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("nil searcher", func(t *testing.T) {
		_, err := New(nil, WithSearcher(nil))
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		s, err := New(nil, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, s.logger)
	})
}

func TestAPISummary(t *testing.T) {
	ctx := context.Background()

	t.Run("no document", func(t *testing.T) {
		s, err := New(nil)
		require.NoError(t, err)
		summary, err := s.APISummary(ctx)
		assert.NoError(t, err)
		assert.Nil(t, summary)
		assert.Nil(t, s.Document())
	})

	t.Run("compact", func(t *testing.T) {
		s, err := New(fixtures.PetStore())
		require.NoError(t, err)
		summary, err := s.APISummary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Pet Store", summary.Name)
		assert.Equal(t, "1.0.0", summary.Version)
	})

	t.Run("flattened", func(t *testing.T) {
		s, err := New(fixtures.Flattened())
		require.NoError(t, err)
		summary, err := s.APISummary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Flat API", summary.Name)
		assert.Equal(t, "3.1", summary.Version)
	})

	t.Run("missing encodes", func(t *testing.T) {
		s, err := New(map[string]any{"@id": "#doc", "@type": []any{"doc:Document"}})
		require.NoError(t, err)
		_, err = s.APISummary(ctx)
		assert.ErrorIs(t, err, core.ErrMalformedGraph)
	})

	t.Run("canceled context", func(t *testing.T) {
		s, err := New(fixtures.PetStore())
		require.NoError(t, err)
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = s.APISummary(canceled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReplaceDocument(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	bound := []*graph.Document{}
	factory := func(doc *graph.Document) GraphSerializer {
		mu.Lock()
		bound = append(bound, doc)
		mu.Unlock()
		return DefaultSerializerFactory(doc)
	}

	s, err := New(fixtures.PetStore(), WithSerializerFactory(factory))
	require.NoError(t, err)
	require.NoError(t, s.ReplaceDocument(fixtures.Expanded()))

	require.Len(t, bound, 2)
	assert.Same(t, bound[1], s.Document())

	summary, err := s.APISummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Expanded API", summary.Name)

	t.Run("invalid replacement keeps current document", func(t *testing.T) {
		err := s.ReplaceDocument(42)
		assert.ErrorIs(t, err, core.ErrInvalidDocument)
		assert.Same(t, bound[1], s.Document())
		assert.Len(t, bound, 2)
	})
}

func TestReplaceDocument_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	s, err := New(fixtures.PetStore())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				summary, err := s.APISummary(ctx)
				if assert.NoError(t, err) {
					assert.Contains(t, []string{"Pet Store", "Expanded API"}, summary.Name)
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			require.NoError(t, s.ReplaceDocument(fixtures.Expanded()))
		} else {
			require.NoError(t, s.ReplaceDocument(fixtures.PetStore()))
		}
	}
	wg.Wait()
}
