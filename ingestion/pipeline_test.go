package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/internal/fixtures"
)

// testRegistrar mints sequential ids and records the documents it receives.
type testRegistrar struct {
	mu      sync.Mutex
	next    uint64
	docs    map[core.StoreID]*graph.Document
	failErr error
}

func newTestRegistrar() *testRegistrar {
	return &testRegistrar{docs: make(map[core.StoreID]*graph.Document)}
}

func (r *testRegistrar) Add(ctx context.Context, document any) (core.StoreID, error) {
	if r.failErr != nil {
		return "", r.failErr
	}
	doc, err := graph.New(document)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := core.NewStoreID(r.next)
	r.docs[id] = doc
	return id, nil
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestNewPipeline(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.ErrorIs(t, err, ErrRegistrarRequired)

	p, err := NewPipeline(newTestRegistrar(), WithPoolSize(0), WithLogger(nil))
	require.NoError(t, err)
	p.Release()
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	registrar := newTestRegistrar()
	p, err := NewPipeline(registrar, WithPoolSize(2))
	require.NoError(t, err)
	defer p.Release()

	paths := []string{
		writeFile(t, dir, "petstore.json", fixtures.PetStoreJSON()),
		writeFile(t, dir, "broken.json", []byte(`{"@id": `)),
		filepath.Join(dir, "missing.json"),
		writeFile(t, dir, "notgraph.json", []byte(`{"name": "x"}`)),
		writeFile(t, dir, "flat.json", fixtures.FlattenedJSON()),
	}

	results := p.LoadFiles(context.Background(), paths...)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	assert.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].ID)
	assert.ErrorIs(t, results[1].Err, core.ErrInvalidDocument)
	assert.ErrorIs(t, results[2].Err, os.ErrNotExist)
	assert.ErrorIs(t, results[3].Err, core.ErrInvalidDocument)
	assert.NoError(t, results[4].Err)

	assert.NotEqual(t, results[0].ID, results[4].ID)
	assert.Len(t, registrar.docs, 2)

	doc := registrar.docs[results[4].ID]
	require.NotNil(t, doc)
	api, err := doc.Encodes()
	require.NoError(t, err)
	assert.Equal(t, "#/web-api", graph.ID(api))
}

func TestLoadFiles_RegistrarError(t *testing.T) {
	dir := t.TempDir()
	registrar := newTestRegistrar()
	registrar.failErr = errors.New("registry closed")
	p, err := NewPipeline(registrar)
	require.NoError(t, err)
	defer p.Release()

	path := writeFile(t, dir, "petstore.json", fixtures.PetStoreJSON())
	results := p.LoadFiles(context.Background(), path)
	require.Len(t, results, 1)
	assert.EqualError(t, results[0].Err, "registry closed")
	assert.Empty(t, results[0].ID)
}

func TestLoadFiles_Canceled(t *testing.T) {
	dir := t.TempDir()
	registrar := newTestRegistrar()
	p, err := NewPipeline(registrar)
	require.NoError(t, err)
	defer p.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeFile(t, dir, "petstore.json", fixtures.PetStoreJSON())
	results := p.LoadFiles(ctx, path, path)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Empty(t, registrar.docs)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", fixtures.ExpandedJSON())
	writeFile(t, dir, "a.JSON", fixtures.PetStoreJSON())
	writeFile(t, dir, "readme.txt", []byte("not a graph"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0755))

	registrar := newTestRegistrar()
	p, err := NewPipeline(registrar)
	require.NoError(t, err)
	defer p.Release()

	results, err := p.LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.JSON"), results[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.json"), results[1].Path)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
}

func TestLoadDir_RegistersInNameOrder(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		data := fixtures.PetStoreJSON()
		if i%3 == 0 {
			data = fixtures.FlattenedJSON()
		}
		writeFile(t, dir, fmt.Sprintf("graph-%02d.json", i), data)
	}

	registrar := newTestRegistrar()
	p, err := NewPipeline(registrar, WithPoolSize(4))
	require.NoError(t, err)
	defer p.Release()

	results, err := p.LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 12)
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, filepath.Join(dir, fmt.Sprintf("graph-%02d.json", i)), r.Path)
		assert.Equal(t, core.NewStoreID(uint64(i+1)), r.ID)
	}
}

func TestLoadDir_Errors(t *testing.T) {
	p, err := NewPipeline(newTestRegistrar())
	require.NoError(t, err)
	defer p.Release()

	_, err = p.LoadDir(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoFiles)

	_, err = p.LoadDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
