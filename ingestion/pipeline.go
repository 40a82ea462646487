package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
)

// Registrar accepts decoded graph documents and returns their store ids.
// *amfstore.Registry satisfies it.
type Registrar interface {
	Add(ctx context.Context, document any) (core.StoreID, error)
}

// Result is the outcome of loading one file.
type Result struct {
	Path string
	ID   core.StoreID // Empty when Err is set
	Err  error
}

// Pipeline loads graph files into a Registrar.
type Pipeline struct {
	registrar Registrar
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the number of files decoded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.pool != nil {
			p.pool.Release()
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline that registers documents with registrar.
func NewPipeline(registrar Registrar, opts ...Option) (*Pipeline, error) {
	if registrar == nil {
		return nil, ErrRegistrarRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		registrar: registrar,
		pool:      pool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// LoadFiles reads and indexes every path concurrently, then registers the
// decoded documents one by one in the order of paths, so store ids follow
// that order. Results are returned in the order of paths.
func (p *Pipeline) LoadFiles(ctx context.Context, paths ...string) []Result {
	results := make([]Result, len(paths))
	docs := make([]*graph.Document, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		results[i].Path = path
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			docs[i], results[i].Err = p.decode(ctx, path)
		})
		if err != nil {
			wg.Done()
			results[i].Err = fmt.Errorf("submit %s: %w", path, err)
		}
	}
	wg.Wait()

	loaded := 0
	for i := range results {
		r := &results[i]
		if r.Err == nil {
			r.ID, r.Err = p.register(ctx, r.Path, docs[i])
		}
		if r.Err != nil {
			p.logger.Warn("graph file not loaded", "path", r.Path, "err", r.Err)
			continue
		}
		loaded++
	}
	p.logger.Info("graph files loaded", "loaded", loaded, "failed", len(paths)-loaded)
	return results
}

// LoadDir loads every *.json file directly inside dir, in name order.
func (p *Pipeline) LoadDir(ctx context.Context, dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	sort.Strings(paths)
	return p.LoadFiles(ctx, paths...), nil
}

func (p *Pipeline) decode(ctx context.Context, path string) (*graph.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := graph.New(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (p *Pipeline) register(ctx context.Context, path string, doc *graph.Document) (core.StoreID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id, err := p.registrar.Add(ctx, doc)
	if err != nil {
		return "", err
	}
	p.logger.Debug("graph file registered", "path", path, "store", id)
	return id, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
