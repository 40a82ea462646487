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


package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

var (
	// ErrClosed is returned by Call after Close.
	ErrClosed = errors.New("transport closed")

	// ErrPanic wraps a panic raised by a call running on a pooled worker.
	ErrPanic = errors.New("call panicked")
)

// Call is one unit of work sent through a transport.
type Call func(ctx context.Context) (any, error)

// Transport delivers calls and returns their results.
type Transport interface {
	Call(ctx context.Context, fn Call) (any, error)
	Close() error
}

type direct struct{}

// Direct returns a transport that invokes calls synchronously.
func Direct() Transport {
	return direct{}
}

func (direct) Call(ctx context.Context, fn Call) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fn(ctx)
}

func (direct) Close() error {
	return nil
}

const (
	minSubmitWait = 100 * time.Microsecond
	maxSubmitWait = 10 * time.Millisecond
)

type reply struct {
	value any
	err   error
}

// Pooled runs calls on a fixed size worker pool.
type Pooled struct {
	pool   *ants.Pool
	closed atomic.Bool
	logger *slog.Logger
}

// PooledOption configures a Pooled transport.
type PooledOption func(*Pooled) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) PooledOption {
	return func(p *Pooled) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPooled creates a transport backed by size workers. A size below 1
// uses runtime.NumCPU().
func NewPooled(size int, opts ...PooledOption) (*Pooled, error) {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pooled{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// Call submits fn to the pool and waits for its reply or for ctx to be done.
// A call abandoned through ctx keeps running on its worker; its reply is
// discarded.
func (p *Pooled) Call(ctx context.Context, fn Call) (any, error) {
	if p.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	replies := make(chan reply, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("pooled call panicked", "panic", r)
				replies <- reply{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()
		v, err := fn(ctx)
		replies <- reply{value: v, err: err}
	}
	if err := p.submit(ctx, task); err != nil {
		return nil, err
	}

	select {
	case r := <-replies:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// submit hands task to a free worker, retrying while every worker is busy
// until ctx is done.
func (p *Pooled) submit(ctx context.Context, task func()) error {
	wait := minSubmitWait
	for {
		err := p.pool.Submit(task)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ants.ErrPoolClosed):
			return ErrClosed
		case !errors.Is(err, ants.ErrPoolOverload):
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(wait*2, maxSubmitWait)
	}
}

// Running returns the number of workers currently executing calls.
func (p *Pooled) Running() int {
	return p.pool.Running()
}

// Close releases the worker pool. Calls already running finish; new calls
// fail with ErrClosed.
func (p *Pooled) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	p.pool.Release()
	return nil
}
