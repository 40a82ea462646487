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


package amfstore

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/subratsf/amfstore/core"
	"github.com/subratsf/amfstore/graph"
	"github.com/subratsf/amfstore/store"
)

// Command names a read operation Registry.Read can dispatch.
type Command string

const (
	CommandAPISummary               Command = "apiSummary"
	CommandSummaryPartial           Command = "summaryPartial"
	CommandEndpoint                 Command = "endpoint"
	CommandPartialOperationEndpoint Command = "partialOperationEndpoint"
	CommandSchema                   Command = "schema"
	CommandSecurityRequirement      Command = "securityRequirement"
	CommandOperation                Command = "operation"
	CommandOperationParent          Command = "operationParent"
	CommandType                     Command = "type"
	CommandListEndpoints            Command = "listEndpoints"
	CommandListTypes                Command = "listTypes"
	CommandListSecurity             Command = "listSecurity"
	CommandListDocumentations       Command = "listDocumentations"
	CommandSearch                   Command = "search"
)

type handler func(ctx context.Context, p *store.Partial, args []any) (any, error)

// handlers is the complete set of commands Read accepts.
var handlers = map[Command]handler{
	CommandAPISummary: func(ctx context.Context, p *store.Partial, args []any) (any, error) {
		if err := arity(args, 0, 0); err != nil {
			return nil, err
		}
		return nilable(p.APISummary(ctx))
	},
	CommandSummaryPartial: func(ctx context.Context, p *store.Partial, args []any) (any, error) {
		if err := arity(args, 0, 0); err != nil {
			return nil, err
		}
		return nilable(p.SummaryPartial(ctx))
	},
	CommandEndpoint: byID(func(ctx context.Context, p *store.Partial, id string) (any, error) {
		return nilable(p.Endpoint(ctx, id))
	}),
	CommandPartialOperationEndpoint: byID(func(ctx context.Context, p *store.Partial, id string) (any, error) {
		return nilable(p.PartialOperationEndpoint(ctx, id))
	}),
	CommandSchema: withContext(func(ctx context.Context, p *store.Partial, id string, ldContext graph.Context) (any, error) {
		return nilable(p.Schema(ctx, id, ldContext))
	}),
	CommandSecurityRequirement: withContext(func(ctx context.Context, p *store.Partial, id string, ldContext graph.Context) (any, error) {
		return nilable(p.SecurityRequirement(ctx, id, ldContext))
	}),
	CommandOperation: byID(func(ctx context.Context, p *store.Partial, id string) (any, error) {
		return nilable(p.Operation(ctx, id))
	}),
	CommandOperationParent: byID(func(ctx context.Context, p *store.Partial, id string) (any, error) {
		return nilable(p.OperationParent(ctx, id))
	}),
	CommandType: byID(func(ctx context.Context, p *store.Partial, id string) (any, error) {
		return nilable(p.Type(ctx, id))
	}),
	CommandListEndpoints:      listing((*store.Partial).ListEndpoints),
	CommandListTypes:          listing((*store.Partial).ListTypes),
	CommandListSecurity:       listing((*store.Partial).ListSecurity),
	CommandListDocumentations: listing((*store.Partial).ListDocumentations),
	CommandSearch: func(ctx context.Context, p *store.Partial, args []any) (any, error) {
		if err := arity(args, 1, 2); err != nil {
			return nil, err
		}
		query, err := stringArg(args, 0, "query")
		if err != nil {
			return nil, err
		}
		limit := 0
		if len(args) == 2 {
			if limit, err = intArg(args[1], "limit"); err != nil {
				return nil, err
			}
		}
		return p.Search(ctx, query, limit)
	},
}

// Commands returns every command Read accepts, sorted by name.
func Commands() []Command {
	commands := make([]Command, 0, len(handlers))
	for c := range handlers {
		commands = append(commands, c)
	}
	slices.Sort(commands)
	return commands
}

// Valid reports whether c is a command Read accepts.
func (c Command) Valid() bool {
	_, ok := handlers[c]
	return ok
}

func (c Command) String() string {
	return string(c)
}

func byID(fn func(context.Context, *store.Partial, string) (any, error)) handler {
	return func(ctx context.Context, p *store.Partial, args []any) (any, error) {
		if err := arity(args, 1, 1); err != nil {
			return nil, err
		}
		id, err := stringArg(args, 0, "id")
		if err != nil {
			return nil, err
		}
		return fn(ctx, p, id)
	}
}

func withContext(fn func(context.Context, *store.Partial, string, graph.Context) (any, error)) handler {
	return func(ctx context.Context, p *store.Partial, args []any) (any, error) {
		if err := arity(args, 1, 2); err != nil {
			return nil, err
		}
		id, err := stringArg(args, 0, "id")
		if err != nil {
			return nil, err
		}
		var ldContext graph.Context
		if len(args) == 2 {
			if ldContext, err = contextArg(args[1]); err != nil {
				return nil, err
			}
		}
		return fn(ctx, p, id, ldContext)
	}
}

func listing[T any](fn func(*store.Partial, context.Context) ([]T, error)) handler {
	return func(ctx context.Context, p *store.Partial, args []any) (any, error) {
		if err := arity(args, 0, 0); err != nil {
			return nil, err
		}
		return fn(p, ctx)
	}
}

// nilable turns a typed nil pointer into an untyped nil result.
func nilable[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}

func arity(args []any, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return fmt.Errorf("%w: expected %d arguments, got %d", core.ErrInvalidArgument, lo, len(args))
		}
		return fmt.Errorf("%w: expected %d to %d arguments, got %d", core.ErrInvalidArgument, lo, hi, len(args))
	}
	return nil
}

func stringArg(args []any, i int, name string) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", core.ErrInvalidArgument, name, args[i])
	}
	return s, nil
}

// contextArg accepts a graph.Context, a decoded JSON object or nil.
func contextArg(v any) (graph.Context, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case graph.Context:
		return t, nil
	case map[string]any:
		return graph.Context(t), nil
	}
	return nil, fmt.Errorf("%w: context must be an object, got %T", core.ErrInvalidArgument, v)
}

// intArg accepts any Go integer or an integral float64 as decoded from JSON.
func intArg(v any, name string) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int32:
		return int(t), nil
	case int64:
		return int(t), nil
	case uint:
		return int(t), nil
	case float64:
		if t == math.Trunc(t) && t >= math.MinInt32 && t <= math.MaxInt32 {
			return int(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %v", core.ErrInvalidArgument, name, v)
}
