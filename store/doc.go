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


// Package store answers typed queries against a single AMF graph document.
//
// Store holds the document and a GraphSerializer bound to it. Partial adds
// the reduction readers: each returns a self-contained graph.Document
// ("partial model") extracted on demand for one endpoint, schema, security
// requirement or the API summary, plus navigation listings and search.
//
// Partial models are never cached. Every link inside one resolves to a node
// inside it, except links that already dangled in the source document.
//
// Basic usage:
//
//	p, err := store.NewPartial(doc)
//	if err != nil {
//	    return err
//	}
//	ep, err := p.Endpoint(ctx, "e1")
//	// ep is nil when there is no endpoint e1
package store
