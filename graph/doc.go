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


// Package graph provides read access to AMF graph documents.
//
// An AMF document is a JSON-LD value describing an API. It comes in several
// serializations, all of which are accepted:
//
//   - compact: a root object with an @context mapping prefixes to vocabulary
//     namespaces, properties keyed as "apiContract:endpoint"
//   - expanded: no context, properties keyed by full IRIs and literals
//     wrapped as {"@value": ...}
//   - flattened: an @graph list of nodes that refer to each other by @id
//
// A Document indexes every node by @id and resolves links transparently, so
// callers read properties by expanded IRI (see package vocabulary) without
// caring which serialization was used:
//
//	doc, err := graph.Parse(data)
//	if err != nil {
//	    return err
//	}
//	api, err := doc.Encodes()
//	if err != nil {
//	    return err
//	}
//	for _, ep := range doc.Nodes(api, vocabulary.APIEndpoint) {
//	    fmt.Println(doc.String(ep, vocabulary.APIPath))
//	}
//
// # Reduction
//
// Reduce copies the subgraph reachable from one node into a new,
// self-contained Document. Nodes already present in the reduction are
// emitted as links rather than expanded again, which bounds the output for
// recursive types. Documents are never modified; reductions are copies.
package graph
