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


// Package amfstore hosts many AMF graph documents behind opaque store
// identifiers and answers read commands against them.
//
// A Registry mints a core.StoreID for every document it is given and keeps a
// store.Partial for it. Reads are addressed by id and by Command, a closed
// set of query names; anything outside that set fails with
// core.ErrUnknownCommand, so no mutating method is reachable through Read:
//
//	reg, _ := amfstore.NewRegistry()
//	id, _ := reg.Add(ctx, document)
//	summary, _ := reg.Read(ctx, id, amfstore.CommandAPISummary)
//	endpoint, _ := reg.Read(ctx, id, amfstore.CommandEndpoint, "e1")
//
// Reads run through a transport.Transport, in process by default. A registry
// created with Open persists its documents in BadgerDB and restores them,
// with their original identifiers, the next time it is opened. Identifiers
// are never handed out twice, including after Clear and across restarts.
package amfstore
