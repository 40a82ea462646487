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


// Package serializer turns AMF graph nodes into the typed objects in core.
//
// A Serializer is bound to one graph.Document and resolves links through
// it, so a node taken from a partial (reduced) document must be serialized
// with a Serializer for that partial document.
//
// Endpoints without a path and operations without a method are reported as
// core.MalformedGraphError. Other missing properties are left at their zero
// value.
package serializer
