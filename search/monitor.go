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


package search

import "github.com/subratsf/amfstore/core"

// Monitor receives callbacks while a query is scored. Useful for tracing
// why an item was (or was not) returned.
type Monitor interface {
	Start(query string, words []string)
	LabelHit(item Item, score float32)
	TextHit(item Item, score float32)
	Finish(results []core.SearchResult)
}

type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)   {}
func (n *noopMonitor) LabelHit(_ Item, _ float32)   {}
func (n *noopMonitor) TextHit(_ Item, _ float32)    {}
func (n *noopMonitor) Finish(_ []core.SearchResult) {}
