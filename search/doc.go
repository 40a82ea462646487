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


// Package search filters API navigation items against a free-text query.
//
// Queries and item text are tokenized, lowercased, stripped of punctuation
// and filtered through a stop-word list. An item matches when every query
// word appears in it. Matches inside the item label score higher than
// matches found only in the descriptive text, and results are ranked by
// score and then by label.
package search
