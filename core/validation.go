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


package core

import "fmt"

// NormalizeDocument unwraps a single-element list and checks that the result
// looks like a graph document root: an object carrying @context, @graph, or
// both @id and @type.
func NormalizeDocument(value any) (map[string]any, error) {
	if list, ok := value.([]any); ok {
		if len(list) != 1 {
			return nil, fmt.Errorf("%w: expected a single root node, got a list of %d", ErrInvalidDocument, len(list))
		}
		value = list[0]
	}

	root, ok := value.(map[string]any)
	if !ok || root == nil {
		return nil, fmt.Errorf("%w: root is %T, not an object", ErrInvalidDocument, value)
	}

	if _, ok := root["@context"]; ok {
		return root, nil
	}
	if _, ok := root["@graph"]; ok {
		return root, nil
	}
	_, hasID := root["@id"]
	_, hasType := root["@type"]
	if hasID && hasType {
		return root, nil
	}
	return nil, fmt.Errorf("%w: root has no @context, @graph or @id/@type", ErrInvalidDocument)
}

// ValidateDocumentRecord checks that a record can be restored.
func ValidateDocumentRecord(record *DocumentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidDocument)
	}
	if _, ok := record.ID.Sequence(); !ok {
		return fmt.Errorf("%w: malformed store id %q", ErrInvalidDocument, record.ID)
	}
	if len(record.Document) == 0 {
		return fmt.Errorf("%w: record %s has no content", ErrInvalidDocument, record.ID)
	}
	return nil
}
