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


// Package fixtures provides sample AMF graph documents for tests.
//
// Every call decodes a fresh copy, so tests may hold on to the values freely.
//
// PetStore is a compact (prefixed) document with two endpoints:
//
//	e1 /pets          op1 get, op2 post
//	e2 /pets/{petId}  op3 get, op4 delete (secured with #apiKey)
//
// and declares #pet (self-referential through its "parent" property), #tag,
// #petList, #category, #oauth2 and #apiKey.
//
// Expanded is the same kind of document without a context, wrapped in a
// single-element list. Flattened uses an @graph of linked nodes and declares
// the recursive #/declares/Item shape.
package fixtures

import (
	_ "embed"
	"encoding/json"
)

var (
	//go:embed petstore.json
	petStoreJSON []byte

	//go:embed expanded.json
	expandedJSON []byte

	//go:embed flattened.json
	flattenedJSON []byte
)

func PetStoreJSON() []byte {
	return clone(petStoreJSON)
}

func PetStore() any {
	return decode(petStoreJSON)
}

func ExpandedJSON() []byte {
	return clone(expandedJSON)
}

func Expanded() any {
	return decode(expandedJSON)
}

func FlattenedJSON() []byte {
	return clone(flattenedJSON)
}

func Flattened() any {
	return decode(flattenedJSON)
}

func decode(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		panic(err)
	}
	return v
}

func clone(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
