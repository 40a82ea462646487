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

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument indicates the root value is not a graph document.
	ErrInvalidDocument = errors.New("invalid graph document")

	// ErrMalformedGraph indicates an expected vocabulary key is missing
	// while traversing a document.
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrUnknownStore indicates the store identifier is not registered.
	ErrUnknownStore = errors.New("unknown store")

	// ErrUnknownCommand indicates the command is not an allowed read operation.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArgument indicates a command was called with arguments of the
	// wrong number or type.
	ErrInvalidArgument = errors.New("invalid argument")
)

// MalformedGraphError reports the vocabulary key that was expected on a node
// but not found. It matches ErrMalformedGraph with errors.Is.
type MalformedGraphError struct {
	Key    string
	NodeID string
}

func (e *MalformedGraphError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("%s: missing %s", ErrMalformedGraph, e.Key)
	}
	return fmt.Sprintf("%s: node %s is missing %s", ErrMalformedGraph, e.NodeID, e.Key)
}

func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph
}

// NewMalformedGraphError returns a MalformedGraphError for key on the node
// identified by nodeID. nodeID may be empty.
func NewMalformedGraphError(key, nodeID string) error {
	return &MalformedGraphError{Key: key, NodeID: nodeID}
}
