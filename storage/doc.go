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


// Package storage provides the persistence abstraction for the registry.
//
// DocumentRepository decouples the registry from the storage engine. The
// only implementation lives in storage/badger; constructors there return the
// interface:
//
//	repo, err := badger.NewDocumentRepository(backend) // storage.DocumentRepository
//
// # Records
//
// A registered document is persisted as a core.DocumentRecord holding the
// raw JSON, its blake2b digest and timestamps. Records are encoded with
// mus-go (see DocumentRecordMUS). The digest is checked whenever a record is
// read back, so a corrupted value surfaces as ErrDigestMismatch instead of
// a confusing graph error later.
//
// # Store identifiers
//
// NextSequence backs core.NewStoreID. The sequence lives in the same
// database as the records and is never rewound, so an identifier is never
// reissued after Clear or a restart.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewDocumentRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// Tests use badger.NewMemoryRepository.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access.
package storage
