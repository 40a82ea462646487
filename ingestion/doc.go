// Package ingestion bulk loads graph documents from disk into a registry.
//
// The Pipeline reads and indexes files concurrently on a worker pool, then
// registers the decoded documents with a Registrar in input order, so store
// ids follow file order. Every file gets its own
// Result; a file that cannot be read, decoded or registered does not stop the
// rest of the batch.
package ingestion
