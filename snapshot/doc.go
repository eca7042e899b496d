// Package snapshot persists a complete record sequence as one document and
// reads it back. Every Save fully replaces the previous document; there is no
// append log. It includes:
//   - Persister, the contract used by the store
//   - Encode/Decode for the JSON document layout
//   - File: a JSON file replaced via temp file and rename
//   - SQLite: the same sequence stored as ordered rows in one transaction
//   - Memory: an in-process document for tests and ephemeral stores
//
// The minio subpackage stores the document as an object in S3-compatible
// storage.
package snapshot
