// Package storage owns the mapping between the in-memory Document and
// its durable representation.
//
// Two layers live here:
//
//   - Storage is the medium: something that can hand back the raw bytes
//     of the document and replace them. A JSON file (package jsonfile)
//     and a SQLite blob (package sqlite) both satisfy it.
//
//   - Store sits on top of a Storage and speaks Documents. It decodes
//     and encodes JSON, initializes an empty collection, assigns ids, and
//     serializes every load-mutate-save so handlers never interleave.
//
// Handlers only ever see *Store, so switching the medium is a one-line
// change in main.go.
package storage

import "errors"

var (
	// ErrStorageRead means the medium could not be read or held content
	// that is not a valid document.
	ErrStorageRead = errors.New("storage read failed")

	// ErrStorageWrite means the medium rejected a write.
	ErrStorageWrite = errors.New("storage write failed")
)

// Storage is the durable medium contract.
type Storage interface {
	// Read returns the current durable representation. A medium that
	// has never been written returns nil, nil.
	Read() ([]byte, error)

	// Write replaces the durable representation with data.
	Write(data []byte) error

	// Close releases any handle held by the medium.
	Close() error
}
