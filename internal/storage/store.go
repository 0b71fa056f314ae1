package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aanand-mishra/students-api/internal/types"
)

// Store is the single owner of the students Document for the lifetime of
// the process. It keeps no copy of the Document between calls: every
// View and Update reloads from the medium first.
type Store struct {
	backend Storage

	// mu serializes whole load-mutate-save cycles.
	mu sync.Mutex

	idMu   sync.Mutex
	lastID int64
	now    func() time.Time
}

// New wraps a medium. Call Init before serving traffic.
func New(backend Storage) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
	}
}

// Load reads the medium and returns a fresh Document. An absent or empty
// medium, or one without a students field, yields an empty collection.
func (s *Store) Load() (*types.Document, error) {
	doc, _, err := s.load()
	return doc, err
}

// load also reports whether the students field had to be defaulted.
func (s *Store) load() (*types.Document, bool, error) {
	raw, err := s.backend.Read()
	if err != nil {
		return nil, false, fmt.Errorf("Load: read: %w: %w", ErrStorageRead, err)
	}

	var doc types.Document
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, false, fmt.Errorf("Load: decode: %w: %w", ErrStorageRead, err)
		}
	}

	if doc.Students == nil {
		doc.Students = make([]types.Student, 0)
		return &doc, true, nil
	}
	return &doc, false, nil
}

// Save encodes the whole Document and overwrites the medium with it.
func (s *Store) Save(doc *types.Document) error {
	out := types.Document{Students: doc.Students}
	if out.Students == nil {
		out.Students = make([]types.Student, 0)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("Save: encode: %w: %w", ErrStorageWrite, err)
	}
	data = append(data, '\n')

	if err := s.backend.Write(data); err != nil {
		return fmt.Errorf("Save: write: %w: %w", ErrStorageWrite, err)
	}
	return nil
}

// Init loads the Document once and, when the students field was missing,
// persists the defaulted Document straight away so the medium is always
// well formed before the first request.
func (s *Store) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, defaulted, err := s.load()
	if err != nil {
		return err
	}

	if defaulted {
		slog.Debug("initialising empty students document")
		if err := s.Save(doc); err != nil {
			return err
		}
	}

	slog.Debug("store loaded", slog.Int("students", len(doc.Students)))
	return nil
}

// View reloads the Document and hands it to fn. Nothing is persisted.
func (s *Store) View(fn func(doc *types.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update reloads the Document, lets fn mutate it, and persists the result.
// When fn returns an error the Document is discarded and the error is
// returned unchanged.
func (s *Store) Update(fn func(doc *types.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(doc)
}

// NextID returns a millisecond timestamp usable as a new student id. It
// is strictly greater than any id previously returned by this Store and
// does not collide with an id already present in doc.
func (s *Store) NextID(doc *types.Document) int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	for doc != nil && doc.Index(id) >= 0 {
		id++
	}

	s.lastID = id
	return id
}

// Close releases the underlying medium.
func (s *Store) Close() error {
	return s.backend.Close()
}
