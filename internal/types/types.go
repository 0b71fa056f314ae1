// Package types holds the shared data structures used across the
// application. Handlers, storage, and utils all import types without
// depending on each other.
package types

// Student is one record of the students collection. ID is assigned by
// the server when the student is created and never changes afterwards.
type Student struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Document is the whole persisted aggregate. It is always read and
// written as a unit.
//
// Students is nil only between decoding and initialization; a nil slice
// means the field was absent (or null) in durable storage.
type Document struct {
	Students []Student `json:"students"`
}

// Index returns the position of the first student with the given id,
// or -1 when there is none.
func (d *Document) Index(id int64) int {
	for i := range d.Students {
		if d.Students[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove drops every student with the given id and reports how many
// were removed. Order of the remaining students is preserved.
func (d *Document) Remove(id int64) int {
	kept := make([]Student, 0, len(d.Students))
	for _, s := range d.Students {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	removed := len(d.Students) - len(kept)
	d.Students = kept
	return removed
}

// StudentInput is the create payload.
//
// "required" on a string means non-empty, which is exactly the rule
// for creation.
type StudentInput struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Address string `json:"address" validate:"required"`
}

// StudentPatch is the update payload. A nil field was omitted (or sent
// as null) and leaves the stored value untouched. Empty strings are
// applied as-is.
type StudentPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// Apply overwrites the fields of s that are set in p.
func (p StudentPatch) Apply(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
}
