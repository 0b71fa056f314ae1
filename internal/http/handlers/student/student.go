// Package student contains the HTTP handlers for the Student resource.
//
// Every handler is a factory: it receives the *storage.Store once at
// route registration and returns the http.HandlerFunc the router calls
// on each request.
//
//	r.Post("/api/students", student.New(store))
//
// All handlers follow the same read-modify-write template: validate the
// request, then inside store.View or store.Update reload the document,
// operate on the students slice, and (for Update) let the store persist
// the whole document before the response is written.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
	"github.com/aanand-mishra/students-api/internal/utils/response"
)

// ErrNotFound is returned when no student carries the requested id.
var ErrNotFound = errors.New("student not found")

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body (JSON):
//
//	{ "name": "Rakesh", "email": "rakesh@test.com", "address": "Main St 1" }
//
// Success response (201 Created): the stored student including its id.
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or a missing/empty field
//	500 Internal     — storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var input types.StudentInput
		err := json.NewDecoder(r.Body).Decode(&input)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Validation happens before the store is touched: a rejected
		// request never reaches the medium.
		if err := validate.Struct(input); err != nil {
			var validateErrs validator.ValidationErrors
			if errors.As(err, &validateErrs) {
				response.WriteJSON(w, http.StatusBadRequest,
					response.ValidationError(validateErrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		var created types.Student
		err = store.Update(func(doc *types.Document) error {
			created = types.Student{
				ID:      store.NextID(doc),
				Name:    input.Name,
				Email:   input.Email,
				Address: input.Address,
			}
			doc.Students = append(doc.Students, created)
			return nil
		})
		if err != nil {
			writeError(w, err, "error creating student")
			return
		}

		slog.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// A non-numeric id cannot match any stored id and is answered with 404,
// the same as an unknown numeric id.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("getting a student", slog.String("id", id))

		intID, ok := parseID(id)
		if !ok {
			writeError(w, ErrNotFound, "")
			return
		}

		var found types.Student
		err := store.View(func(doc *types.Document) error {
			idx := doc.Index(intID)
			if idx < 0 {
				return ErrNotFound
			}
			found = doc.Students[idx]
			return nil
		})
		if err != nil {
			writeError(w, err, "error getting student", slog.String("id", id))
			return
		}

		response.WriteJSON(w, http.StatusOK, found)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
//
// Returns students in insertion order; an empty collection is [] (not null).
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		var students []types.Student
		err := store.View(func(doc *types.Document) error {
			students = doc.Students
			return nil
		})
		if err != nil {
			writeError(w, err, "error getting students")
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
//
// Partial update: only fields present in the body are overwritten.
//
//	{ "email": "new@test.com" }
//
// Fields are not re-validated here, so an explicit "" is stored as-is.
// An empty body changes nothing and returns the student unchanged.
//
// Error responses:
//
//	400 Bad Request  — malformed JSON
//	404 Not Found    — no student with that id
//	500 Internal     — storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("updating a student", slog.String("id", id))

		intID, ok := parseID(id)
		if !ok {
			writeError(w, ErrNotFound, "")
			return
		}

		var patch types.StudentPatch
		err := json.NewDecoder(r.Body).Decode(&patch)
		if err != nil && !errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		var updated types.Student
		err = store.Update(func(doc *types.Document) error {
			idx := doc.Index(intID)
			if idx < 0 {
				return ErrNotFound
			}
			patch.Apply(&doc.Students[idx])
			updated = doc.Students[idx]
			return nil
		})
		if err != nil {
			writeError(w, err, "error updating student", slog.String("id", id))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Removes every student with the id. Success is 204 with an empty body;
// 404 when nothing matched, in which case the document is not rewritten.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, ok := parseID(id)
		if !ok {
			writeError(w, ErrNotFound, "")
			return
		}

		err := store.Update(func(doc *types.Document) error {
			if doc.Remove(intID) == 0 {
				return ErrNotFound
			}
			return nil
		})
		if err != nil {
			writeError(w, err, "error deleting student", slog.String("id", id))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.NoContent(w)
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeError maps handler and storage errors to responses. Storage
// failures are logged with msg and answered with a generic 500 body.
func writeError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	if errors.Is(err, ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(ErrNotFound))
		return
	}

	slog.Error(msg, append(attrs, slog.String("error", err.Error()))...)
	response.WriteJSON(w, http.StatusInternalServerError, response.InternalError())
}
