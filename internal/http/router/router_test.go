package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/storage/jsonfile"
	"github.com/aanand-mishra/students-api/internal/storage/sqlite"
	"github.com/aanand-mishra/students-api/internal/types"
)

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func newStore(t *testing.T, driver string) *storage.Store {
	t.Helper()

	var (
		medium storage.Storage
		err    error
	)
	switch driver {
	case "sqlite":
		medium, err = sqlite.New(filepath.Join(t.TempDir(), "students.db"))
	default:
		medium, err = jsonfile.New(filepath.Join(t.TempDir(), "db.json"))
	}
	require.NoError(t, err)

	store := storage.New(medium)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Init())
	return store
}

// TestCRUDLifecycle runs the whole API against both media.
func TestCRUDLifecycle(t *testing.T) {
	for _, driver := range []string{"json", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			h := New(newStore(t, driver))

			resp := serve(h, http.MethodPost, "/api/students",
				`{"name":"A","email":"a@x.com","address":"Y"}`)
			require.Equal(t, http.StatusCreated, resp.Code)

			var created types.Student
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
			url := "/api/students/" + strconv.FormatInt(created.ID, 10)

			resp = serve(h, http.MethodGet, url, "")
			require.Equal(t, http.StatusOK, resp.Code)

			resp = serve(h, http.MethodPut, url, `{"address":"Z"}`)
			require.Equal(t, http.StatusOK, resp.Code)
			assert.JSONEq(t,
				`{"id":`+strconv.FormatInt(created.ID, 10)+`,"name":"A","email":"a@x.com","address":"Z"}`,
				resp.Body.String())

			resp = serve(h, http.MethodGet, "/api/students", "")
			require.Equal(t, http.StatusOK, resp.Code)
			var all []types.Student
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &all))
			assert.Len(t, all, 1)

			resp = serve(h, http.MethodDelete, url, "")
			assert.Equal(t, http.StatusNoContent, resp.Code)

			resp = serve(h, http.MethodGet, url, "")
			assert.Equal(t, http.StatusNotFound, resp.Code)
		})
	}
}

func TestTrailingSlashCollection(t *testing.T) {
	h := New(newStore(t, "json"))

	resp := serve(h, http.MethodGet, "/api/students/", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUnsupportedMethod(t *testing.T) {
	h := New(newStore(t, "json"))

	resp := serve(h, http.MethodPatch, "/api/students/1", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := New(newStore(t, "json"))

	resp := serve(h, http.MethodGet, "/api/teachers", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
