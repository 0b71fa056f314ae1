package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/types"
)

func openTemp(t *testing.T, path string) *SQLite {
	t.Helper()

	db, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadEmptyDatabase(t *testing.T) {
	db := openTemp(t, filepath.Join(t.TempDir(), "students.db"))

	data, err := db.Read()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestWriteUpserts(t *testing.T) {
	db := openTemp(t, filepath.Join(t.TempDir(), "students.db"))

	require.NoError(t, db.Write([]byte(`{"students":[]}`)))
	require.NoError(t, db.Write([]byte(`{"students":[{"id":1}]}`)))

	data, err := db.Read()
	require.NoError(t, err)
	assert.Equal(t, `{"students":[{"id":1}]}`, string(data))

	var rows int
	require.NoError(t, db.Db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestStoreOverSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.db")

	db, err := New(path)
	require.NoError(t, err)
	store := storage.New(db)
	require.NoError(t, store.Init())

	created := types.Student{ID: 7, Name: "A", Email: "a@x.com", Address: "Y"}
	require.NoError(t, store.Update(func(doc *types.Document) error {
		doc.Students = append(doc.Students, created)
		return nil
	}))
	require.NoError(t, store.Close())

	reopened := storage.New(openTemp(t, path))
	require.NoError(t, reopened.Init())

	doc, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, []types.Student{created}, doc.Students)
}
