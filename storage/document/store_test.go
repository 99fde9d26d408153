package document

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	conf := &core.Config{
		DataFile: filepath.Join(dir, "data", "school.json"),
		WorkDir:  dir,
	}
	store := NewFileStore(conf, nopLogger{})
	require.NoError(t, store.Init())
	return store, conf.DataFile
}

func TestFileStore_Init_createsFile(t *testing.T) {
	_, path := setup(t)

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)

	doc := new(school.Document)
	require.NoError(t, json.Unmarshal(data, doc))
	assert.Equal(t, school.DocumentVersion, doc.Version)
	assert.NotNil(t, doc.Students)
	assert.NotNil(t, doc.History)
}

func TestFileStore_Init_migratesOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "school.json")
	v1 := []byte(`{
		"version": 1,
		"students": {"CB25N007": {"studentCode": "CB25N007", "feeAmount": 5000, "pendingFee": 2000}}
	}`)
	require.NoError(t, ioutil.WriteFile(path, v1, 0644))

	store := NewFileStore(&core.Config{DataFile: path, WorkDir: dir}, nopLogger{})
	require.NoError(t, store.Init())

	err := store.View(func(doc *school.Document) error {
		assert.Equal(t, school.DocumentVersion, doc.Version)
		stu := doc.Students["CB25N007"]
		assert.Equal(t, 5000, stu.TotalFee)
		assert.Equal(t, 2000, stu.CurrentDue)
		return nil
	})
	require.NoError(t, err)
}

func TestFileStore_Update_persistsAndBacksUp(t *testing.T) {
	store, path := setup(t)

	err := store.Update(func(doc *school.Document) error {
		doc.Students["CB25-05-12"] = school.Student{Code: "CB25-05-12", Name: "Asha Rao"}
		return nil
	})
	require.NoError(t, err)

	// a fresh read sees the write
	err = store.View(func(doc *school.Document) error {
		assert.Equal(t, "Asha Rao", doc.Students["CB25-05-12"].Name)
		return nil
	})
	require.NoError(t, err)

	// the previous revision sits in the backup
	backup, err := ioutil.ReadFile(path + ".backup")
	require.NoError(t, err)
	prev := new(school.Document)
	require.NoError(t, json.Unmarshal(backup, prev))
	_, ok := prev.Students["CB25-05-12"]
	assert.False(t, ok, "backup holds the revision before the write")
}

func TestFileStore_Update_errAborts(t *testing.T) {
	store, path := setup(t)

	before, err := ioutil.ReadFile(path)
	require.NoError(t, err)

	boom := assert.AnError
	err = store.Update(func(doc *school.Document) error {
		doc.Students["x"] = school.Student{Code: "x"}
		return boom
	})
	assert.Equal(t, boom, err)

	after, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed update must not touch the file")
}

func TestFileStore_corruptFileMasked(t *testing.T) {
	store, path := setup(t)
	require.NoError(t, ioutil.WriteFile(path, []byte("{broken"), 0644))

	err := store.View(func(doc *school.Document) error {
		assert.Empty(t, doc.Students, "corrupt file reads as an empty document")
		assert.Equal(t, school.DocumentVersion, doc.Version)
		return nil
	})
	require.NoError(t, err)
}

func TestFileStore_relativePathJoinsWorkDir(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(&core.Config{DataFile: filepath.Join("data", "school.json"), WorkDir: dir}, nopLogger{})
	require.NoError(t, store.Init())

	_, err := os.Stat(filepath.Join(dir, "data", "school.json"))
	assert.NoError(t, err)
}
