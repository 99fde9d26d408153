// Package document persists the school document as a single JSON file.
// Every access loads a fresh copy and every mutation rewrites the whole
// file, with the previous revision kept in a `.backup` sibling. The
// read-modify-write cycle is serialized behind a process mutex; nothing
// guards against a second process writing the same file.
package document

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

const backupExt = ".backup"

type FileStore struct {
	path   string
	logger core.Logger
	mu     sync.Mutex
}

var _ school.Store = (*FileStore)(nil)

func NewFileStore(conf *core.Config, logger core.Logger) *FileStore {
	path := conf.DataFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(conf.WorkDir, path)
	}
	return &FileStore{path: path, logger: logger}
}

// Init creates the data file when missing and applies pending shape
// migrations; it runs once at startup.
func (s *FileStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err = os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return errors.Wrap(err, "creating data directory")
		}
		return s.save(school.NewDocument())
	}
	if err != nil {
		return errors.Wrap(err, "reading data file")
	}

	doc, upgraded, err := school.Migrate(data)
	if err != nil {
		return errors.Wrap(err, "migrating data file")
	}
	if upgraded {
		s.logger.Info(fmt.Sprintf("upgraded data file to version %d", school.DocumentVersion))
		return s.save(doc)
	}
	return nil
}

func (s *FileStore) View(fn func(doc *school.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.load())
}

func (s *FileStore) Update(fn func(doc *school.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// load reads and parses the file. A missing or corrupt file is masked:
// the error is logged and an empty default document is returned so the
// request can proceed.
func (s *FileStore) load() *school.Document {
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error(fmt.Sprintf("reading data file: %v", err), err)
		}
		return school.NewDocument()
	}
	doc := new(school.Document)
	if err = json.Unmarshal(data, doc); err != nil {
		s.logger.Error(fmt.Sprintf("corrupt data file, starting from empty document: %v", err), err)
		return school.NewDocument()
	}
	doc.Normalize()
	return doc
}

// save backs the current revision up, then rewrites the file whole.
// Backup failure is logged, not fatal.
func (s *FileStore) save(doc *school.Document) error {
	if current, err := ioutil.ReadFile(s.path); err == nil {
		if err = ioutil.WriteFile(s.path+backupExt, current, 0644); err != nil {
			s.logger.Warn(fmt.Sprintf("writing backup file: %v", err), err)
		}
	}

	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	if err = ioutil.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, "writing data file")
	}
	return nil
}
