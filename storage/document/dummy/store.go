// Package dummydb is the in-memory document store used in tests.
package dummydb

import (
	"sync"

	"github.com/darasahq/darasa/core/school"
)

type Store struct {
	mu  sync.Mutex
	doc *school.Document

	// Saves counts committed updates; tests use it to assert that a
	// read endpoint persisted a sweep.
	Saves int
}

var _ school.Store = (*Store)(nil)

func Open() (*Store, error) {
	return &Store{doc: school.NewDocument()}, nil
}

func (s *Store) View(fn func(doc *school.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

func (s *Store) Update(fn func(doc *school.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.doc); err != nil {
		return err
	}
	s.doc.Normalize()
	s.Saves++
	return nil
}

// Seed replaces the whole document; test setup helper.
func (s *Store) Seed(doc *school.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Normalize()
	s.doc = doc
}
