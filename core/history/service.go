// Package history exposes the read side of the per-actor audit trail.
// Writes happen inside each domain mutation; reads are windowed to the
// last 30 days.
package history

import (
	"time"

	"github.com/darasahq/darasa/core/school"
)

type Service struct {
	store school.Store
}

func NewService(store school.Store) *Service {
	return &Service{store: store}
}

// Recent returns the actor's trail within the read window, newest
// first.
func (svc *Service) Recent(actor string) ([]school.HistoryEntry, error) {
	out := []school.HistoryEntry{}
	err := svc.store.View(func(doc *school.Document) error {
		out = append(out, doc.RecentHistory(actor, time.Now().UTC())...)
		return nil
	})
	return out, err
}

// Actors lists the trail partitions present in the document.
func (svc *Service) Actors() ([]string, error) {
	var out []string
	err := svc.store.View(func(doc *school.Document) error {
		for actor := range doc.History {
			out = append(out, actor)
		}
		return nil
	})
	return out, err
}
