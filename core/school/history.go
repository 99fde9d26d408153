package school

import (
	"time"

	"github.com/google/uuid"
)

// Actor keys partitioning the history trail.
const (
	ActorAdmin        = "admin"
	ActorReceptionist = "receptionist"
	actorFacultyPfx   = "faculty:"
)

// HistoryWindow bounds the read side of the trail; entries older than
// this are kept on disk but never returned.
const HistoryWindow = 30 * 24 * time.Hour

// FacultyActor builds the actor key for one faculty member.
func FacultyActor(facultyCode string) string {
	return actorFacultyPfx + facultyCode
}

// HistoryEntry is one action in the append-only per-actor audit trail.
type HistoryEntry struct {
	ID     string    `json:"id"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"` // UTC
}

// AppendHistory records an action under the actor's trail.
func (d *Document) AppendHistory(actor, action, detail string) {
	if d.History == nil {
		d.History = make(map[string][]HistoryEntry)
	}
	d.History[actor] = append(d.History[actor], HistoryEntry{
		ID:     uuid.New().String(),
		Actor:  actor,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

// RecentHistory returns the actor's entries within the read window,
// newest first. Older entries remain stored.
func (d *Document) RecentHistory(actor string, now time.Time) []HistoryEntry {
	cutoff := now.Add(-HistoryWindow)
	entries := d.History[actor]
	recent := make([]HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].At.After(cutoff) {
			recent = append(recent, entries[i])
		}
	}
	return recent
}
