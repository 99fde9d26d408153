package school

import "time"

type FacultyPost struct {
	ID          string    `json:"id"`
	FacultyCode string    `json:"facultyCode"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ExpiresAt   time.Time `json:"expiryDate,omitempty"` // zero = never expires
	PostedAt    time.Time `json:"postedAt"`             // UTC
}

func (p FacultyPost) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && p.ExpiresAt.Before(now)
}

// Notification is a school-wide announcement; Source records which
// actor published it.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Source    string    `json:"source"`
	ExpiresAt time.Time `json:"expiryDate,omitempty"` // zero = never expires
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

func (n Notification) Expired(now time.Time) bool {
	return !n.ExpiresAt.IsZero() && n.ExpiresAt.Before(now)
}

func (d *Document) SweepPosts(now time.Time) bool {
	kept := d.Posts[:0]
	var swept bool
	for _, p := range d.Posts {
		if p.Expired(now) {
			swept = true
			continue
		}
		kept = append(kept, p)
	}
	d.Posts = kept
	return swept
}

func (d *Document) SweepNotifications(now time.Time) bool {
	kept := d.Notifications[:0]
	var swept bool
	for _, n := range d.Notifications {
		if n.Expired(now) {
			swept = true
			continue
		}
		kept = append(kept, n)
	}
	d.Notifications = kept
	return swept
}
