package school

import "time"

// HallTicket admits one student to one exam session.
type HallTicket struct {
	ID          string    `json:"id"`
	StudentCode string    `json:"studentCode"`
	StudentName string    `json:"studentName"`
	ClassCode   string    `json:"classCode"`
	Roll        string    `json:"rollNumber"`
	ExamSession string    `json:"examSession"`
	ExamCentre  string    `json:"examCentre,omitempty"`
	ExpiresAt   time.Time `json:"expiryDate,omitempty"` // zero = never expires
	IssuedBy    string    `json:"issuedBy"`
	IssuedAt    time.Time `json:"issuedAt"` // UTC
}

func (h HallTicket) Expired(now time.Time) bool {
	return !h.ExpiresAt.IsZero() && h.ExpiresAt.Before(now)
}

func (d *Document) SweepHallTickets(now time.Time) bool {
	var swept bool
	for code, tickets := range d.HallTickets {
		kept := tickets[:0]
		for _, t := range tickets {
			if t.Expired(now) {
				swept = true
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) == 0 {
			delete(d.HallTickets, code)
			continue
		}
		d.HallTickets[code] = kept
	}
	return swept
}
