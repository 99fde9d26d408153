package school

import "time"

// Question is a 4-option MCQ; CorrectAnswer is one of "a".."d" mapping
// positionally onto Options.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type Assignment struct {
	ID        string     `json:"id"`
	ClassCode string     `json:"classCode"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject,omitempty"`
	Questions []Question `json:"questions"`
	ExpiresAt time.Time  `json:"expiryDate,omitempty"` // zero = never expires
	IsActive  bool       `json:"isActive"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"` // UTC
}

func (a Assignment) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && a.ExpiresAt.Before(now)
}

// AssignmentResult holds the graded submission of one student for one
// assignment; one result per (assignment, student), resubmission
// overwrites.
type AssignmentResult struct {
	AssignmentID string    `json:"assignmentId"`
	StudentCode  string    `json:"studentCode"`
	Answers      []string  `json:"answers"`
	Score        int       `json:"score"`
	Total        int       `json:"total"`
	Percentage   int       `json:"percentage"`
	SubmittedAt  time.Time `json:"submittedAt"` // UTC
}

// SweepAssignments drops expired assignments and their results;
// reports whether anything was removed.
func (d *Document) SweepAssignments(now time.Time) bool {
	kept := d.Assignments[:0]
	var swept bool
	for _, a := range d.Assignments {
		if a.Expired(now) {
			delete(d.Results, a.ID)
			swept = true
			continue
		}
		kept = append(kept, a)
	}
	d.Assignments = kept
	return swept
}
