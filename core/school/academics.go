package school

import "time"

type SubjectMark struct {
	Subject  string `json:"subject"`
	Marks    int    `json:"marks"`
	MaxMarks int    `json:"maxMarks"`
}

// ProgressCard is one student's report for a term; one card per
// (student, term), upsert semantics.
type ProgressCard struct {
	ID          string        `json:"id"`
	StudentCode string        `json:"studentCode"`
	ClassCode   string        `json:"classCode"`
	Term        string        `json:"term"`
	Subjects    []SubjectMark `json:"subjects"`
	Remarks     string        `json:"remarks,omitempty"`
	IssuedBy    string        `json:"issuedBy"`
	IssuedAt    time.Time     `json:"issuedAt"` // UTC
}

type AttendanceEntry struct {
	StudentCode string `json:"studentCode"`
	PresentDays int    `json:"presentDays"`
}

// AttendanceRecord is the monthly sheet of one class; one record per
// (class, month), upsert semantics.
type AttendanceRecord struct {
	ID          string            `json:"id"`
	ClassCode   string            `json:"classCode"`
	Month       string            `json:"month"` // YYYY-MM
	WorkingDays int               `json:"workingDays"`
	Entries     []AttendanceEntry `json:"entries"`
	RecordedBy  string            `json:"recordedBy"`
	RecordedAt  time.Time         `json:"recordedAt"` // UTC
}
