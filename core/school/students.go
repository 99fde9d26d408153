package school

import "time"

// Student is the master record for one registered student; keyed by
// Code in Document.Students. CurrentDue only ever moves down, one fee
// certificate at a time.
type Student struct {
	Code         string    `json:"studentCode"`
	Name         string    `json:"studentName"`
	FatherName   string    `json:"fatherName"`
	Class        string    `json:"studentClass"`
	Roll         string    `json:"studentRoll"`
	TotalFee     int       `json:"totalFee"`
	CurrentDue   int       `json:"currentDue"`
	AcademicYear string    `json:"academicYear"`
	RegisteredAt time.Time `json:"registeredDate"` // UTC
	UpdatedAt    time.Time `json:"lastUpdated"`    // UTC
}

// TotalPaid is the amount settled so far against the student's fee.
func (s Student) TotalPaid() int {
	return s.TotalFee - s.CurrentDue
}
