// Package school defines the shared document every endpoint reads and
// mutates. All entities are value records inside one root document; the
// only cross-references are string keys (student code, class code,
// assignment ID).
package school

// DocumentVersion is bumped whenever the document shape changes;
// Migrate upgrades older files in place.
const DocumentVersion = 2

type Document struct {
	Version int `json:"version"`

	Students     map[string]Student          `json:"students"`
	Certificates []FeeCertificate            `json:"feeCertificates"`
	StudentCerts map[string][]FeeCertificate `json:"studentFeeCertificates"`

	Assignments []Assignment                  `json:"assignments"`
	Results     map[string][]AssignmentResult `json:"assignmentResults"` // by assignment ID

	ProgressCards map[string][]ProgressCard     `json:"progressCards"`     // by class code
	Attendance    map[string][]AttendanceRecord `json:"monthlyAttendance"` // by class code

	Posts         []FacultyPost  `json:"facultyPosts"`
	Notifications []Notification `json:"notifications"`

	HallTickets map[string][]HallTicket `json:"hallTickets"` // by student code

	History map[string][]HistoryEntry `json:"history"` // by actor key
	Users   []User                    `json:"users"`
}

// NewDocument returns an empty document with every collection allocated.
func NewDocument() *Document {
	doc := &Document{Version: DocumentVersion}
	doc.Normalize()
	return doc
}

// Normalize guarantees every top-level collection exists, even if the
// in-memory object lost one; it runs before each serialization.
func (d *Document) Normalize() {
	if d.Version == 0 {
		d.Version = DocumentVersion
	}
	if d.Students == nil {
		d.Students = make(map[string]Student)
	}
	if d.Certificates == nil {
		d.Certificates = []FeeCertificate{}
	}
	if d.StudentCerts == nil {
		d.StudentCerts = make(map[string][]FeeCertificate)
	}
	if d.Assignments == nil {
		d.Assignments = []Assignment{}
	}
	if d.Results == nil {
		d.Results = make(map[string][]AssignmentResult)
	}
	if d.ProgressCards == nil {
		d.ProgressCards = make(map[string][]ProgressCard)
	}
	if d.Attendance == nil {
		d.Attendance = make(map[string][]AttendanceRecord)
	}
	if d.Posts == nil {
		d.Posts = []FacultyPost{}
	}
	if d.Notifications == nil {
		d.Notifications = []Notification{}
	}
	if d.HallTickets == nil {
		d.HallTickets = make(map[string][]HallTicket)
	}
	if d.History == nil {
		d.History = make(map[string][]HistoryEntry)
	}
	if d.Users == nil {
		d.Users = []User{}
	}
}

// Store is the persistence boundary for the document. Each call loads a
// fresh copy from the backing store; Update persists the mutated copy
// back when fn returns nil. Implementations serialize the whole
// read-modify-write cycle so concurrent writers cannot clobber each
// other at the file level.
type Store interface {
	View(fn func(doc *Document) error) error
	Update(fn func(doc *Document) error) error
}
