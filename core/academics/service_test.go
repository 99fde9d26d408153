package academics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/student"
	"github.com/darasahq/darasa/storage/document/dummy"
)

func testConf() *core.Config {
	return &core.Config{SchoolCode: "CB", AcademicYear: "2025-26"}
}

func setup(t *testing.T) (*Service, *dummydb.Store) {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	return NewService(db, testConf()), db
}

func registerStudent(t *testing.T, db *dummydb.Store, class, roll string) school.Student {
	t.Helper()
	stu, err := student.NewService(db, testConf()).Register(student.NewStudent{
		Name:       "Asha Rao",
		FatherName: "Vikram Rao",
		Class:      class,
		Roll:       roll,
	}, school.ActorReceptionist)
	require.NoError(t, err)
	return stu
}

func TestService_RecordCard(t *testing.T) {
	svc, db := setup(t)
	stu := registerStudent(t, db, "5", "12")

	card, err := svc.RecordCard(NewProgressCard{
		StudentCode: stu.Code,
		Term:        "term-1",
		Subjects: []NewSubjectMark{
			{Subject: "Maths", Marks: 82, MaxMarks: 100},
			{Subject: "English", Marks: 74, MaxMarks: 100},
		},
		Remarks: "Good progress",
	}, school.FacultyActor("F01"))
	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, stu.Class, card.ClassCode, "class comes off the master record")
	assert.Len(t, card.Subjects, 2)

	// same term upserts, keeping the original ID
	again, err := svc.RecordCard(NewProgressCard{
		StudentCode: stu.Code,
		Term:        "term-1",
		Subjects:    []NewSubjectMark{{Subject: "Maths", Marks: 90, MaxMarks: 100}},
	}, school.FacultyActor("F01"))
	require.NoError(t, err)
	assert.Equal(t, card.ID, again.ID)

	cards, err := svc.CardsByClass("5")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 90, cards[0].Subjects[0].Marks)

	// a second term is a separate card
	_, err = svc.RecordCard(NewProgressCard{
		StudentCode: stu.Code,
		Term:        "term-2",
		Subjects:    []NewSubjectMark{{Subject: "Maths", Marks: 88, MaxMarks: 100}},
	}, school.FacultyActor("F01"))
	require.NoError(t, err)

	mine, err := svc.CardsByStudent(stu.Code)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = svc.RecordCard(NewProgressCard{
		StudentCode: "CB25-05-99",
		Term:        "term-1",
		Subjects:    []NewSubjectMark{{Subject: "Maths", Marks: 1, MaxMarks: 10}},
	}, school.FacultyActor("F01"))
	assert.Equal(t, student.ErrNotFound, err)
}

func TestService_RecordAttendance(t *testing.T) {
	svc, db := setup(t)
	stu := registerStudent(t, db, "5", "12")

	rec, err := svc.RecordAttendance(NewAttendance{
		ClassCode:   "5",
		Month:       "2025-06",
		WorkingDays: 22,
		Entries:     []school.AttendanceEntry{{StudentCode: stu.Code, PresentDays: 20}},
	}, school.FacultyActor("F01"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	// same class+month upserts, keeping the original ID
	again, err := svc.RecordAttendance(NewAttendance{
		ClassCode:   "5",
		Month:       "2025-06",
		WorkingDays: 22,
		Entries:     []school.AttendanceEntry{{StudentCode: stu.Code, PresentDays: 21}},
	}, school.FacultyActor("F01"))
	require.NoError(t, err)
	assert.Equal(t, rec.ID, again.ID)

	sheets, err := svc.AttendanceByClass("5")
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, 21, sheets[0].Entries[0].PresentDays)

	mine, err := svc.AttendanceByStudent(stu.Code)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, StudentAttendance{Month: "2025-06", ClassCode: "5", PresentDays: 21, WorkingDays: 22}, mine[0])
}

func TestService_RecordAttendance_validation(t *testing.T) {
	svc, db := setup(t)
	stu := registerStudent(t, db, "5", "12")

	// month outside the April-March academic year
	_, err := svc.RecordAttendance(NewAttendance{
		ClassCode:   "5",
		Month:       "2025-03",
		WorkingDays: 22,
		Entries:     []school.AttendanceEntry{{StudentCode: stu.Code, PresentDays: 10}},
	}, school.ActorAdmin)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, "month", vErr.Fields[0].Field)

	// March of the closing year is still inside the window
	_, err = svc.RecordAttendance(NewAttendance{
		ClassCode:   "5",
		Month:       "2026-03",
		WorkingDays: 20,
		Entries:     []school.AttendanceEntry{{StudentCode: stu.Code, PresentDays: 20}},
	}, school.ActorAdmin)
	require.NoError(t, err)

	// present days above working days
	_, err = svc.RecordAttendance(NewAttendance{
		ClassCode:   "5",
		Month:       "2025-07",
		WorkingDays: 20,
		Entries:     []school.AttendanceEntry{{StudentCode: stu.Code, PresentDays: 25}},
	}, school.ActorAdmin)
	vErr, ok = err.(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, "entries", vErr.Fields[0].Field)
}
