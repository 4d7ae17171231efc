package attendance

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Statuses
const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusAbsent  = "Absent"
	StatusExcused = "Excused"
)

var (
	AllStatuses = []string{StatusPresent, StatusLate, StatusAbsent, StatusExcused}

	sequence = registry.StaticSequence[Record]("D", 4)
)

// Record is the attendance of one student to one class session.
type Record struct {
	ID        string `json:"id"`
	ClassID   string `json:"class_id"`
	StudentID string `json:"student_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Status    string `json:"status"`
	Revision  int    `json:"revision"`
}

func (r Record) RecordID() string                  { return r.ID }
func (r Record) WithRecordID(id string) Record     { r.ID = id; return r }
func (r Record) RecordRevision() int               { return r.Revision }
func (r Record) WithRecordRevision(rev int) Record { r.Revision = rev; return r }

// session identifies the roll call a record belongs to.
func (r Record) session() string { return r.ClassID + "/" + r.Date }

// Detail is a Record with the student and class names.
type Detail struct {
	Record
	Student string `json:"student"`
	Class   string `json:"class"`
}

// Entry is one line of a roll call. The status defaults to Present.
type Entry struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"omitempty,attendancestatus"`
}

// RollCall records the attendance of a class session. Calling the roll again for the same
// session overwrites the status of the students it lists.
type RollCall struct {
	ClassID string  `json:"class_id" validate:"required"`
	Date    string  `json:"date" validate:"required,date"`
	Entries []Entry `json:"entries" validate:"required,min=1,dive"`
}

func (rc *RollCall) Clean() {
	rc.ClassID = core.CleanString(rc.ClassID)
	rc.Date = core.CleanString(rc.Date)
	for i := range rc.Entries {
		rc.Entries[i].StudentID = core.CleanString(rc.Entries[i].StudentID)
		rc.Entries[i].Status = core.FirstNonEmpty(core.CleanString(rc.Entries[i].Status), StatusPresent)
	}
}

type UpdateRecord struct {
	Status   string `json:"status" validate:"required,attendancestatus"`
	Revision int    `json:"revision"`
}

// Summary counts the records per status, like the footer of the roll call screens.
type Summary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	Excused int `json:"excused"`
}

func (s *Summary) add(status string) {
	s.Total++
	switch status {
	case StatusPresent:
		s.Present++
	case StatusLate:
		s.Late++
	case StatusAbsent:
		s.Absent++
	case StatusExcused:
		s.Excused++
	}
}

type QueryFilter struct {
	Search    string `query:"search"`
	ClassID   string `query:"class_id"`
	StudentID string `query:"student_id"`
	Date      string `query:"date"`
	Status    string `query:"status"`
	Ordering  string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.ClassID = core.CleanString(qf.ClassID)
	qf.StudentID = core.CleanString(qf.StudentID)
	qf.Date = core.CleanString(qf.Date)
	qf.Status = core.CleanString(qf.Status)
}

// Projection searches on the student name and the student id.
func (qf QueryFilter) Projection(studentName registry.Field[Record]) registry.Projection[Record] {
	return registry.Projection[Record]{
		Search: qf.Search,
		SearchFields: []registry.Field[Record]{
			studentName,
			func(r Record) string { return r.StudentID },
		},
		Filters: []registry.Filter[Record]{
			{Name: "class_id", Value: qf.ClassID, Field: func(r Record) string { return r.ClassID }},
			{Name: "student_id", Value: qf.StudentID, Field: func(r Record) string { return r.StudentID }},
			{Name: "date", Value: qf.Date, Field: func(r Record) string { return r.Date }},
			{Name: "status", Value: qf.Status, Field: func(r Record) string { return r.Status }},
		},
	}
}

var orderingFields = map[string]core.Comparator[Record]{
	"id":         func(a, b Record) int { return core.CompareStrings(a.ID, b.ID) },
	"date":       func(a, b Record) int { return core.CompareStrings(a.Date, b.Date) },
	"student_id": func(a, b Record) int { return core.CompareStrings(a.StudentID, b.StudentID) },
	"status":     func(a, b Record) int { return core.CompareStrings(a.Status, b.Status) },
}
