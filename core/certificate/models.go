package certificate

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Statuses
const (
	StatusPending = "Pending" // waiting for the final grade
	StatusReady   = "Ready"
	StatusIssued  = "Issued"
	StatusExpired = "Expired"
)

var (
	AllStatuses = []string{StatusPending, StatusReady, StatusIssued, StatusExpired}

	sequence = registry.StaticSequence[Certificate]("C", 3)
)

// Certificate is the end-of-course certificate of a student.
type Certificate struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"student_id,omitempty"`
	StudentName string  `json:"student_name"`
	CourseID    string  `json:"course_id"`
	Grade       float64 `json:"grade"` // final grade, out of 10
	Status      string  `json:"status"`
	IssueDate   string  `json:"issue_date,omitempty"` // YYYY-MM-DD
	Code        string  `json:"code,omitempty"`
	Revision    int     `json:"revision"`
}

func (c Certificate) RecordID() string                       { return c.ID }
func (c Certificate) WithRecordID(id string) Certificate     { c.ID = id; return c }
func (c Certificate) RecordRevision() int                    { return c.Revision }
func (c Certificate) WithRecordRevision(rev int) Certificate { c.Revision = rev; return c }

// Detail is a Certificate with its course name resolved.
type Detail struct {
	Certificate
	Course string `json:"course"`
}

// NewCertificate contains information needed to create a new Certificate.
// Without a status, a graded certificate is Ready and an ungraded one Pending.
type NewCertificate struct {
	ID          string  `json:"id" validate:"omitempty,alphanum"`
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name" validate:"required_without=StudentID"`
	CourseID    string  `json:"course_id" validate:"required"`
	Grade       float64 `json:"grade" validate:"gte=0,lte=10"`
	Status      string  `json:"status" validate:"omitempty,certstatus"`
	IssueDate   string  `json:"issue_date" validate:"omitempty,date"`
	Code        string  `json:"code" validate:"max=50"`
}

func (nc *NewCertificate) Clean() {
	nc.ID = core.CleanString(nc.ID)
	nc.StudentID = core.CleanString(nc.StudentID)
	nc.StudentName = core.CleanString(nc.StudentName)
	nc.CourseID = core.CleanString(nc.CourseID)
	nc.Status = core.CleanString(nc.Status)
	nc.IssueDate = core.CleanString(nc.IssueDate)
	nc.Code = core.CleanString(nc.Code)
	if nc.Status == "" {
		nc.Status = StatusPending
		if nc.Grade > 0 {
			nc.Status = StatusReady
		}
	}
}

// UpdateCertificate defines what may be modified on a Certificate. Zero fields keep their current value.
type UpdateCertificate struct {
	StudentName string  `json:"student_name"`
	CourseID    string  `json:"course_id"`
	Grade       float64 `json:"grade" validate:"gte=0,lte=10"`
	Status      string  `json:"status" validate:"omitempty,certstatus"`
	IssueDate   string  `json:"issue_date" validate:"omitempty,date"`
	Code        string  `json:"code" validate:"max=50"`
	Revision    int     `json:"revision"`
}

func (uc *UpdateCertificate) Clean(orig Certificate) {
	uc.StudentName = core.FirstNonEmpty(core.CleanString(uc.StudentName), orig.StudentName)
	uc.CourseID = core.FirstNonEmpty(core.CleanString(uc.CourseID), orig.CourseID)
	uc.Status = core.FirstNonEmpty(core.CleanString(uc.Status), orig.Status)
	uc.IssueDate = core.FirstNonEmpty(core.CleanString(uc.IssueDate), orig.IssueDate)
	uc.Code = core.FirstNonEmpty(core.CleanString(uc.Code), orig.Code)
	if uc.Grade == 0 {
		uc.Grade = orig.Grade
	}
}

// IssueCertificate issues a Ready certificate. Date defaults to today and Code to "TDD-<id>".
type IssueCertificate struct {
	Date string `json:"date" validate:"omitempty,date"`
	Code string `json:"code" validate:"max=50"`
}

type QueryFilter struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	CourseID  string `query:"course_id"`
	StudentID string `query:"student_id"`
	Ordering  string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status)
	qf.CourseID = core.CleanString(qf.CourseID)
	qf.StudentID = core.CleanString(qf.StudentID)
}

// Projection searches on the student and course names, the id and the code.
func (qf QueryFilter) Projection(courseName registry.Field[Certificate]) registry.Projection[Certificate] {
	return registry.Projection[Certificate]{
		Search: qf.Search,
		SearchFields: []registry.Field[Certificate]{
			func(c Certificate) string { return c.StudentName },
			courseName,
			func(c Certificate) string { return c.ID },
			func(c Certificate) string { return c.Code },
		},
		Filters: []registry.Filter[Certificate]{
			{Name: "status", Value: qf.Status, Field: func(c Certificate) string { return c.Status }},
			{Name: "course_id", Value: qf.CourseID, Field: func(c Certificate) string { return c.CourseID }},
			{Name: "student_id", Value: qf.StudentID, Field: func(c Certificate) string { return c.StudentID }},
		},
	}
}

var orderingFields = map[string]core.Comparator[Certificate]{
	"id":           func(a, b Certificate) int { return core.CompareStrings(a.ID, b.ID) },
	"student_name": func(a, b Certificate) int { return core.CompareStrings(a.StudentName, b.StudentName) },
	"status":       func(a, b Certificate) int { return core.CompareStrings(a.Status, b.Status) },
	"issue_date":   func(a, b Certificate) int { return core.CompareStrings(a.IssueDate, b.IssueDate) },
	"grade": func(a, b Certificate) int {
		switch {
		case a.Grade < b.Grade:
			return -1
		case a.Grade > b.Grade:
			return 1
		}
		return 0
	},
}
