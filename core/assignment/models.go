package assignment

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Statuses
const (
	StatusPending   = "Pending"
	StatusDue       = "Due"
	StatusGraded    = "Graded"
	StatusCompleted = "Completed"
)

// Views group the statuses like the student assignments screen does.
const (
	ViewOpen = "open" // Pending, Due
	ViewDone = "done" // Graded, Completed
)

var (
	AllStatuses = []string{StatusPending, StatusDue, StatusGraded, StatusCompleted}

	sequence = registry.StaticSequence[Assignment]("A", 3)
)

// Grade is the score of one student.
type Grade struct {
	StudentID string  `json:"student_id"`
	Score     float64 `json:"score"`
}

// Assignment is homework or a test given to a class, with the grades of its students.
type Assignment struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	ClassID   string  `json:"class_id"`
	DueDate   string  `json:"due_date"` // YYYY-MM-DD
	MaxScore  float64 `json:"max_score"`
	PassScore float64 `json:"pass_score"`
	Status    string  `json:"status"`
	Grades    []Grade `json:"grades"`
	Revision  int     `json:"revision"`
}

func (a Assignment) RecordID() string                      { return a.ID }
func (a Assignment) WithRecordID(id string) Assignment     { a.ID = id; return a }
func (a Assignment) RecordRevision() int                   { return a.Revision }
func (a Assignment) WithRecordRevision(rev int) Assignment { a.Revision = rev; return a }

// View returns ViewDone for graded or completed assignments, ViewOpen otherwise.
func (a Assignment) View() string {
	if a.Status == StatusGraded || a.Status == StatusCompleted {
		return ViewDone
	}
	return ViewOpen
}

// Results sums up the grades of an assignment.
type Results struct {
	Graded  int     `json:"graded"`
	Passed  int     `json:"passed"`
	Average float64 `json:"average"`
}

func (a Assignment) Results() Results {
	var (
		res   Results
		total float64
	)
	for _, g := range a.Grades {
		res.Graded++
		total += g.Score
		if g.Score >= a.PassScore {
			res.Passed++
		}
	}
	if res.Graded > 0 {
		res.Average = total / float64(res.Graded)
	}
	return res
}

// Detail is an Assignment with its class name and results.
type Detail struct {
	Assignment
	Class   string  `json:"class"`
	Results Results `json:"results"`
}

// NewAssignment contains information needed to create a new Assignment.
// The pass score defaults to half the max score.
type NewAssignment struct {
	ID        string  `json:"id" validate:"omitempty,alphanum"`
	Title     string  `json:"title" validate:"notblank"`
	ClassID   string  `json:"class_id" validate:"required"`
	DueDate   string  `json:"due_date" validate:"required,date"`
	MaxScore  float64 `json:"max_score" validate:"gt=0"`
	PassScore float64 `json:"pass_score" validate:"gte=0,ltefield=MaxScore"`
	Status    string  `json:"status" validate:"omitempty,assignmentstatus"`
}

func (na *NewAssignment) Clean() {
	na.ID = core.CleanString(na.ID)
	na.Title = core.CleanString(na.Title)
	na.ClassID = core.CleanString(na.ClassID)
	na.DueDate = core.CleanString(na.DueDate)
	na.Status = core.FirstNonEmpty(core.CleanString(na.Status), StatusPending)
	if na.PassScore == 0 {
		na.PassScore = na.MaxScore / 2
	}
}

// UpdateAssignment defines what may be modified on an Assignment. Zero fields keep their current value.
type UpdateAssignment struct {
	Title     string  `json:"title"`
	ClassID   string  `json:"class_id"`
	DueDate   string  `json:"due_date" validate:"omitempty,date"`
	MaxScore  float64 `json:"max_score" validate:"gte=0"`
	PassScore float64 `json:"pass_score" validate:"gte=0,ltefield=MaxScore"`
	Status    string  `json:"status" validate:"omitempty,assignmentstatus"`
	Revision  int     `json:"revision"`
}

func (ua *UpdateAssignment) Clean(orig Assignment) {
	ua.Title = core.FirstNonEmpty(core.CleanString(ua.Title), orig.Title)
	ua.ClassID = core.FirstNonEmpty(core.CleanString(ua.ClassID), orig.ClassID)
	ua.DueDate = core.FirstNonEmpty(core.CleanString(ua.DueDate), orig.DueDate)
	ua.Status = core.FirstNonEmpty(core.CleanString(ua.Status), orig.Status)
	if ua.MaxScore == 0 {
		ua.MaxScore = orig.MaxScore
	}
	if ua.PassScore == 0 {
		ua.PassScore = orig.PassScore
	}
}

// NewGrade records the score of a student. Grading a student twice replaces the score.
type NewGrade struct {
	StudentID string  `json:"student_id" validate:"required"`
	Score     float64 `json:"score" validate:"gte=0"`
}

type QueryFilter struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	ClassID  string `query:"class_id"`
	View     string `query:"view"` // open, done
	Ordering string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status)
	qf.ClassID = core.CleanString(qf.ClassID)
	qf.View = core.CleanString(qf.View, true /* lower */)
}

// Projection searches on the title, the class name and the id.
func (qf QueryFilter) Projection(className registry.Field[Assignment]) registry.Projection[Assignment] {
	return registry.Projection[Assignment]{
		Search: qf.Search,
		SearchFields: []registry.Field[Assignment]{
			func(a Assignment) string { return a.Title },
			className,
			func(a Assignment) string { return a.ID },
		},
		Filters: []registry.Filter[Assignment]{
			{Name: "status", Value: qf.Status, Field: func(a Assignment) string { return a.Status }},
			{Name: "class_id", Value: qf.ClassID, Field: func(a Assignment) string { return a.ClassID }},
			{Name: "view", Value: qf.View, Field: Assignment.View},
		},
	}
}

const defaultOrdering = "due_date"

var orderingFields = map[string]core.Comparator[Assignment]{
	"id":       func(a, b Assignment) int { return core.CompareStrings(a.ID, b.ID) },
	"title":    func(a, b Assignment) int { return core.CompareStrings(a.Title, b.Title) },
	"due_date": func(a, b Assignment) int { return core.CompareStrings(a.DueDate, b.DueDate) },
	"status":   func(a, b Assignment) int { return core.CompareStrings(a.Status, b.Status) },
}
