package class

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Statuses
const (
	StatusInProgress = "InProgress"
	StatusScheduled  = "Scheduled"
	StatusFinished   = "Finished"
)

const defaultSchedule = "Not scheduled yet"

var (
	AllStatuses = []string{StatusInProgress, StatusScheduled, StatusFinished}

	statusColors = map[string]string{
		StatusInProgress: "#28a745",
		StatusScheduled:  "#ffc107",
		StatusFinished:   "#dc3545",
	}

	sequence = registry.StaticSequence[Class]("L", 3)
)

type Class struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CourseID    string `json:"course_id"`
	TeacherID   string `json:"teacher_id"`
	Students    int    `json:"students"`
	Status      string `json:"status"`
	Color       string `json:"color"`
	Schedule    string `json:"schedule,omitempty"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Revision    int    `json:"revision"`
}

func (c Class) RecordID() string                 { return c.ID }
func (c Class) WithRecordID(id string) Class     { c.ID = id; return c }
func (c Class) RecordRevision() int              { return c.Revision }
func (c Class) WithRecordRevision(rev int) Class { c.Revision = rev; return c }

// Detail is a Class with its references resolved to display names.
type Detail struct {
	Class
	Course  string `json:"course"`
	Teacher string `json:"teacher"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	ID          string `json:"id" validate:"omitempty,alphanum"`
	Name        string `json:"name" validate:"notblank"`
	CourseID    string `json:"course_id" validate:"required"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	Students    int    `json:"students" validate:"gt=0"`
	Status      string `json:"status" validate:"omitempty,classstatus"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Schedule    string `json:"schedule"`
	Description string `json:"description" validate:"max=2000"`
	StartDate   string `json:"start_date" validate:"omitempty,date"`
	EndDate     string `json:"end_date" validate:"omitempty,date"`
}

func (nc *NewClass) Clean() {
	nc.ID = core.CleanString(nc.ID)
	nc.Name = core.CleanString(nc.Name)
	nc.CourseID = core.CleanString(nc.CourseID)
	nc.TeacherID = core.CleanString(nc.TeacherID)
	nc.Status = core.FirstNonEmpty(core.CleanString(nc.Status), StatusScheduled)
	nc.Color = core.FirstNonEmpty(core.CleanString(nc.Color, true /* lower */), statusColors[nc.Status])
	nc.Schedule = core.FirstNonEmpty(core.CleanString(nc.Schedule), defaultSchedule)
	nc.Description = core.CleanString(nc.Description)
	nc.StartDate = core.CleanString(nc.StartDate)
	nc.EndDate = core.CleanString(nc.EndDate)
}

// UpdateClass defines what may be modified on a Class. Zero fields keep their current value.
type UpdateClass struct {
	Name        string  `json:"name"`
	CourseID    string  `json:"course_id"`
	TeacherID   string  `json:"teacher_id"`
	Students    int     `json:"students" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,classstatus"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Schedule    string  `json:"schedule"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	StartDate   string  `json:"start_date" validate:"omitempty,date"`
	EndDate     string  `json:"end_date" validate:"omitempty,date"`
	Revision    int     `json:"revision"`
}

func (uc *UpdateClass) Clean(orig Class) {
	uc.Name = core.FirstNonEmpty(core.CleanString(uc.Name), orig.Name)
	uc.CourseID = core.FirstNonEmpty(core.CleanString(uc.CourseID), orig.CourseID)
	uc.TeacherID = core.FirstNonEmpty(core.CleanString(uc.TeacherID), orig.TeacherID)
	uc.Status = core.FirstNonEmpty(core.CleanString(uc.Status), orig.Status)
	uc.Color = core.FirstNonEmpty(core.CleanString(uc.Color, true /* lower */), orig.Color)
	uc.Schedule = core.FirstNonEmpty(core.CleanString(uc.Schedule), orig.Schedule)
	uc.StartDate = core.FirstNonEmpty(core.CleanString(uc.StartDate), orig.StartDate)
	uc.EndDate = core.FirstNonEmpty(core.CleanString(uc.EndDate), orig.EndDate)
	if uc.Students == 0 {
		uc.Students = orig.Students
	}
	if uc.Description != nil {
		desc := core.CleanString(*uc.Description)
		uc.Description = &desc
	}
}

type QueryFilter struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	CourseID  string `query:"course_id"`
	TeacherID string `query:"teacher_id"`
	Ordering  string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status)
	qf.CourseID = core.CleanString(qf.CourseID)
	qf.TeacherID = core.CleanString(qf.TeacherID)
}

// Projection searches on name, teacher name and id and filters on status, course and teacher.
func (qf QueryFilter) Projection(teacherName registry.Field[Class]) registry.Projection[Class] {
	return registry.Projection[Class]{
		Search: qf.Search,
		SearchFields: []registry.Field[Class]{
			func(c Class) string { return c.Name },
			teacherName,
			func(c Class) string { return c.ID },
		},
		Filters: []registry.Filter[Class]{
			{Name: "status", Value: qf.Status, Field: func(c Class) string { return c.Status }},
			{Name: "course_id", Value: qf.CourseID, Field: func(c Class) string { return c.CourseID }},
			{Name: "teacher_id", Value: qf.TeacherID, Field: func(c Class) string { return c.TeacherID }},
		},
	}
}

var orderingFields = map[string]core.Comparator[Class]{
	"id":         func(a, b Class) int { return core.CompareStrings(a.ID, b.ID) },
	"name":       func(a, b Class) int { return core.CompareStrings(a.Name, b.Name) },
	"status":     func(a, b Class) int { return core.CompareStrings(a.Status, b.Status) },
	"students":   func(a, b Class) int { return core.CompareInts(a.Students, b.Students) },
	"start_date": func(a, b Class) int { return core.CompareStrings(a.StartDate, b.StartDate) },
}
