package schedule

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Statuses
const (
	StatusActive    = "Active"
	StatusUpcoming  = "Upcoming"
	StatusCompleted = "Completed"
)

var (
	AllStatuses = []string{StatusActive, StatusUpcoming, StatusCompleted}

	statusColors = map[string]string{
		StatusActive:    "#007bff",
		StatusUpcoming:  "#ff7043",
		StatusCompleted: "#6c757d",
	}

	sequence = registry.StaticSequence[Event]("S", 3)
)

// Event is one teaching session of a class.
type Event struct {
	ID        string `json:"id"`
	Date      string `json:"date"`       // YYYY-MM-DD
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	ClassID   string `json:"class_id"`
	TeacherID string `json:"teacher_id"`
	Room      string `json:"room,omitempty"`
	Status    string `json:"status"`
	Color     string `json:"color"`
	Revision  int    `json:"revision"`
}

func (e Event) RecordID() string                 { return e.ID }
func (e Event) WithRecordID(id string) Event     { e.ID = id; return e }
func (e Event) RecordRevision() int              { return e.Revision }
func (e Event) WithRecordRevision(rev int) Event { e.Revision = rev; return e }

// Detail is an Event with its references resolved to display names.
type Detail struct {
	Event
	Class   string `json:"class"`
	Teacher string `json:"teacher"`
}

type NewEvent struct {
	ID        string `json:"id" validate:"omitempty,alphanum"`
	Date      string `json:"date" validate:"required,date"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time" validate:"required,clock"`
	ClassID   string `json:"class_id" validate:"required"`
	TeacherID string `json:"teacher_id"` // defaults to the class teacher
	Room      string `json:"room" validate:"max=50"`
	Status    string `json:"status" validate:"omitempty,eventstatus"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
}

func (ne *NewEvent) Clean() {
	ne.ID = core.CleanString(ne.ID)
	ne.Date = core.CleanString(ne.Date)
	ne.StartTime = core.CleanString(ne.StartTime)
	ne.EndTime = core.CleanString(ne.EndTime)
	ne.ClassID = core.CleanString(ne.ClassID)
	ne.TeacherID = core.CleanString(ne.TeacherID)
	ne.Room = core.CleanString(ne.Room)
	ne.Status = core.FirstNonEmpty(core.CleanString(ne.Status), StatusUpcoming)
	ne.Color = core.FirstNonEmpty(core.CleanString(ne.Color, true /* lower */), statusColors[ne.Status])
}

// UpdateEvent defines what may be modified on an Event. Empty fields keep their current value.
type UpdateEvent struct {
	Date      string `json:"date" validate:"omitempty,date"`
	StartTime string `json:"start_time" validate:"omitempty,clock"`
	EndTime   string `json:"end_time" validate:"omitempty,clock"`
	ClassID   string `json:"class_id"`
	TeacherID string `json:"teacher_id"`
	Room      string `json:"room" validate:"max=50"`
	Status    string `json:"status" validate:"omitempty,eventstatus"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
	Revision  int    `json:"revision"`
}

func (ue *UpdateEvent) Clean(orig Event) {
	ue.Date = core.FirstNonEmpty(core.CleanString(ue.Date), orig.Date)
	ue.StartTime = core.FirstNonEmpty(core.CleanString(ue.StartTime), orig.StartTime)
	ue.EndTime = core.FirstNonEmpty(core.CleanString(ue.EndTime), orig.EndTime)
	ue.ClassID = core.FirstNonEmpty(core.CleanString(ue.ClassID), orig.ClassID)
	ue.TeacherID = core.FirstNonEmpty(core.CleanString(ue.TeacherID), orig.TeacherID)
	ue.Room = core.FirstNonEmpty(core.CleanString(ue.Room), orig.Room)
	ue.Status = core.FirstNonEmpty(core.CleanString(ue.Status), orig.Status)
	ue.Color = core.FirstNonEmpty(core.CleanString(ue.Color, true /* lower */), orig.Color)
}

type QueryFilter struct {
	Search    string `query:"search"`
	Date      string `query:"date"`
	Status    string `query:"status"`
	TeacherID string `query:"teacher_id"`
	ClassID   string `query:"class_id"`
	Ordering  string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Date = core.CleanString(qf.Date)
	qf.Status = core.CleanString(qf.Status)
	qf.TeacherID = core.CleanString(qf.TeacherID)
	qf.ClassID = core.CleanString(qf.ClassID)
}

// Projection searches on class and teacher names and filters on date, status, teacher and class.
func (qf QueryFilter) Projection(className, teacherName registry.Field[Event]) registry.Projection[Event] {
	return registry.Projection[Event]{
		Search:       qf.Search,
		SearchFields: []registry.Field[Event]{className, teacherName},
		Filters: []registry.Filter[Event]{
			{Name: "date", Value: qf.Date, Field: func(e Event) string { return e.Date }},
			{Name: "status", Value: qf.Status, Field: func(e Event) string { return e.Status }},
			{Name: "teacher_id", Value: qf.TeacherID, Field: func(e Event) string { return e.TeacherID }},
			{Name: "class_id", Value: qf.ClassID, Field: func(e Event) string { return e.ClassID }},
		},
	}
}

// the schedule is chronological unless asked otherwise
var defaultOrdering = "date,start_time"

var orderingFields = map[string]core.Comparator[Event]{
	"id":         func(a, b Event) int { return core.CompareStrings(a.ID, b.ID) },
	"date":       func(a, b Event) int { return core.CompareStrings(a.Date, b.Date) },
	"start_time": func(a, b Event) int { return core.CompareStrings(a.StartTime, b.StartTime) },
	"status":     func(a, b Event) int { return core.CompareStrings(a.Status, b.Status) },
}
