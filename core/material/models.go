package material

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Types
const (
	TypePDF   = "PDF"
	TypeSlide = "Slide"
	TypeVideo = "Video"
	TypeTest  = "Test"
)

var (
	AllTypes = []string{TypePDF, TypeSlide, TypeVideo, TypeTest}

	sequence = registry.StaticSequence[Material]("M", 3)
)

// Material describes a learning resource shared with the students of a course.
// Only the description is kept, not the file itself.
type Material struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CourseID     string `json:"course_id"`
	Type         string `json:"type"`
	Size         string `json:"size,omitempty"` // as displayed, e.g. "2.5 MB"
	Description  string `json:"description,omitempty"`
	TeacherID    string `json:"teacher_id"` // uploaded by
	UploadedDate string `json:"uploaded_date"`
	Revision     int    `json:"revision"`
}

func (m Material) RecordID() string                    { return m.ID }
func (m Material) WithRecordID(id string) Material     { m.ID = id; return m }
func (m Material) RecordRevision() int                 { return m.Revision }
func (m Material) WithRecordRevision(rev int) Material { m.Revision = rev; return m }

// Detail is a Material with its course and teacher names.
type Detail struct {
	Material
	Course  string `json:"course"`
	Teacher string `json:"teacher"`
}

// NewMaterial contains information needed to create a new Material.
// The upload date defaults to today.
type NewMaterial struct {
	ID           string `json:"id" validate:"omitempty,alphanum"`
	Title        string `json:"title" validate:"notblank,max=200"`
	CourseID     string `json:"course_id" validate:"required"`
	Type         string `json:"type" validate:"required,materialtype"`
	Size         string `json:"size" validate:"max=20"`
	Description  string `json:"description" validate:"max=1000"`
	TeacherID    string `json:"teacher_id" validate:"required"`
	UploadedDate string `json:"uploaded_date" validate:"omitempty,date"`
}

func (nm *NewMaterial) Clean() {
	nm.ID = core.CleanString(nm.ID)
	nm.Title = core.CleanString(nm.Title)
	nm.CourseID = core.CleanString(nm.CourseID)
	nm.Type = core.CleanString(nm.Type)
	nm.Size = core.CleanString(nm.Size)
	nm.Description = core.CleanString(nm.Description)
	nm.TeacherID = core.CleanString(nm.TeacherID)
	nm.UploadedDate = core.CleanString(nm.UploadedDate)
}

// UpdateMaterial defines what may be modified on a Material. Empty fields keep their current value.
type UpdateMaterial struct {
	Title       string `json:"title" validate:"max=200"`
	CourseID    string `json:"course_id"`
	Type        string `json:"type" validate:"omitempty,materialtype"`
	Size        string `json:"size" validate:"max=20"`
	Description string `json:"description" validate:"max=1000"`
	Revision    int    `json:"revision"`
}

func (um *UpdateMaterial) Clean(orig Material) {
	um.Title = core.FirstNonEmpty(core.CleanString(um.Title), orig.Title)
	um.CourseID = core.FirstNonEmpty(core.CleanString(um.CourseID), orig.CourseID)
	um.Type = core.FirstNonEmpty(core.CleanString(um.Type), orig.Type)
	um.Size = core.FirstNonEmpty(core.CleanString(um.Size), orig.Size)
	um.Description = core.FirstNonEmpty(core.CleanString(um.Description), orig.Description)
}

type QueryFilter struct {
	Search    string `query:"search"`
	Type      string `query:"type"`
	CourseID  string `query:"course_id"`
	TeacherID string `query:"teacher_id"`
	Ordering  string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Type = core.CleanString(qf.Type)
	qf.CourseID = core.CleanString(qf.CourseID)
	qf.TeacherID = core.CleanString(qf.TeacherID)
}

// Projection searches on the title, the course name and the id.
func (qf QueryFilter) Projection(courseName registry.Field[Material]) registry.Projection[Material] {
	return registry.Projection[Material]{
		Search: qf.Search,
		SearchFields: []registry.Field[Material]{
			func(m Material) string { return m.Title },
			courseName,
			func(m Material) string { return m.ID },
		},
		Filters: []registry.Filter[Material]{
			{Name: "type", Value: qf.Type, Field: func(m Material) string { return m.Type }},
			{Name: "course_id", Value: qf.CourseID, Field: func(m Material) string { return m.CourseID }},
			{Name: "teacher_id", Value: qf.TeacherID, Field: func(m Material) string { return m.TeacherID }},
		},
	}
}

// newest first
const defaultOrdering = "-uploaded_date"

var orderingFields = map[string]core.Comparator[Material]{
	"id":            func(a, b Material) int { return core.CompareStrings(a.ID, b.ID) },
	"title":         func(a, b Material) int { return core.CompareStrings(a.Title, b.Title) },
	"type":          func(a, b Material) int { return core.CompareStrings(a.Type, b.Type) },
	"uploaded_date": func(a, b Material) int { return core.CompareStrings(a.UploadedDate, b.UploadedDate) },
}
