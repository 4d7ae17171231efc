package course

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Levels
const (
	LevelA1    = "A1"
	LevelA2    = "A2"
	LevelB1    = "B1"
	LevelB2    = "B2"
	LevelIELTS = "IELTS"
	LevelTOEIC = "TOEIC"
)

// Statuses
const (
	StatusPublic   = "Public"
	StatusDraft    = "Draft"
	StatusArchived = "Archived"
)

var (
	AllLevels   = []string{LevelA1, LevelA2, LevelB1, LevelB2, LevelIELTS, LevelTOEIC}
	AllStatuses = []string{StatusPublic, StatusDraft, StatusArchived}

	statusColors = map[string]string{
		StatusPublic:   "#28a745",
		StatusDraft:    "#ffc107",
		StatusArchived: "#6c757d",
	}

	sequence = registry.StaticSequence[Course]("C", 3)
)

type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	ModuleCount int    `json:"module_count"`
	Price       int    `json:"price"` // VND
	Status      string `json:"status"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	Revision    int    `json:"revision"`
}

func (c Course) RecordID() string                  { return c.ID }
func (c Course) WithRecordID(id string) Course     { c.ID = id; return c }
func (c Course) RecordRevision() int               { return c.Revision }
func (c Course) WithRecordRevision(rev int) Course { c.Revision = rev; return c }

// IsLocked reports whether the course can no longer be edited.
func (c Course) IsLocked() bool { return c.Status == StatusPublic }

// NewCourse contains information needed to create a new Course. New courses are drafts.
type NewCourse struct {
	ID          string `json:"id" validate:"omitempty,alphanum"`
	Name        string `json:"name" validate:"notblank"`
	Level       string `json:"level" validate:"required,courselevel"`
	ModuleCount int    `json:"module_count" validate:"gt=0"`
	Price       int    `json:"price" validate:"gt=0"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Description string `json:"description" validate:"max=2000"`
}

func (nc *NewCourse) Clean() {
	nc.ID = core.CleanString(nc.ID)
	nc.Name = core.CleanString(nc.Name)
	nc.Level = core.CleanString(nc.Level)
	nc.Color = core.CleanString(nc.Color, true /* lower */)
	nc.Description = core.CleanString(nc.Description)
}

// UpdateCourse defines what may be modified on a Course. Zero fields keep their current value.
type UpdateCourse struct {
	Name        string  `json:"name"`
	Level       string  `json:"level" validate:"omitempty,courselevel"`
	ModuleCount int     `json:"module_count" validate:"gte=0"`
	Price       int     `json:"price" validate:"gte=0"`
	Status      string  `json:"status" validate:"omitempty,coursestatus"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Revision    int     `json:"revision"`
}

func (uc *UpdateCourse) Clean(orig Course) {
	uc.Name = core.FirstNonEmpty(core.CleanString(uc.Name), orig.Name)
	uc.Level = core.FirstNonEmpty(core.CleanString(uc.Level), orig.Level)
	uc.Status = core.FirstNonEmpty(core.CleanString(uc.Status), orig.Status)
	uc.Color = core.FirstNonEmpty(core.CleanString(uc.Color, true /* lower */), orig.Color)
	if uc.ModuleCount == 0 {
		uc.ModuleCount = orig.ModuleCount
	}
	if uc.Price == 0 {
		uc.Price = orig.Price
	}
	if uc.Description != nil {
		desc := core.CleanString(*uc.Description)
		uc.Description = &desc
	}
}

type QueryFilter struct {
	Search   string `query:"search"`
	Level    string `query:"level"`
	Status   string `query:"status"`
	Ordering string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Level = core.CleanString(qf.Level)
	qf.Status = core.CleanString(qf.Status)
}

// Projection searches on name and id and filters on level and status.
func (qf QueryFilter) Projection() registry.Projection[Course] {
	return registry.Projection[Course]{
		Search: qf.Search,
		SearchFields: []registry.Field[Course]{
			func(c Course) string { return c.Name },
			func(c Course) string { return c.ID },
		},
		Filters: []registry.Filter[Course]{
			{Name: "level", Value: qf.Level, Field: func(c Course) string { return c.Level }},
			{Name: "status", Value: qf.Status, Field: func(c Course) string { return c.Status }},
		},
	}
}

var orderingFields = map[string]core.Comparator[Course]{
	"id":           func(a, b Course) int { return core.CompareStrings(a.ID, b.ID) },
	"name":         func(a, b Course) int { return core.CompareStrings(a.Name, b.Name) },
	"level":        func(a, b Course) int { return core.CompareStrings(a.Level, b.Level) },
	"status":       func(a, b Course) int { return core.CompareStrings(a.Status, b.Status) },
	"module_count": func(a, b Course) int { return core.CompareInts(a.ModuleCount, b.ModuleCount) },
	"price":        func(a, b Course) int { return core.CompareInts(a.Price, b.Price) },
}
