package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

var (
	// errors
	ErrCourseLocked = errors.New("a public course cannot be edited")
)

type Service struct {
	reg      *registry.Registry[Course]
	validate *validator.Validate
}

// NewRegistry returns an empty course registry generating C001, C002... ids.
func NewRegistry() *registry.Registry[Course] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Course], validate *validator.Validate) *Service {
	return &Service{reg: reg, validate: validate}
}

func (svc *Service) Registry() *registry.Registry[Course] { return svc.reg }

// Notify calls fn after every change of the courses.
func (svc *Service) Notify(fn func()) (cancel func()) { return svc.reg.Notify(fn) }

func (svc *Service) Create(nc NewCourse) (Course, error) {
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return Course{}, err
	}

	crs := Course{
		ID:          nc.ID,
		Name:        nc.Name,
		Level:       nc.Level,
		ModuleCount: nc.ModuleCount,
		Price:       nc.Price,
		Status:      StatusDraft,
		Color:       core.FirstNonEmpty(nc.Color, statusColors[StatusDraft]),
		Description: nc.Description,
	}
	crs, err := svc.reg.Create(crs)
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Course{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	}
	return crs, err
}

func (svc *Service) List(filter QueryFilter) []Course {
	filter.Clean()
	courses := filter.Projection().Apply(svc.reg.ReadAll())
	core.SortBy(courses, core.ParseOrderings(filter.Ordering), orderingFields)
	return courses
}

func (svc *Service) View(filter QueryFilter) *registry.View[Course] {
	filter.Clean()
	return registry.NewView(svc.reg, filter.Projection())
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.reg.Read(core.CleanString(id))
}

// Update loads the course, refuses it when it is public, then saves the whole record.
func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	crs, err := svc.GetByID(id)
	if err != nil {
		return Course{}, err
	}
	if crs.IsLocked() {
		return Course{}, core.NewFieldError("status", ErrCourseLocked.Error())
	}

	uc.Clean(crs)
	if err := svc.validate.Struct(uc); err != nil {
		return Course{}, err
	}

	crs.Name = uc.Name
	crs.Level = uc.Level
	crs.ModuleCount = uc.ModuleCount
	crs.Price = uc.Price
	crs.Status = uc.Status
	crs.Color = uc.Color
	if uc.Description != nil {
		crs.Description = *uc.Description
	}
	if uc.Revision != 0 {
		crs.Revision = uc.Revision
	}
	return svc.reg.Update(crs.ID, crs)
}

// Delete removes the course. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	crs, err := svc.GetByID(id)
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(crs.ID) {
		return registry.ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of courses per status.
func (svc *Service) CountByStatus() map[string]int {
	counts := make(map[string]int, len(AllStatuses))
	for _, sts := range AllStatuses {
		counts[sts] = 0
	}
	for _, crs := range svc.reg.ReadAll() {
		counts[crs.Status]++
	}
	return counts
}
