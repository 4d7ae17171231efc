package class

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

var (
	// errors
	ErrUnknownCourse  = errors.New("course not found")
	ErrUnknownTeacher = errors.New("teacher not found")
)

type (
	CourseReader interface {
		GetByID(id string) (course.Course, error)
	}

	TeacherReader interface {
		GetTeacher(id string) (user.User, error)
	}

	Service struct {
		reg      *registry.Registry[Class]
		courses  CourseReader
		teachers TeacherReader
		validate *validator.Validate
	}
)

// NewRegistry returns an empty class registry generating L001, L002... ids.
func NewRegistry() *registry.Registry[Class] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Class], courses CourseReader, teachers TeacherReader, validate *validator.Validate) *Service {
	return &Service{
		reg:      reg,
		courses:  courses,
		teachers: teachers,
		validate: validate,
	}
}

func (svc *Service) Registry() *registry.Registry[Class] { return svc.reg }

// Notify calls fn after every change of the classes.
func (svc *Service) Notify(fn func()) (cancel func()) { return svc.reg.Notify(fn) }

// checkReferences verifies that the course exists and that the teacher is a Teacher.
func (svc *Service) checkReferences(courseID, teacherID string) error {
	var flds []core.FieldError
	if _, err := svc.courses.GetByID(courseID); err != nil {
		if err != registry.ErrNotFound {
			return err
		}
		flds = append(flds, core.FieldError{Field: "course_id", Error: ErrUnknownCourse.Error()})
	}
	if _, err := svc.teachers.GetTeacher(teacherID); err != nil {
		if err != registry.ErrNotFound {
			return err
		}
		flds = append(flds, core.FieldError{Field: "teacher_id", Error: ErrUnknownTeacher.Error()})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (svc *Service) teacherName(c Class) string {
	if t, err := svc.teachers.GetTeacher(c.TeacherID); err == nil {
		return t.Name
	}
	return ""
}

// Detail resolves the class references.
func (svc *Service) Detail(c Class) Detail {
	dtl := Detail{Class: c, Teacher: svc.teacherName(c)}
	if crs, err := svc.courses.GetByID(c.CourseID); err == nil {
		dtl.Course = crs.Name
	}
	return dtl
}

func (svc *Service) Details(classes []Class) []Detail {
	dtls := make([]Detail, 0, len(classes))
	for _, c := range classes {
		dtls = append(dtls, svc.Detail(c))
	}
	return dtls
}

func (svc *Service) Create(nc NewClass) (Detail, error) {
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return Detail{}, err
	}
	if err := svc.checkReferences(nc.CourseID, nc.TeacherID); err != nil {
		return Detail{}, err
	}

	cls, err := svc.reg.Create(Class{
		ID:          nc.ID,
		Name:        nc.Name,
		CourseID:    nc.CourseID,
		TeacherID:   nc.TeacherID,
		Students:    nc.Students,
		Status:      nc.Status,
		Color:       nc.Color,
		Schedule:    nc.Schedule,
		Description: nc.Description,
		StartDate:   nc.StartDate,
		EndDate:     nc.EndDate,
	})
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Detail{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	} else if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cls), nil
}

func (svc *Service) filter(filter QueryFilter) []Class {
	filter.Clean()
	classes := filter.Projection(svc.teacherName).Apply(svc.reg.ReadAll())
	core.SortBy(classes, core.ParseOrderings(filter.Ordering), orderingFields)
	return classes
}

func (svc *Service) List(filter QueryFilter) []Detail {
	return svc.Details(svc.filter(filter))
}

func (svc *Service) View(filter QueryFilter) *registry.View[Class] {
	filter.Clean()
	v := registry.NewView(svc.reg, filter.Projection(svc.teacherName))
	// details show the course and teacher names
	for _, ref := range []interface{}{svc.courses, svc.teachers} {
		if n, ok := ref.(registry.Notifier); ok {
			v.DependOn(n)
		}
	}
	return v
}

func (svc *Service) GetByID(id string) (Detail, error) {
	cls, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cls), nil
}

// ByTeacher returns the classes taught by an existing teacher.
func (svc *Service) ByTeacher(teacherID string, filter QueryFilter) ([]Detail, error) {
	if _, err := svc.teachers.GetTeacher(teacherID); err != nil {
		return nil, err
	}
	filter.TeacherID = teacherID
	return svc.List(filter), nil
}

func (svc *Service) Update(id string, uc UpdateClass) (Detail, error) {
	cls, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	uc.Clean(cls)
	if err := svc.validate.Struct(uc); err != nil {
		return Detail{}, err
	}
	if err := svc.checkReferences(uc.CourseID, uc.TeacherID); err != nil {
		return Detail{}, err
	}

	cls.Name = uc.Name
	cls.CourseID = uc.CourseID
	cls.TeacherID = uc.TeacherID
	cls.Students = uc.Students
	cls.Status = uc.Status
	cls.Color = uc.Color
	cls.Schedule = uc.Schedule
	cls.StartDate = uc.StartDate
	cls.EndDate = uc.EndDate
	if uc.Description != nil {
		cls.Description = *uc.Description
	}
	if uc.Revision != 0 {
		cls.Revision = uc.Revision
	}

	cls, err = svc.reg.Update(cls.ID, cls)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cls), nil
}

// Delete removes the class. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	cls, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(cls.ID) {
		return registry.ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of classes and the number of students per status.
func (svc *Service) CountByStatus() (classes, students map[string]int) {
	classes = make(map[string]int, len(AllStatuses))
	students = make(map[string]int, len(AllStatuses))
	for _, sts := range AllStatuses {
		classes[sts] = 0
		students[sts] = 0
	}
	for _, cls := range svc.reg.ReadAll() {
		classes[cls.Status]++
		students[cls.Status] += cls.Students
	}
	return classes, students
}
