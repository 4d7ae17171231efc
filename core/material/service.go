package material

import (
	"time"

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
		reg      *registry.Registry[Material]
		courses  CourseReader
		teachers TeacherReader
		validate *validator.Validate
		nowFunc  func() time.Time // mockable
	}
)

// NewRegistry returns an empty material registry generating M001, M002... ids.
func NewRegistry() *registry.Registry[Material] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Material], courses CourseReader, teachers TeacherReader, validate *validator.Validate) *Service {
	return &Service{
		reg:      reg,
		courses:  courses,
		teachers: teachers,
		validate: validate,
		nowFunc:  time.Now,
	}
}

func (svc *Service) Registry() *registry.Registry[Material] { return svc.reg }

func (svc *Service) courseName(m Material) string {
	crs, err := svc.courses.GetByID(m.CourseID)
	if err != nil {
		return ""
	}
	return crs.Name
}

func (svc *Service) Detail(m Material) Detail {
	dtl := Detail{Material: m, Course: svc.courseName(m)}
	if teacher, err := svc.teachers.GetTeacher(m.TeacherID); err == nil {
		dtl.Teacher = teacher.Name
	}
	return dtl
}

func (svc *Service) Details(mats []Material) []Detail {
	dtls := make([]Detail, 0, len(mats))
	for _, m := range mats {
		dtls = append(dtls, svc.Detail(m))
	}
	return dtls
}

// checkReferences verifies the course, and the teacher when teacherID is set.
func (svc *Service) checkReferences(courseID, teacherID string) error {
	var flds []core.FieldError
	if _, err := svc.courses.GetByID(courseID); err != nil {
		if err != registry.ErrNotFound {
			return err
		}
		flds = append(flds, core.FieldError{Field: "course_id", Error: ErrUnknownCourse.Error()})
	}
	if teacherID != "" {
		if _, err := svc.teachers.GetTeacher(teacherID); err != nil {
			if err != registry.ErrNotFound {
				return err
			}
			flds = append(flds, core.FieldError{Field: "teacher_id", Error: ErrUnknownTeacher.Error()})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid references"), flds...)
	}
	return nil
}

func (svc *Service) Create(nm NewMaterial) (Detail, error) {
	nm.Clean()
	if err := svc.validate.Struct(nm); err != nil {
		return Detail{}, err
	}
	if err := svc.checkReferences(nm.CourseID, nm.TeacherID); err != nil {
		return Detail{}, err
	}

	mat, err := svc.reg.Create(Material{
		ID:           nm.ID,
		Title:        nm.Title,
		CourseID:     nm.CourseID,
		Type:         nm.Type,
		Size:         nm.Size,
		Description:  nm.Description,
		TeacherID:    nm.TeacherID,
		UploadedDate: core.FirstNonEmpty(nm.UploadedDate, svc.nowFunc().UTC().Format(core.DateLayout)),
	})
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Detail{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	}
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(mat), nil
}

func (svc *Service) List(filter QueryFilter) []Detail {
	filter.Clean()
	mats := filter.Projection(svc.courseName).Apply(svc.reg.ReadAll())
	core.SortBy(mats, core.ParseOrderings(core.FirstNonEmpty(filter.Ordering, defaultOrdering)), orderingFields)
	return svc.Details(mats)
}

// View returns a list view that also refreshes when a course is renamed.
func (svc *Service) View(filter QueryFilter) *registry.View[Material] {
	filter.Clean()
	v := registry.NewView(svc.reg, filter.Projection(svc.courseName))
	if n, ok := svc.courses.(registry.Notifier); ok {
		v.DependOn(n)
	}
	return v
}

func (svc *Service) GetByID(id string) (Detail, error) {
	mat, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(mat), nil
}

// ByTeacher returns the materials uploaded by an existing teacher.
func (svc *Service) ByTeacher(teacherID string, filter QueryFilter) ([]Detail, error) {
	if _, err := svc.teachers.GetTeacher(teacherID); err != nil {
		return nil, err
	}
	filter.TeacherID = teacherID
	return svc.List(filter), nil
}

func (svc *Service) Update(id string, um UpdateMaterial) (Detail, error) {
	mat, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	um.Clean(mat)
	if err := svc.validate.Struct(um); err != nil {
		return Detail{}, err
	}
	if err := svc.checkReferences(um.CourseID, ""); err != nil {
		return Detail{}, err
	}

	mat.Title = um.Title
	mat.CourseID = um.CourseID
	mat.Type = um.Type
	mat.Size = um.Size
	mat.Description = um.Description
	if um.Revision != 0 {
		mat.Revision = um.Revision
	}
	mat, err = svc.reg.Update(mat.ID, mat)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(mat), nil
}

// Delete removes the material. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	mat, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(mat.ID) {
		return registry.ErrNotFound
	}
	return nil
}

// CountByType returns the number of materials per type.
func (svc *Service) CountByType() map[string]int {
	counts := make(map[string]int, len(AllTypes))
	for _, typ := range AllTypes {
		counts[typ] = 0
	}
	for _, mat := range svc.reg.ReadAll() {
		counts[mat.Type]++
	}
	return counts
}
