package certificate

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
	ErrUnknownStudent = errors.New("student not found")
	ErrNotReady       = errors.New("only a ready certificate can be issued")
)

type (
	CourseReader interface {
		GetByID(id string) (course.Course, error)
	}

	StudentReader interface {
		GetStudent(id string) (user.User, error)
	}

	Service struct {
		reg      *registry.Registry[Certificate]
		courses  CourseReader
		students StudentReader
		validate *validator.Validate
		nowFunc  func() time.Time // mockable
	}
)

// NewRegistry returns an empty certificate registry generating C001, C002... ids.
func NewRegistry() *registry.Registry[Certificate] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Certificate], courses CourseReader, students StudentReader, validate *validator.Validate) *Service {
	return &Service{
		reg:      reg,
		courses:  courses,
		students: students,
		validate: validate,
		nowFunc:  time.Now,
	}
}

func (svc *Service) Registry() *registry.Registry[Certificate] { return svc.reg }

func (svc *Service) courseName(c Certificate) string {
	crs, err := svc.courses.GetByID(c.CourseID)
	if err != nil {
		return ""
	}
	return crs.Name
}

func (svc *Service) Detail(c Certificate) Detail {
	return Detail{Certificate: c, Course: svc.courseName(c)}
}

func (svc *Service) Details(certs []Certificate) []Detail {
	dtls := make([]Detail, 0, len(certs))
	for _, c := range certs {
		dtls = append(dtls, svc.Detail(c))
	}
	return dtls
}

// checkReferences verifies the course, and the student when one is linked.
// It returns the linked student's name.
func (svc *Service) checkReferences(courseID, studentID string) (string, error) {
	var (
		flds        []core.FieldError
		studentName string
	)
	if _, err := svc.courses.GetByID(courseID); err != nil {
		if err != registry.ErrNotFound {
			return "", err
		}
		flds = append(flds, core.FieldError{Field: "course_id", Error: ErrUnknownCourse.Error()})
	}
	if studentID != "" {
		std, err := svc.students.GetStudent(studentID)
		switch {
		case err == registry.ErrNotFound:
			flds = append(flds, core.FieldError{Field: "student_id", Error: ErrUnknownStudent.Error()})
		case err != nil:
			return "", err
		default:
			studentName = std.Name
		}
	}
	if len(flds) > 0 {
		return "", core.NewValidationError(errors.New("invalid references"), flds...)
	}
	return studentName, nil
}

// Create adds a certificate. A linked student names the certificate when no name is given.
func (svc *Service) Create(nc NewCertificate) (Detail, error) {
	nc.Clean()
	if err := svc.validate.Struct(nc); err != nil {
		return Detail{}, err
	}
	studentName, err := svc.checkReferences(nc.CourseID, nc.StudentID)
	if err != nil {
		return Detail{}, err
	}

	cert, err := svc.reg.Create(Certificate{
		ID:          nc.ID,
		StudentID:   nc.StudentID,
		StudentName: core.FirstNonEmpty(nc.StudentName, studentName),
		CourseID:    nc.CourseID,
		Grade:       nc.Grade,
		Status:      nc.Status,
		IssueDate:   nc.IssueDate,
		Code:        nc.Code,
	})
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Detail{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	}
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cert), nil
}

func (svc *Service) List(filter QueryFilter) []Detail {
	filter.Clean()
	certs := filter.Projection(svc.courseName).Apply(svc.reg.ReadAll())
	core.SortBy(certs, core.ParseOrderings(filter.Ordering), orderingFields)
	return svc.Details(certs)
}

// View returns a list view that also refreshes when a course is renamed.
func (svc *Service) View(filter QueryFilter) *registry.View[Certificate] {
	filter.Clean()
	v := registry.NewView(svc.reg, filter.Projection(svc.courseName))
	if n, ok := svc.courses.(registry.Notifier); ok {
		v.DependOn(n)
	}
	return v
}

func (svc *Service) GetByID(id string) (Detail, error) {
	cert, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cert), nil
}

// ByStudent returns the certificates linked to a student.
func (svc *Service) ByStudent(studentID string, filter QueryFilter) []Detail {
	filter.StudentID = studentID
	return svc.List(filter)
}

func (svc *Service) Update(id string, uc UpdateCertificate) (Detail, error) {
	cert, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	uc.Clean(cert)
	if err := svc.validate.Struct(uc); err != nil {
		return Detail{}, err
	}
	if _, err := svc.checkReferences(uc.CourseID, ""); err != nil {
		return Detail{}, err
	}

	cert.StudentName = uc.StudentName
	cert.CourseID = uc.CourseID
	cert.Grade = uc.Grade
	cert.Status = uc.Status
	cert.IssueDate = uc.IssueDate
	cert.Code = uc.Code
	if uc.Revision != 0 {
		cert.Revision = uc.Revision
	}
	cert, err = svc.reg.Update(cert.ID, cert)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cert), nil
}

// Issue marks a Ready certificate as Issued.
func (svc *Service) Issue(id string, ic IssueCertificate) (Detail, error) {
	cert, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	if cert.Status != StatusReady {
		return Detail{}, core.NewFieldError("status", ErrNotReady.Error())
	}

	ic.Date = core.CleanString(ic.Date)
	ic.Code = core.CleanString(ic.Code)
	if err := svc.validate.Struct(ic); err != nil {
		return Detail{}, err
	}

	cert.Status = StatusIssued
	cert.IssueDate = core.FirstNonEmpty(ic.Date, svc.nowFunc().UTC().Format(core.DateLayout))
	cert.Code = core.FirstNonEmpty(ic.Code, "TDD-"+cert.ID)
	cert, err = svc.reg.Update(cert.ID, cert)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(cert), nil
}

// Delete removes the certificate. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	cert, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(cert.ID) {
		return registry.ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of certificates per status.
func (svc *Service) CountByStatus() map[string]int {
	counts := make(map[string]int, len(AllStatuses))
	for _, sts := range AllStatuses {
		counts[sts] = 0
	}
	for _, cert := range svc.reg.ReadAll() {
		counts[cert.Status]++
	}
	return counts
}
