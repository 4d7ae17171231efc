package assignment

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

var (
	// errors
	ErrUnknownClass   = errors.New("class not found")
	ErrUnknownStudent = errors.New("student not found")
	ErrScoreTooHigh   = errors.New("score must not exceed max_score")
)

type (
	ClassReader interface {
		GetByID(id string) (class.Detail, error)
		ByTeacher(teacherID string, filter class.QueryFilter) ([]class.Detail, error)
	}

	StudentReader interface {
		GetStudent(id string) (user.User, error)
	}

	Service struct {
		reg      *registry.Registry[Assignment]
		classes  ClassReader
		students StudentReader
		validate *validator.Validate
	}

	// StudentGrade is the score of a student on one assignment.
	StudentGrade struct {
		AssignmentID string  `json:"assignment_id"`
		Title        string  `json:"title"`
		Class        string  `json:"class"`
		Score        float64 `json:"score"`
		MaxScore     float64 `json:"max_score"`
		Passed       bool    `json:"passed"`
	}
)

// NewRegistry returns an empty assignment registry generating A001, A002... ids.
func NewRegistry() *registry.Registry[Assignment] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Assignment], classes ClassReader, students StudentReader, validate *validator.Validate) *Service {
	return &Service{
		reg:      reg,
		classes:  classes,
		students: students,
		validate: validate,
	}
}

func (svc *Service) Registry() *registry.Registry[Assignment] { return svc.reg }

func (svc *Service) className(a Assignment) string {
	cls, err := svc.classes.GetByID(a.ClassID)
	if err != nil {
		return ""
	}
	return cls.Name
}

func (svc *Service) Detail(a Assignment) Detail {
	return Detail{Assignment: a, Class: svc.className(a), Results: a.Results()}
}

func (svc *Service) Details(asgs []Assignment) []Detail {
	dtls := make([]Detail, 0, len(asgs))
	for _, a := range asgs {
		dtls = append(dtls, svc.Detail(a))
	}
	return dtls
}

func (svc *Service) checkClass(classID string) error {
	_, err := svc.classes.GetByID(classID)
	if err == registry.ErrNotFound {
		return core.NewFieldError("class_id", ErrUnknownClass.Error())
	}
	return err
}

func (svc *Service) Create(na NewAssignment) (Detail, error) {
	na.Clean()
	if err := svc.validate.Struct(na); err != nil {
		return Detail{}, err
	}
	if err := svc.checkClass(na.ClassID); err != nil {
		return Detail{}, err
	}

	asg, err := svc.reg.Create(Assignment{
		ID:        na.ID,
		Title:     na.Title,
		ClassID:   na.ClassID,
		DueDate:   na.DueDate,
		MaxScore:  na.MaxScore,
		PassScore: na.PassScore,
		Status:    na.Status,
	})
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Detail{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	}
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(asg), nil
}

func (svc *Service) filter(filter QueryFilter) []Assignment {
	filter.Clean()
	asgs := filter.Projection(svc.className).Apply(svc.reg.ReadAll())
	core.SortBy(asgs, core.ParseOrderings(core.FirstNonEmpty(filter.Ordering, defaultOrdering)), orderingFields)
	return asgs
}

func (svc *Service) List(filter QueryFilter) []Detail {
	return svc.Details(svc.filter(filter))
}

// View returns a list view that also refreshes when a class is renamed.
func (svc *Service) View(filter QueryFilter) *registry.View[Assignment] {
	filter.Clean()
	v := registry.NewView(svc.reg, filter.Projection(svc.className))
	if n, ok := svc.classes.(registry.Notifier); ok {
		v.DependOn(n)
	}
	return v
}

func (svc *Service) GetByID(id string) (Detail, error) {
	asg, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(asg), nil
}

// ByTeacher returns the assignments of the classes taught by an existing teacher.
func (svc *Service) ByTeacher(teacherID string, filter QueryFilter) ([]Detail, error) {
	classes, err := svc.classes.ByTeacher(teacherID, class.QueryFilter{})
	if err != nil {
		return nil, err
	}
	taught := make(map[string]struct{}, len(classes))
	for _, cls := range classes {
		taught[cls.ID] = struct{}{}
	}

	dtls := make([]Detail, 0)
	for _, asg := range svc.filter(filter) {
		if _, ok := taught[asg.ClassID]; ok {
			dtls = append(dtls, svc.Detail(asg))
		}
	}
	return dtls, nil
}

func (svc *Service) Update(id string, ua UpdateAssignment) (Detail, error) {
	asg, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	ua.Clean(asg)
	if err := svc.validate.Struct(ua); err != nil {
		return Detail{}, err
	}
	if err := svc.checkClass(ua.ClassID); err != nil {
		return Detail{}, err
	}

	asg.Title = ua.Title
	asg.ClassID = ua.ClassID
	asg.DueDate = ua.DueDate
	asg.MaxScore = ua.MaxScore
	asg.PassScore = ua.PassScore
	asg.Status = ua.Status
	if ua.Revision != 0 {
		asg.Revision = ua.Revision
	}
	asg, err = svc.reg.Update(asg.ID, asg)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(asg), nil
}

// Grade records the score of a student and marks the assignment as Graded.
func (svc *Service) Grade(id string, ng NewGrade) (Detail, error) {
	asg, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	ng.StudentID = core.CleanString(ng.StudentID)
	if err := svc.validate.Struct(ng); err != nil {
		return Detail{}, err
	}
	if ng.Score > asg.MaxScore {
		return Detail{}, core.NewFieldError("score", ErrScoreTooHigh.Error())
	}
	if _, err := svc.students.GetStudent(ng.StudentID); err != nil {
		if err == registry.ErrNotFound {
			return Detail{}, core.NewFieldError("student_id", ErrUnknownStudent.Error())
		}
		return Detail{}, err
	}

	grades := make([]Grade, 0, len(asg.Grades)+1)
	for _, g := range asg.Grades {
		if g.StudentID != ng.StudentID {
			grades = append(grades, g)
		}
	}
	asg.Grades = append(grades, Grade{StudentID: ng.StudentID, Score: ng.Score})
	if asg.Status != StatusCompleted {
		asg.Status = StatusGraded
	}
	asg, err = svc.reg.Update(asg.ID, asg)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(asg), nil
}

// Grades returns the scores of an existing student, most recent due date first.
func (svc *Service) Grades(studentID string) ([]StudentGrade, error) {
	if _, err := svc.students.GetStudent(studentID); err != nil {
		return nil, err
	}
	grades := make([]StudentGrade, 0)
	for _, asg := range svc.filter(QueryFilter{Ordering: "-due_date"}) {
		for _, g := range asg.Grades {
			if g.StudentID != studentID {
				continue
			}
			grades = append(grades, StudentGrade{
				AssignmentID: asg.ID,
				Title:        asg.Title,
				Class:        svc.className(asg),
				Score:        g.Score,
				MaxScore:     asg.MaxScore,
				Passed:       g.Score >= asg.PassScore,
			})
		}
	}
	return grades, nil
}

// Delete removes the assignment and its grades. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	asg, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(asg.ID) {
		return registry.ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of assignments per status.
func (svc *Service) CountByStatus() map[string]int {
	counts := make(map[string]int, len(AllStatuses))
	for _, sts := range AllStatuses {
		counts[sts] = 0
	}
	for _, asg := range svc.reg.ReadAll() {
		counts[asg.Status]++
	}
	return counts
}
