package schedule

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
	ErrUnknownTeacher = errors.New("teacher not found")
)

type (
	ClassReader interface {
		GetByID(id string) (class.Detail, error)
	}

	TeacherReader interface {
		GetTeacher(id string) (user.User, error)
	}

	Service struct {
		reg      *registry.Registry[Event]
		classes  ClassReader
		teachers TeacherReader
		validate *validator.Validate
	}
)

// NewRegistry returns an empty schedule registry generating S001, S002... ids.
func NewRegistry() *registry.Registry[Event] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Event], classes ClassReader, teachers TeacherReader, validate *validator.Validate) *Service {
	return &Service{
		reg:      reg,
		classes:  classes,
		teachers: teachers,
		validate: validate,
	}
}

func (svc *Service) Registry() *registry.Registry[Event] { return svc.reg }

func (svc *Service) className(e Event) string {
	if cls, err := svc.classes.GetByID(e.ClassID); err == nil {
		return cls.Name
	}
	return ""
}

func (svc *Service) teacherName(e Event) string {
	if t, err := svc.teachers.GetTeacher(e.TeacherID); err == nil {
		return t.Name
	}
	return ""
}

func (svc *Service) Detail(e Event) Detail {
	return Detail{Event: e, Class: svc.className(e), Teacher: svc.teacherName(e)}
}

func (svc *Service) Details(events []Event) []Detail {
	dtls := make([]Detail, 0, len(events))
	for _, e := range events {
		dtls = append(dtls, svc.Detail(e))
	}
	return dtls
}

// resolveReferences checks the class and the teacher, defaulting the teacher to the class teacher.
func (svc *Service) resolveReferences(classID, teacherID string) (string, error) {
	cls, err := svc.classes.GetByID(classID)
	if err != nil {
		if err == registry.ErrNotFound {
			return "", core.NewFieldError("class_id", ErrUnknownClass.Error())
		}
		return "", err
	}
	if teacherID == "" {
		teacherID = cls.TeacherID
	}
	if _, err := svc.teachers.GetTeacher(teacherID); err != nil {
		if err == registry.ErrNotFound {
			return "", core.NewFieldError("teacher_id", ErrUnknownTeacher.Error())
		}
		return "", err
	}
	return teacherID, nil
}

func (svc *Service) Create(ne NewEvent) (Detail, error) {
	ne.Clean()
	if err := svc.validate.Struct(ne); err != nil {
		return Detail{}, err
	}
	teacherID, err := svc.resolveReferences(ne.ClassID, ne.TeacherID)
	if err != nil {
		return Detail{}, err
	}

	evt, err := svc.reg.Create(Event{
		ID:        ne.ID,
		Date:      ne.Date,
		StartTime: ne.StartTime,
		EndTime:   ne.EndTime,
		ClassID:   ne.ClassID,
		TeacherID: teacherID,
		Room:      ne.Room,
		Status:    ne.Status,
		Color:     ne.Color,
	})
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Detail{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	} else if err != nil {
		return Detail{}, err
	}
	return svc.Detail(evt), nil
}

// List returns the matching events, chronologically unless another ordering is given.
func (svc *Service) List(filter QueryFilter) []Detail {
	filter.Clean()
	events := filter.Projection(svc.className, svc.teacherName).Apply(svc.reg.ReadAll())
	core.SortBy(events, core.ParseOrderings(core.FirstNonEmpty(filter.Ordering, defaultOrdering)), orderingFields)
	return svc.Details(events)
}

func (svc *Service) View(filter QueryFilter) *registry.View[Event] {
	filter.Clean()
	v := registry.NewView(svc.reg, filter.Projection(svc.className, svc.teacherName))
	for _, ref := range []interface{}{svc.classes, svc.teachers} {
		if n, ok := ref.(registry.Notifier); ok {
			v.DependOn(n)
		}
	}
	return v
}

func (svc *Service) GetByID(id string) (Detail, error) {
	evt, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(evt), nil
}

// ByTeacher returns the schedule of an existing teacher, optionally on one date.
func (svc *Service) ByTeacher(teacherID, date string) ([]Detail, error) {
	if _, err := svc.teachers.GetTeacher(teacherID); err != nil {
		return nil, err
	}
	return svc.List(QueryFilter{TeacherID: teacherID, Date: date}), nil
}

func (svc *Service) Update(id string, ue UpdateEvent) (Detail, error) {
	evt, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	ue.Clean(evt)
	if err := svc.validate.Struct(ue); err != nil {
		return Detail{}, err
	}
	teacherID, err := svc.resolveReferences(ue.ClassID, ue.TeacherID)
	if err != nil {
		return Detail{}, err
	}

	evt.Date = ue.Date
	evt.StartTime = ue.StartTime
	evt.EndTime = ue.EndTime
	evt.ClassID = ue.ClassID
	evt.TeacherID = teacherID
	evt.Room = ue.Room
	evt.Status = ue.Status
	evt.Color = ue.Color
	if ue.Revision != 0 {
		evt.Revision = ue.Revision
	}

	evt, err = svc.reg.Update(evt.ID, evt)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(evt), nil
}

// Delete removes the event. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	evt, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(evt.ID) {
		return registry.ErrNotFound
	}
	return nil
}

func (svc *Service) CountByStatus() map[string]int {
	counts := make(map[string]int, len(AllStatuses))
	for _, sts := range AllStatuses {
		counts[sts] = 0
	}
	for _, evt := range svc.reg.ReadAll() {
		counts[evt.Status]++
	}
	return counts
}
