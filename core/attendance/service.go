package attendance

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

var (
	// errors
	ErrUnknownClass     = errors.New("class not found")
	ErrUnknownStudent   = errors.New("student not found")
	ErrDuplicateStudent = errors.New("student listed twice")
)

type (
	ClassReader interface {
		GetByID(id string) (class.Detail, error)
	}

	StudentReader interface {
		GetStudent(id string) (user.User, error)
	}

	Service struct {
		reg      *registry.Registry[Record]
		classes  ClassReader
		students StudentReader
		validate *validator.Validate
	}
)

// NewRegistry returns an empty attendance registry generating D0001, D0002... ids.
func NewRegistry() *registry.Registry[Record] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Record], classes ClassReader, students StudentReader, validate *validator.Validate) *Service {
	return &Service{
		reg:      reg,
		classes:  classes,
		students: students,
		validate: validate,
	}
}

func (svc *Service) Registry() *registry.Registry[Record] { return svc.reg }

func (svc *Service) studentName(r Record) string {
	std, err := svc.students.GetStudent(r.StudentID)
	if err != nil {
		return ""
	}
	return std.Name
}

func (svc *Service) Detail(r Record) Detail {
	dtl := Detail{Record: r, Student: svc.studentName(r)}
	if cls, err := svc.classes.GetByID(r.ClassID); err == nil {
		dtl.Class = cls.Name
	}
	return dtl
}

func (svc *Service) Details(recs []Record) []Detail {
	dtls := make([]Detail, 0, len(recs))
	for _, r := range recs {
		dtls = append(dtls, svc.Detail(r))
	}
	return dtls
}

func (svc *Service) checkRollCall(rc RollCall) error {
	var flds []core.FieldError
	if _, err := svc.classes.GetByID(rc.ClassID); err != nil {
		if err != registry.ErrNotFound {
			return err
		}
		flds = append(flds, core.FieldError{Field: "class_id", Error: ErrUnknownClass.Error()})
	}

	seen := make(map[string]struct{}, len(rc.Entries))
	for i, e := range rc.Entries {
		field := fmt.Sprintf("entries[%d].student_id", i)
		if _, ok := seen[e.StudentID]; ok {
			flds = append(flds, core.FieldError{Field: field, Error: ErrDuplicateStudent.Error()})
			continue
		}
		seen[e.StudentID] = struct{}{}

		if _, err := svc.students.GetStudent(e.StudentID); err != nil {
			if err != registry.ErrNotFound {
				return err
			}
			flds = append(flds, core.FieldError{Field: field, Error: ErrUnknownStudent.Error()})
		}
	}

	if len(flds) > 0 {
		return core.NewValidationError(errors.New("invalid roll call"), flds...)
	}
	return nil
}

// Take saves a roll call and returns its records in the order of the entries.
// Nothing is saved when an entry is invalid.
func (svc *Service) Take(rc RollCall) ([]Detail, error) {
	rc.Clean()
	if err := svc.validate.Struct(rc); err != nil {
		return nil, err
	}
	if err := svc.checkRollCall(rc); err != nil {
		return nil, err
	}

	session := Record{ClassID: rc.ClassID, Date: rc.Date}.session()
	existing := make(map[string]Record)
	for _, r := range svc.reg.ReadAll() {
		if r.session() == session {
			existing[r.StudentID] = r
		}
	}

	saved := make([]Record, 0, len(rc.Entries))
	for _, e := range rc.Entries {
		var (
			rec Record
			err error
		)
		if prev, ok := existing[e.StudentID]; ok {
			prev.Status = e.Status
			prev.Revision = 0 // the roll call wins
			rec, err = svc.reg.Update(prev.ID, prev)
		} else {
			rec, err = svc.reg.Create(Record{ClassID: rc.ClassID, StudentID: e.StudentID, Date: rc.Date, Status: e.Status})
		}
		if err != nil {
			return nil, errors.Wrapf(err, "saving attendance of %s", e.StudentID)
		}
		saved = append(saved, rec)
	}
	return svc.Details(saved), nil
}

func (svc *Service) filter(filter QueryFilter) []Record {
	filter.Clean()
	recs := filter.Projection(svc.studentName).Apply(svc.reg.ReadAll())
	core.SortBy(recs, core.ParseOrderings(filter.Ordering), orderingFields)
	return recs
}

func (svc *Service) List(filter QueryFilter) []Detail {
	return svc.Details(svc.filter(filter))
}

// View returns a list view that also refreshes when a student is renamed.
func (svc *Service) View(filter QueryFilter) *registry.View[Record] {
	filter.Clean()
	v := registry.NewView(svc.reg, filter.Projection(svc.studentName))
	if n, ok := svc.students.(registry.Notifier); ok {
		v.DependOn(n)
	}
	return v
}

// Summarize counts the matching records per status.
func (svc *Service) Summarize(filter QueryFilter) Summary {
	var sum Summary
	for _, r := range svc.filter(filter) {
		sum.add(r.Status)
	}
	return sum
}

func (svc *Service) GetByID(id string) (Detail, error) {
	rec, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(rec), nil
}

// ByStudent returns the attendance of a student, latest session first.
func (svc *Service) ByStudent(studentID string, filter QueryFilter) []Detail {
	filter.StudentID = studentID
	filter.Ordering = core.FirstNonEmpty(filter.Ordering, "-date")
	return svc.List(filter)
}

func (svc *Service) Update(id string, ur UpdateRecord) (Detail, error) {
	rec, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return Detail{}, err
	}

	ur.Status = core.CleanString(ur.Status)
	if err := svc.validate.Struct(ur); err != nil {
		return Detail{}, err
	}

	rec.Status = ur.Status
	if ur.Revision != 0 {
		rec.Revision = ur.Revision
	}
	rec, err = svc.reg.Update(rec.ID, rec)
	if err != nil {
		return Detail{}, err
	}
	return svc.Detail(rec), nil
}

// Delete removes the record. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	rec, err := svc.reg.Read(core.CleanString(id))
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(rec.ID) {
		return registry.ErrNotFound
	}
	return nil
}
