package finance

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

var (
	// errors
	ErrUnknownStudent = errors.New("student not found")
)

type (
	StudentReader interface {
		GetStudent(id string) (user.User, error)
	}

	Service struct {
		reg      *registry.Registry[Record]
		students StudentReader
		validate *validator.Validate
	}
)

// NewRegistry returns an empty finance registry generating F001, F002... ids.
func NewRegistry() *registry.Registry[Record] {
	return registry.New(sequence)
}

func NewService(reg *registry.Registry[Record], students StudentReader, validate *validator.Validate) *Service {
	return &Service{reg: reg, students: students, validate: validate}
}

func (svc *Service) Registry() *registry.Registry[Record] { return svc.reg }

func (svc *Service) checkStudent(id string) error {
	if id == "" {
		return nil
	}
	if _, err := svc.students.GetStudent(id); err != nil {
		if err == registry.ErrNotFound {
			return core.NewFieldError("student_id", ErrUnknownStudent.Error())
		}
		return err
	}
	return nil
}

func (svc *Service) Create(nr NewRecord) (Record, error) {
	nr.Clean()
	if err := svc.validate.Struct(nr); err != nil {
		return Record{}, err
	}
	if err := svc.checkStudent(nr.StudentID); err != nil {
		return Record{}, err
	}

	rec, err := svc.reg.Create(Record{
		ID:        nr.ID,
		Name:      nr.Name,
		StudentID: nr.StudentID,
		Type:      nr.Type,
		Amount:    nr.Amount,
		Status:    nr.Status,
		DueDate:   nr.DueDate,
		Color:     statusColors[nr.Status],
	})
	if errors.Cause(err) == registry.ErrDuplicateID {
		return Record{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	}
	return rec, err
}

func (svc *Service) List(filter QueryFilter) []Record {
	filter.Clean()
	recs := filter.Projection().Apply(svc.reg.ReadAll())
	core.SortBy(recs, core.ParseOrderings(filter.Ordering), orderingFields)
	return recs
}

func (svc *Service) View(filter QueryFilter) *registry.View[Record] {
	filter.Clean()
	return registry.NewView(svc.reg, filter.Projection())
}

func (svc *Service) GetByID(id string) (Record, error) {
	return svc.reg.Read(core.CleanString(id))
}

func (svc *Service) Update(id string, ur UpdateRecord) (Record, error) {
	rec, err := svc.GetByID(id)
	if err != nil {
		return Record{}, err
	}

	ur.Clean(rec)
	if err := svc.validate.Struct(ur); err != nil {
		return Record{}, err
	}

	rec.Name = ur.Name
	rec.Type = ur.Type
	rec.Amount = ur.Amount
	rec.Status = ur.Status
	rec.DueDate = ur.DueDate
	rec.Color = statusColors[ur.Status]
	if ur.Revision != 0 {
		rec.Revision = ur.Revision
	}
	return svc.reg.Update(rec.ID, rec)
}

// Delete removes the record. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	rec, err := svc.GetByID(id)
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

func (svc *Service) Summary() Summary {
	sum := Summary{Count: make(map[string]int, len(AllStatuses))}
	for _, sts := range AllStatuses {
		sum.Count[sts] = 0
	}
	for _, rec := range svc.reg.ReadAll() {
		sum.Count[rec.Status]++
		switch {
		case rec.Status == StatusOverdue:
			sum.OverdueAmount += rec.Amount
			sum.OutstandingAmount += rec.Amount
		case rec.IsOutstanding():
			sum.OutstandingAmount += rec.Amount
		default:
			sum.PaidAmount += rec.Amount
		}
	}
	return sum
}
