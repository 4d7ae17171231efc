package finance

import (
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Types
const (
	TypeDebt    = "Debt"
	TypeTuition = "Tuition"
)

// Statuses
const (
	StatusOverdue = "Overdue"
	StatusDueSoon = "DueSoon"
	StatusPaid    = "Paid"
)

var (
	AllTypes    = []string{TypeDebt, TypeTuition}
	AllStatuses = []string{StatusOverdue, StatusDueSoon, StatusPaid}

	statusColors = map[string]string{
		StatusOverdue: "#dc3545",
		StatusDueSoon: "#ffc107",
		StatusPaid:    "#28a745",
	}

	sequence = registry.StaticSequence[Record]("F", 3)
)

// Record is a tuition fee or a debt owed by a payer.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"student_id,omitempty"`
	Type      string `json:"type"`
	Amount    int    `json:"amount"` // VND
	Status    string `json:"status"`
	DueDate   string `json:"due_date"` // YYYY-MM-DD
	Color     string `json:"color"`
	Revision  int    `json:"revision"`
}

func (r Record) RecordID() string                  { return r.ID }
func (r Record) WithRecordID(id string) Record     { r.ID = id; return r }
func (r Record) RecordRevision() int               { return r.Revision }
func (r Record) WithRecordRevision(rev int) Record { r.Revision = rev; return r }

func (r Record) IsOutstanding() bool { return r.Status != StatusPaid }

type NewRecord struct {
	ID        string `json:"id" validate:"omitempty,alphanum"`
	Name      string `json:"name" validate:"notblank"`
	StudentID string `json:"student_id"`
	Type      string `json:"type" validate:"required,financetype"`
	Amount    int    `json:"amount" validate:"gt=0"`
	Status    string `json:"status" validate:"omitempty,financestatus"`
	DueDate   string `json:"due_date" validate:"required,date"`
}

func (nr *NewRecord) Clean() {
	nr.ID = core.CleanString(nr.ID)
	nr.Name = core.CleanString(nr.Name)
	nr.StudentID = core.CleanString(nr.StudentID)
	nr.Type = core.CleanString(nr.Type)
	nr.Status = core.FirstNonEmpty(core.CleanString(nr.Status), StatusDueSoon)
	nr.DueDate = core.CleanString(nr.DueDate)
}

// UpdateRecord defines what may be modified on a Record. Zero fields keep their current value.
type UpdateRecord struct {
	Name     string `json:"name"`
	Type     string `json:"type" validate:"omitempty,financetype"`
	Amount   int    `json:"amount" validate:"gte=0"`
	Status   string `json:"status" validate:"omitempty,financestatus"`
	DueDate  string `json:"due_date" validate:"omitempty,date"`
	Revision int    `json:"revision"`
}

func (ur *UpdateRecord) Clean(orig Record) {
	ur.Name = core.FirstNonEmpty(core.CleanString(ur.Name), orig.Name)
	ur.Type = core.FirstNonEmpty(core.CleanString(ur.Type), orig.Type)
	ur.Status = core.FirstNonEmpty(core.CleanString(ur.Status), orig.Status)
	ur.DueDate = core.FirstNonEmpty(core.CleanString(ur.DueDate), orig.DueDate)
	if ur.Amount == 0 {
		ur.Amount = orig.Amount
	}
}

type QueryFilter struct {
	Search    string `query:"search"`
	Type      string `query:"type"`
	Status    string `query:"status"`
	StudentID string `query:"student_id"`
	Ordering  string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Type = core.CleanString(qf.Type)
	qf.Status = core.CleanString(qf.Status)
	qf.StudentID = core.CleanString(qf.StudentID)
}

// Projection searches on payer name and id and filters on type, status and student.
func (qf QueryFilter) Projection() registry.Projection[Record] {
	return registry.Projection[Record]{
		Search: qf.Search,
		SearchFields: []registry.Field[Record]{
			func(r Record) string { return r.Name },
			func(r Record) string { return r.ID },
		},
		Filters: []registry.Filter[Record]{
			{Name: "type", Value: qf.Type, Field: func(r Record) string { return r.Type }},
			{Name: "status", Value: qf.Status, Field: func(r Record) string { return r.Status }},
			{Name: "student_id", Value: qf.StudentID, Field: func(r Record) string { return r.StudentID }},
		},
	}
}

var orderingFields = map[string]core.Comparator[Record]{
	"id":       func(a, b Record) int { return core.CompareStrings(a.ID, b.ID) },
	"name":     func(a, b Record) int { return core.CompareStrings(a.Name, b.Name) },
	"amount":   func(a, b Record) int { return core.CompareInts(a.Amount, b.Amount) },
	"due_date": func(a, b Record) int { return core.CompareStrings(a.DueDate, b.DueDate) },
	"status":   func(a, b Record) int { return core.CompareStrings(a.Status, b.Status) },
}

// Summary aggregates the finance records for the dashboard.
type Summary struct {
	Count             map[string]int `json:"count"` // per status
	OverdueAmount     int            `json:"overdue_amount"`
	OutstandingAmount int            `json:"outstanding_amount"`
	PaidAmount        int            `json:"paid_amount"`
}
