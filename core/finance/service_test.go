package finance

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)

	userReg := user.NewRegistry()
	require.NoError(t, user.Seed(userReg, time.Now()))
	reg := NewRegistry()
	require.NoError(t, Seed(reg))
	return NewService(reg, user.NewService(userReg, validate, nil), validate)
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)

	fldErrs := make(map[string]string)
	switch e := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		for _, fe := range e {
			fldErrs[fe.Field()] = fe.Tag()
		}
	case *core.ValidationError:
		for _, fe := range e.Fields {
			fldErrs[fe.Field] = fe.Error
		}
	default:
		t.Fatalf("not a validation error: %v", err)
	}
	return fldErrs
}

func ids(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		nr         NewRecord
		want       Record
		wantFields map[string]string
	}{
		{
			name: "due soon by default",
			nr:   NewRecord{Name: "Học viên 0001 TestName", StudentID: "HV0001", Type: TypeTuition, Amount: 8900000, DueDate: "2025-11-30"},
			want: Record{ID: "F014", Name: "Học viên 0001 TestName", StudentID: "HV0001", Type: TypeTuition, Amount: 8900000,
				Status: StatusDueSoon, DueDate: "2025-11-30", Color: "#ffc107", Revision: 1},
		},
		{
			name: "paid",
			nr:   NewRecord{Name: "Khách lẻ", Type: TypeDebt, Amount: 100000, Status: StatusPaid, DueDate: "2025-10-01"},
			want: Record{ID: "F014", Name: "Khách lẻ", Type: TypeDebt, Amount: 100000, Status: StatusPaid, DueDate: "2025-10-01", Color: "#28a745", Revision: 1},
		},
		{
			name:       "missing fields",
			nr:         NewRecord{},
			wantFields: map[string]string{"name": "notblank", "type": "required", "amount": "gt", "due_date": "required"},
		},
		{
			name:       "invalid values",
			nr:         NewRecord{Name: "x", Type: "Loan", Amount: 1, Status: "Late", DueDate: "28/10/2025"},
			wantFields: map[string]string{"type": "financetype", "status": "financestatus", "due_date": "date"},
		},
		{
			name:       "not a student",
			nr:         NewRecord{Name: "x", StudentID: "GV0001", Type: TypeDebt, Amount: 1, DueDate: "2025-10-01"},
			wantFields: map[string]string{"student_id": ErrUnknownStudent.Error()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)

			got, err := svc.Create(tt.nr)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, fieldErrors(t, err))
				assert.Equal(t, 12, svc.Registry().Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_List(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{name: "overdue debts", filter: QueryFilter{Type: TypeDebt, Status: StatusOverdue}, want: []string{"F001", "F004", "F008", "F010"}},
		{name: "search payer", filter: QueryFilter{Search: "trần"}, want: []string{"F002", "F011"}},
		{name: "search id", filter: QueryFilter{Search: "f01"}, want: []string{"F010", "F011", "F012", "F013"}},
		{name: "earliest due first", filter: QueryFilter{Status: StatusPaid, Ordering: "due_date"}, want: []string{"F007", "F011", "F005"}},
		{name: "largest amount first", filter: QueryFilter{Type: TypeTuition, Ordering: "-amount"}, want: []string{"F005", "F009", "F007", "F011", "F013", "F002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(svc.List(tt.filter)))
		})
	}
}

func TestService_Update(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.Update("F001", UpdateRecord{Status: StatusPaid})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, rec.Status)
	assert.Equal(t, "#28a745", rec.Color)
	assert.Equal(t, 3500000, rec.Amount)
	assert.Equal(t, "F001", rec.ID)

	_, err = svc.Update("F001", UpdateRecord{Amount: -1})
	assert.Equal(t, map[string]string{"amount": "gte"}, fieldErrors(t, err))

	_, err = svc.Update("F003", UpdateRecord{Status: StatusPaid})
	assert.Equal(t, registry.ErrNotFound, err)

	_, err = svc.Update("F001", UpdateRecord{Status: StatusOverdue, Revision: 1})
	assert.Equal(t, registry.ErrConflict, errors.Cause(err))
}

func TestService_Delete(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, core.ErrConfirmationRequired, svc.Delete("F002", false))
	require.NoError(t, svc.Delete("F002", true))
	_, err := svc.GetByID("F002")
	assert.Equal(t, registry.ErrNotFound, err)
}

func TestService_Summary(t *testing.T) {
	svc := newTestService(t)

	assert.Equal(t, Summary{
		Count:             map[string]int{StatusOverdue: 5, StatusDueSoon: 4, StatusPaid: 3},
		OverdueAmount:     3500000 + 1200000 + 5000000 + 800000 + 1800000,
		OutstandingAmount: 3500000 + 1200000 + 5000000 + 800000 + 1800000 + 1500000 + 900000 + 3000000 + 4200000,
		PaidAmount:        4800000 + 2500000 + 2000000,
	}, svc.Summary())
}
