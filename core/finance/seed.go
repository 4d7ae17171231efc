package finance

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/registry"
)

func SeedRecords() []Record {
	recs := []Record{
		{ID: "F001", Name: "Nguyễn Văn A", Type: TypeDebt, Amount: 3500000, Status: StatusOverdue, DueDate: "2025-10-01"},
		{ID: "F002", Name: "Trần Thị B", Type: TypeTuition, Amount: 1500000, Status: StatusDueSoon, DueDate: "2025-10-28"},
		{ID: "F004", Name: "Phạm Văn C", Type: TypeDebt, Amount: 1200000, Status: StatusOverdue, DueDate: "2025-10-05"},
		{ID: "F005", Name: "Lê Thị D", Type: TypeTuition, Amount: 4800000, Status: StatusPaid, DueDate: "2025-10-10"},
		{ID: "F006", Name: "Võ Minh E", Type: TypeDebt, Amount: 900000, Status: StatusDueSoon, DueDate: "2025-11-01"},
		{ID: "F007", Name: "Hoàng Thị F", Type: TypeTuition, Amount: 2500000, Status: StatusPaid, DueDate: "2025-09-15"},
		{ID: "F008", Name: "Đặng Văn G", Type: TypeDebt, Amount: 5000000, Status: StatusOverdue, DueDate: "2025-09-20"},
		{ID: "F009", Name: "Mai Thị H", Type: TypeTuition, Amount: 3000000, Status: StatusDueSoon, DueDate: "2025-11-05"},
		{ID: "F010", Name: "Bùi Đức I", Type: TypeDebt, Amount: 800000, Status: StatusOverdue, DueDate: "2025-10-10"},
		{ID: "F011", Name: "Trần Mỹ K", Type: TypeTuition, Amount: 2000000, Status: StatusPaid, DueDate: "2025-10-01"},
		{ID: "F012", Name: "Lý Văn L", Type: TypeDebt, Amount: 4200000, Status: StatusDueSoon, DueDate: "2025-11-15"},
		{ID: "F013", Name: "Phan Thị M", Type: TypeTuition, Amount: 1800000, Status: StatusOverdue, DueDate: "2025-09-25"},
	}
	for i := range recs {
		recs[i].Color = statusColors[recs[i].Status]
	}
	return recs
}

func Seed(reg *registry.Registry[Record]) error {
	for _, rec := range SeedRecords() {
		if _, err := reg.Create(rec); err != nil {
			return errors.Wrapf(err, "seeding finance record %s", rec.ID)
		}
	}
	return nil
}
