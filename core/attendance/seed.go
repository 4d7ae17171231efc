package attendance

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/registry"
)

// SeedRecords returns the roll call of the 2025-10-24 session of class L001.
func SeedRecords() []Record {
	statuses := []string{
		StatusPresent, StatusPresent, StatusAbsent, StatusPresent, StatusLate, StatusAbsent,
		StatusAbsent, StatusPresent, StatusPresent, StatusAbsent, StatusPresent, StatusPresent,
	}
	recs := make([]Record, 0, len(statuses))
	for i, sts := range statuses {
		recs = append(recs, Record{
			ClassID:   class.EnglishA1,
			StudentID: fmt.Sprintf("HV%04d", i+1),
			Date:      "2025-10-24",
			Status:    sts,
		})
	}
	return recs
}

func Seed(reg *registry.Registry[Record]) error {
	for _, rec := range SeedRecords() {
		if _, err := reg.Create(rec); err != nil {
			return errors.Wrapf(err, "seeding attendance of %s", rec.StudentID)
		}
	}
	return nil
}
