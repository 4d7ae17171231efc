package schedule

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

func SeedEvents() []Event {
	return []Event{
		{ID: "S001", Date: "2025-10-24", StartTime: "18:00", EndTime: "19:30", ClassID: class.IELTSBand65, TeacherID: user.TeacherLeTung,
			Room: "P.201", Status: StatusActive, Color: "#007bff"},
		{ID: "S002", Date: "2025-10-24", StartTime: "19:30", EndTime: "21:00", ClassID: class.TOEICSprint, TeacherID: user.TeacherTranMai,
			Room: "P.105", Status: StatusUpcoming, Color: "#ff7043"},
		{ID: "S003", Date: "2025-10-25", StartTime: "09:00", EndTime: "11:00", ClassID: class.GrammarA1, TeacherID: user.TeacherNguyenVy,
			Room: "P.302", Status: StatusActive, Color: "#28a745"},
		{ID: "S004", Date: "2025-10-25", StartTime: "14:00", EndTime: "16:00", ClassID: class.BusinessB2, TeacherID: user.TeacherKhang,
			Room: "P.201", Status: StatusCompleted, Color: "#6c757d"},
		{ID: "S005", Date: "2025-10-26", StartTime: "20:00", EndTime: "22:00", ClassID: class.Writing, TeacherID: user.TeacherTranMai,
			Status: StatusActive, Color: "#dc3545"},
	}
}

func Seed(reg *registry.Registry[Event]) error {
	for _, evt := range SeedEvents() {
		if _, err := reg.Create(evt); err != nil {
			return errors.Wrapf(err, "seeding event %s", evt.ID)
		}
	}
	return nil
}
