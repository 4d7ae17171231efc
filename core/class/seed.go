package class

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

// seeded class ids referenced by the seeded schedule
const (
	EnglishA1   = "L001"
	IELTSBand65 = "L002"
	GrammarA1   = "L003"
	TOEICSprint = "L004"
	Writing     = "L005"
	BusinessB2  = "L006"
)

func SeedClasses() []Class {
	return []Class{
		{ID: EnglishA1, Name: "Tiếng Anh Giao Tiếp A1", CourseID: course.BasicA1, TeacherID: user.TeacherTranMai, Students: 18,
			Status: StatusInProgress, Color: "#28a745", Schedule: "T2, T4, T6 (18:00 - 19:30)", StartDate: "2025-09-01", EndDate: "2025-12-15"},
		{ID: IELTSBand65, Name: "IELTS Band 6.5 - T3", CourseID: course.IELTSMastery, TeacherID: user.TeacherLeTung, Students: 12,
			Status: StatusInProgress, Color: "#007bff", Schedule: "T3, T5, T7 (18:00 - 19:30)", StartDate: "2025-09-15", EndDate: "2026-01-30"},
		{ID: GrammarA1, Name: "Ngữ Pháp Cơ Bản", CourseID: course.BasicA1, TeacherID: user.TeacherNguyenVy, Students: 22,
			Status: StatusScheduled, Color: "#ffc107", Schedule: "T7 (09:00 - 11:00)", StartDate: "2025-10-25"},
		{ID: TOEICSprint, Name: "TOEIC Cấp Tốc", CourseID: course.TOEICSprint, TeacherID: user.TeacherLeTung, Students: 15,
			Status: StatusInProgress, Color: "#28a745", Schedule: "T2, T4 (19:30 - 21:00)", StartDate: "2025-10-01", EndDate: "2025-12-20"},
		{ID: Writing, Name: "Luyện Viết nâng cao", CourseID: course.BusinessB2, TeacherID: user.TeacherTranMai, Students: 10,
			Status: StatusFinished, Color: "#dc3545", Schedule: defaultSchedule, StartDate: "2025-06-01", EndDate: "2025-09-30"},
		{ID: BusinessB2, Name: "Business B2", CourseID: course.BusinessB2, TeacherID: user.TeacherKhang, Students: 14,
			Status: StatusInProgress, Color: "#6c757d", Schedule: "T7 (14:00 - 16:00)", StartDate: "2025-09-06"},
	}
}

func Seed(reg *registry.Registry[Class]) error {
	for _, cls := range SeedClasses() {
		if _, err := reg.Create(cls); err != nil {
			return errors.Wrapf(err, "seeding class %s", cls.ID)
		}
	}
	return nil
}
