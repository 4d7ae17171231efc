package course

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/registry"
)

// seeded course ids referenced by the seeded classes
const (
	IELTSMastery   = "C101"
	TOEICSprint    = "C102"
	BasicA1        = "C103"
	BusinessB2     = "C104"
	ConversationB2 = "C105"
)

func SeedCourses() []Course {
	return []Course{
		{ID: IELTSMastery, Name: "IELTS Mastery 7.0", Level: LevelIELTS, ModuleCount: 12, Price: 8900000, Status: StatusPublic, Color: "#dc3545",
			Description: "Lộ trình luyện thi IELTS toàn diện 4 kỹ năng."},
		{ID: TOEICSprint, Name: "TOEIC Cấp tốc 600+", Level: LevelTOEIC, ModuleCount: 8, Price: 4500000, Status: StatusPublic, Color: "#007bff"},
		{ID: BasicA1, Name: "Giao Tiếp Cơ Bản (A1)", Level: LevelA1, ModuleCount: 5, Price: 1990000, Status: StatusDraft, Color: "#ffc107"},
		{ID: BusinessB2, Name: "Business English B2", Level: LevelB2, ModuleCount: 10, Price: 7200000, Status: StatusPublic, Color: "#28a745"},
		{ID: ConversationB2, Name: "Khóa Học Đàm Thoại Nâng Cao", Level: LevelB2, ModuleCount: 8, Price: 6500000, Status: StatusArchived, Color: "#6c757d"},
	}
}

func Seed(reg *registry.Registry[Course]) error {
	for _, crs := range SeedCourses() {
		if _, err := reg.Create(crs); err != nil {
			return errors.Wrapf(err, "seeding course %s", crs.ID)
		}
	}
	return nil
}
