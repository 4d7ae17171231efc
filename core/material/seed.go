package material

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

func SeedMaterials() []Material {
	return []Material{
		{ID: "M001", Title: "Giáo trình Unit 5 (Văn phạm)", CourseID: course.IELTSMastery, Type: TypePDF, Size: "2.5 MB",
			Description: "Các cấu trúc câu phức và thì quá khứ hoàn thành trong văn viết học thuật (Task 2).",
			TeacherID:   user.TeacherTranMai, UploadedDate: "2025-10-20"},
		{ID: "M002", Title: "Bài giảng Nghe B1", CourseID: course.TOEICSprint, Type: TypeSlide, Size: "15 MB",
			Description: "Bài tập nghe và transcript cho Unit 1-3.",
			TeacherID:   user.TeacherLeTung, UploadedDate: "2025-10-22"},
		{ID: "M003", Title: "Đề thi Thử Speaking", CourseID: course.IELTSMastery, Type: TypeTest, Size: "300 KB",
			Description: "Bộ đề thi thử Speaking quý 4/2025: Part 1, Part 2 và Part 3.",
			TeacherID:   user.TeacherNguyenVy, UploadedDate: "2025-09-15"},
		{ID: "M004", Title: "Hướng dẫn Phát âm (Video)", CourseID: course.IELTSMastery, Type: TypeVideo, Size: "120 MB",
			Description: "Cách phát âm các âm khó trong Tiếng Anh.",
			TeacherID:   user.TeacherLeTung, UploadedDate: "2025-10-23"},
		{ID: "M005", Title: "Bài tập Unit 6", CourseID: course.TOEICSprint, Type: TypePDF, Size: "1.1 MB",
			Description: "Bài tập tổng hợp Unit 6 (Mệnh đề quan hệ).",
			TeacherID:   user.TeacherTranMai, UploadedDate: "2025-10-24"},
	}
}

func Seed(reg *registry.Registry[Material]) error {
	for _, m := range SeedMaterials() {
		if _, err := reg.Create(m); err != nil {
			return errors.Wrapf(err, "seeding material %s", m.ID)
		}
	}
	return nil
}
