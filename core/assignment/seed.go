package assignment

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/registry"
)

func SeedAssignments() []Assignment {
	return []Assignment{
		{ID: "A001", Title: "Bài tập Unit 5: Ngữ pháp Tense", ClassID: class.Writing, DueDate: "2025-10-28", MaxScore: 10, PassScore: 5,
			Status: StatusPending},
		{ID: "A002", Title: "Bài kiểm tra Giữa kỳ (Listening)", ClassID: class.TOEICSprint, DueDate: "2025-10-25", MaxScore: 100, PassScore: 50,
			Status: StatusDue},
		{ID: "A003", Title: "Assignment 2: Phân tích Văn bản", ClassID: class.GrammarA1, DueDate: "2025-10-20", MaxScore: 10, PassScore: 7,
			Status: StatusGraded, Grades: []Grade{{StudentID: "HV0001", Score: 8.5}, {StudentID: "HV0002", Score: 6}}},
		{ID: "A004", Title: "Bài tập Unit 4", ClassID: class.Writing, DueDate: "2025-10-15", MaxScore: 10, PassScore: 5,
			Status: StatusDue},
		{ID: "A005", Title: "Bài kiểm tra Đầu vào", ClassID: class.TOEICSprint, DueDate: "2025-09-01", MaxScore: 10, PassScore: 5,
			Status: StatusCompleted, Grades: []Grade{{StudentID: "HV0001", Score: 6.5}}},
	}
}

func Seed(reg *registry.Registry[Assignment]) error {
	for _, asg := range SeedAssignments() {
		if _, err := reg.Create(asg); err != nil {
			return errors.Wrapf(err, "seeding assignment %s", asg.ID)
		}
	}
	return nil
}
