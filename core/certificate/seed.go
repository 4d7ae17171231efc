package certificate

import (
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/registry"
)

func SeedCertificates() []Certificate {
	return []Certificate{
		{ID: "C001", StudentName: "Nguyễn Văn A", CourseID: course.IELTSMastery, Grade: 8.5, Status: StatusIssued, IssueDate: "2025-05-15", Code: "TDD-IEL-987"},
		{ID: "C002", StudentName: "Trần Thị B", CourseID: course.TOEICSprint, Grade: 7.0, Status: StatusReady},
		{ID: "C003", StudentName: "Lê Văn C", CourseID: course.BasicA1, Grade: 6.2, Status: StatusPending},
		{ID: "C004", StudentName: "Phạm Thị D", CourseID: course.BusinessB2, Grade: 9.1, Status: StatusIssued, IssueDate: "2025-08-20", Code: "TDD-B2-045"},
		{ID: "C005", StudentName: "Võ Minh E", CourseID: course.IELTSMastery, Grade: 8.8, Status: StatusReady},
	}
}

func Seed(reg *registry.Registry[Certificate]) error {
	for _, cert := range SeedCertificates() {
		if _, err := reg.Create(cert); err != nil {
			return errors.Wrapf(err, "seeding certificate %s", cert.ID)
		}
	}
	return nil
}
