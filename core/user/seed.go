package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/registry"
)

const (
	seedTeachers = 15
	seedStudents = 50

	// named teachers referenced by the seeded classes and schedule
	TeacherTranMai   = "GV0016"
	TeacherLeTung    = "GV0017"
	TeacherNguyenVy  = "GV0018"
	TeacherKhang     = "GV0019"
	AdminID          = "ADM0001"
	studentPhoneSeed = "0901234567"
)

// SeedUsers returns the initial users: 1 admin, 15 + 4 teachers and 50 students.
// One numbered user out of five is Inactive.
func SeedUsers(now time.Time) []User {
	now = now.UTC()
	users := []User{
		{ID: AdminID, Name: "Admin TDD", Role: RoleAdmin, Email: "admin@tdd.edu", Status: StatusActive},
	}
	users = append(users, numberedUsers(RoleTeacher, "Giảng viên", seedTeachers)...)
	users = append(users,
		User{ID: TeacherTranMai, Name: "Cô Trần Mai", Role: RoleTeacher, Email: "mai.tran@tdd.edu", Status: StatusActive},
		User{ID: TeacherLeTung, Name: "Thầy Lê Tùng", Role: RoleTeacher, Email: "tung.le@tdd.edu", Status: StatusActive},
		User{ID: TeacherNguyenVy, Name: "Cô Nguyễn Vy", Role: RoleTeacher, Email: "vy.nguyen@tdd.edu", Status: StatusActive},
		User{ID: TeacherKhang, Name: "Thầy Khang", Role: RoleTeacher, Email: "khang@tdd.edu", Status: StatusActive},
	)
	users = append(users, numberedUsers(RoleStudent, "Học viên", seedStudents)...)
	users[len(users)-seedStudents].Phone = studentPhoneSeed

	for i := range users {
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
	}
	return users
}

func numberedUsers(role, label string, count int) []User {
	seq := Sequence(User{Role: role})
	users := make([]User, 0, count)
	for i := 1; i <= count; i++ {
		index := fmt.Sprintf("%0*d", seq.Width, i)
		status := StatusActive
		if i%5 == 0 {
			status = StatusInactive
		}
		users = append(users, User{
			ID:     seq.Prefix + index,
			Name:   fmt.Sprintf("%s %s TestName", label, index),
			Role:   role,
			Email:  fmt.Sprintf("%s%s@tdd.edu", strings.ToLower(seq.Prefix), index),
			Status: status,
		})
	}
	return users
}

// Seed adds the initial users to reg.
func Seed(reg *registry.Registry[User], now time.Time) error {
	for _, usr := range SeedUsers(now) {
		if _, err := reg.Create(usr); err != nil {
			return errors.Wrapf(err, "seeding user %s", usr.ID)
		}
	}
	return nil
}
