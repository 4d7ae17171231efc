package certificate

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

type testEnv struct {
	svc     *Service
	courses *course.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)
	course.RegisterValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	courseReg := course.NewRegistry()
	require.NoError(t, course.Seed(courseReg))
	userReg := user.NewRegistry()
	require.NoError(t, user.Seed(userReg, time.Now()))
	certReg := NewRegistry()
	require.NoError(t, Seed(certReg))

	env := testEnv{courses: course.NewService(courseReg, validate)}
	env.svc = NewService(certReg, env.courses, user.NewService(userReg, validate, nil), validate)
	env.svc.nowFunc = func() time.Time { return time.Date(2025, 10, 24, 9, 0, 0, 0, time.UTC) }
	return env
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

func ids(dtls []Detail) []string {
	out := make([]string, 0, len(dtls))
	for _, d := range dtls {
		out = append(out, d.ID)
	}
	return out
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		nc         NewCertificate
		want       Detail
		wantFields map[string]string
	}{
		{
			name: "graded is ready",
			nc:   NewCertificate{StudentName: " Hoàng Thị F ", CourseID: course.TOEICSprint, Grade: 7.5},
			want: Detail{
				Certificate: Certificate{ID: "C006", StudentName: "Hoàng Thị F", CourseID: "C102", Grade: 7.5, Status: StatusReady, Revision: 1},
				Course:      "TOEIC Cấp tốc 600+",
			},
		},
		{
			name: "ungraded is pending, named after the linked student",
			nc:   NewCertificate{StudentID: "HV0001", CourseID: course.BasicA1},
			want: Detail{
				Certificate: Certificate{ID: "C006", StudentID: "HV0001", StudentName: "Học viên 0001 TestName", CourseID: "C103",
					Status: StatusPending, Revision: 1},
				Course: "Giao Tiếp Cơ Bản (A1)",
			},
		},
		{
			name:       "missing fields",
			nc:         NewCertificate{Grade: 11},
			wantFields: map[string]string{"student_name": "required_without", "course_id": "required", "grade": "lte"},
		},
		{
			name:       "issued without date",
			nc:         NewCertificate{StudentName: "x", CourseID: course.BasicA1, Grade: 8, Status: StatusIssued},
			wantFields: map[string]string{"issue_date": issueDateTag},
		},
		{
			name:       "unknown status",
			nc:         NewCertificate{StudentName: "x", CourseID: course.BasicA1, Status: "Lost"},
			wantFields: map[string]string{"status": certStatusTag},
		},
		{
			name:       "unknown references",
			nc:         NewCertificate{StudentID: "GV0016", CourseID: "C999"},
			wantFields: map[string]string{"course_id": ErrUnknownCourse.Error(), "student_id": ErrUnknownStudent.Error()},
		},
		{
			name:       "id taken",
			nc:         NewCertificate{ID: "C001", StudentName: "x", CourseID: course.BasicA1},
			wantFields: map[string]string{"id": registry.ErrDuplicateID.Error()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			got, err := env.svc.Create(tt.nc)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, fieldErrors(t, err))
				assert.Equal(t, 5, env.svc.Registry().Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_List(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		filter QueryFilter
		want   []string
	}{
		{name: "all", filter: QueryFilter{Status: "ALL"}, want: []string{"C001", "C002", "C003", "C004", "C005"}},
		{name: "by course name", filter: QueryFilter{Search: " ielts "}, want: []string{"C001", "C005"}},
		{name: "by student name", filter: QueryFilter{Search: "thị"}, want: []string{"C002", "C004"}},
		{name: "by code", filter: QueryFilter{Search: "tdd-b2"}, want: []string{"C004"}},
		{name: "by status", filter: QueryFilter{Status: StatusReady}, want: []string{"C002", "C005"}},
		{name: "search and status", filter: QueryFilter{Search: "IELTS", Status: StatusIssued}, want: []string{"C001"}},
		{name: "by course", filter: QueryFilter{CourseID: course.BusinessB2}, want: []string{"C004"}},
		{name: "best grades first", filter: QueryFilter{Ordering: "-grade"}, want: []string{"C004", "C005", "C001", "C002", "C003"}},
		{name: "nothing", filter: QueryFilter{Search: "zzz"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(env.svc.List(tt.filter)))
		})
	}
}

func TestService_Update(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.svc.Update("C003", UpdateCertificate{Grade: 7.8, Status: StatusReady})
	require.NoError(t, err)
	assert.Equal(t, 7.8, got.Grade)
	assert.Equal(t, StatusReady, got.Status)
	assert.Equal(t, "Lê Văn C", got.StudentName)
	assert.Equal(t, 2, got.Revision)

	_, err = env.svc.Update("C003", UpdateCertificate{Status: StatusIssued})
	assert.Equal(t, map[string]string{"issue_date": issueDateTag}, fieldErrors(t, err))

	_, err = env.svc.Update("C003", UpdateCertificate{CourseID: "C999"})
	assert.Equal(t, map[string]string{"course_id": ErrUnknownCourse.Error()}, fieldErrors(t, err))

	_, err = env.svc.Update("C003", UpdateCertificate{StudentName: "x", Revision: 1})
	assert.Equal(t, registry.ErrConflict, errors.Cause(err))

	_, err = env.svc.Update("C999", UpdateCertificate{})
	assert.Equal(t, registry.ErrNotFound, err)
}

func TestService_Issue(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		ic         IssueCertificate
		wantDate   string
		wantCode   string
		wantFields map[string]string
	}{
		{name: "defaults", id: "C002", wantDate: "2025-10-24", wantCode: "TDD-C002"},
		{name: "explicit", id: "C005", ic: IssueCertificate{Date: "2025-10-30", Code: "TDD-IEL-990"}, wantDate: "2025-10-30", wantCode: "TDD-IEL-990"},
		{name: "bad date", id: "C005", ic: IssueCertificate{Date: "30/10/2025"}, wantFields: map[string]string{"date": "date"}},
		{name: "pending", id: "C003", wantFields: map[string]string{"status": ErrNotReady.Error()}},
		{name: "already issued", id: "C001", wantFields: map[string]string{"status": ErrNotReady.Error()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			got, err := env.svc.Issue(tt.id, tt.ic)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, fieldErrors(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusIssued, got.Status)
			assert.Equal(t, tt.wantDate, got.IssueDate)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestService_ByStudent(t *testing.T) {
	env := newTestEnv(t)
	assert.Empty(t, env.svc.ByStudent("HV0002", QueryFilter{}))

	created, err := env.svc.Create(NewCertificate{StudentID: "HV0002", CourseID: course.BasicA1, Grade: 9})
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, ids(env.svc.ByStudent("HV0002", QueryFilter{StudentID: "HV0003"})))
}

func TestService_Delete(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, core.ErrConfirmationRequired, env.svc.Delete("C004", false))
	assert.Equal(t, 5, env.svc.Registry().Len())

	require.NoError(t, env.svc.Delete("C004", true))
	_, err := env.svc.GetByID("C004")
	assert.Equal(t, registry.ErrNotFound, err)
	assert.Equal(t, registry.ErrNotFound, env.svc.Delete("C004", true))
}

func TestService_CountByStatus(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, map[string]int{StatusPending: 1, StatusReady: 2, StatusIssued: 2, StatusExpired: 0}, env.svc.CountByStatus())
}

func TestService_ViewFollowsCourseRename(t *testing.T) {
	env := newTestEnv(t)

	v := env.svc.View(QueryFilter{Search: "starter"})
	assert.Empty(t, v.Items())

	var got [][]Detail
	v.OnChange(func(items []Certificate) { got = append(got, env.svc.Details(items)) })
	v.Watch()
	defer v.Close()

	_, err := env.courses.Update(course.BasicA1, course.UpdateCourse{Name: "Starter A1"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"C003"}, ids(got[0]))
	assert.Equal(t, "Starter A1", got[0][0].Course)
}
