package schedule

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/registry"
	"github.com/trezcool/langcenter/core/user"
)

type testEnv struct {
	svc     *Service
	classes *class.Service
	users   *user.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)
	class.RegisterValidators(validate, translator)
	course.RegisterValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	courseReg := course.NewRegistry()
	require.NoError(t, course.Seed(courseReg))
	userReg := user.NewRegistry()
	require.NoError(t, user.Seed(userReg, time.Now()))
	classReg := class.NewRegistry()
	require.NoError(t, class.Seed(classReg))
	eventReg := NewRegistry()
	require.NoError(t, Seed(eventReg))

	env := testEnv{users: user.NewService(userReg, validate, nil)}
	env.classes = class.NewService(classReg, course.NewService(courseReg, validate), env.users, validate)
	env.svc = NewService(eventReg, env.classes, env.users, validate)
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
		ne         NewEvent
		want       Detail
		wantFields map[string]string
	}{
		{
			name: "class teacher by default",
			ne:   NewEvent{Date: "2025-10-27", StartTime: "18:00", EndTime: "19:30", ClassID: class.EnglishA1, Room: " P.101 "},
			want: Detail{
				Event: Event{ID: "S006", Date: "2025-10-27", StartTime: "18:00", EndTime: "19:30", ClassID: "L001", TeacherID: "GV0016",
					Room: "P.101", Status: StatusUpcoming, Color: "#ff7043", Revision: 1},
				Class:   "Tiếng Anh Giao Tiếp A1",
				Teacher: "Cô Trần Mai",
			},
		},
		{
			name: "substitute teacher",
			ne: NewEvent{Date: "2025-10-28", StartTime: "09:00", EndTime: "10:00", ClassID: class.BusinessB2, TeacherID: user.TeacherLeTung,
				Status: StatusActive},
			want: Detail{
				Event: Event{ID: "S006", Date: "2025-10-28", StartTime: "09:00", EndTime: "10:00", ClassID: "L006", TeacherID: "GV0017",
					Status: StatusActive, Color: "#007bff", Revision: 1},
				Class:   "Business B2",
				Teacher: "Thầy Lê Tùng",
			},
		},
		{
			name:       "missing fields",
			ne:         NewEvent{},
			wantFields: map[string]string{"date": "required", "start_time": "required", "end_time": "required", "class_id": "required"},
		},
		{
			name:       "ends before it starts",
			ne:         NewEvent{Date: "2025-10-27", StartTime: "18:00", EndTime: "17:00", ClassID: class.EnglishA1},
			wantFields: map[string]string{"end_time": endAfterStartTag},
		},
		{
			name:       "malformed time",
			ne:         NewEvent{Date: "27/10/2025", StartTime: "25:00", EndTime: "19:30", ClassID: class.EnglishA1},
			wantFields: map[string]string{"date": "date", "start_time": "clock"},
		},
		{
			name:       "unknown class",
			ne:         NewEvent{Date: "2025-10-27", StartTime: "18:00", EndTime: "19:30", ClassID: "L999"},
			wantFields: map[string]string{"class_id": ErrUnknownClass.Error()},
		},
		{
			name:       "student as teacher",
			ne:         NewEvent{Date: "2025-10-27", StartTime: "18:00", EndTime: "19:30", ClassID: class.EnglishA1, TeacherID: "HV0001"},
			wantFields: map[string]string{"teacher_id": ErrUnknownTeacher.Error()},
		},
		{
			name:       "id taken",
			ne:         NewEvent{ID: "S001", Date: "2025-10-27", StartTime: "18:00", EndTime: "19:30", ClassID: class.EnglishA1},
			wantFields: map[string]string{"id": registry.ErrDuplicateID.Error()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			got, err := env.svc.Create(tt.ne)
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
		{name: "chronological", filter: QueryFilter{Status: "All"}, want: []string{"S001", "S002", "S003", "S004", "S005"}},
		{name: "by class name", filter: QueryFilter{Search: "ielts"}, want: []string{"S001"}},
		{name: "by teacher name", filter: QueryFilter{Search: "TRẦN MAI"}, want: []string{"S002", "S005"}},
		{name: "by date", filter: QueryFilter{Date: "2025-10-25"}, want: []string{"S003", "S004"}},
		{name: "by status", filter: QueryFilter{Status: StatusActive}, want: []string{"S001", "S003", "S005"}},
		{name: "by class", filter: QueryFilter{ClassID: class.BusinessB2}, want: []string{"S004"}},
		{name: "latest first", filter: QueryFilter{Ordering: "-date,-start_time"}, want: []string{"S005", "S004", "S003", "S002", "S001"}},
		{name: "no match", filter: QueryFilter{Search: "xyz"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(env.svc.List(tt.filter)))
		})
	}
}

func TestService_ByTeacher(t *testing.T) {
	env := newTestEnv(t)

	dtls, err := env.svc.ByTeacher(user.TeacherTranMai, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"S002", "S005"}, ids(dtls))

	dtls, err = env.svc.ByTeacher(user.TeacherTranMai, "2025-10-26")
	require.NoError(t, err)
	assert.Equal(t, []string{"S005"}, ids(dtls))
	assert.Equal(t, "Luyện Viết nâng cao", dtls[0].Class)

	_, err = env.svc.ByTeacher("HV0001", "")
	assert.Equal(t, registry.ErrNotFound, err)
}

func TestService_Update(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		ue         UpdateEvent
		want       func(d *Detail)
		wantErr    error
		wantFields map[string]string
	}{
		{name: "not found", id: "S999", ue: UpdateEvent{Room: "P.1"}, wantErr: registry.ErrNotFound},
		{
			name: "reschedule",
			id:   "S002",
			ue:   UpdateEvent{Date: "2025-10-29", StartTime: "18:00", EndTime: "19:00"},
			want: func(d *Detail) {
				d.Date = "2025-10-29"
				d.StartTime = "18:00"
				d.EndTime = "19:00"
			},
		},
		{
			name: "move to another class",
			id:   "S003",
			ue:   UpdateEvent{ClassID: class.EnglishA1, TeacherID: user.TeacherTranMai},
			want: func(d *Detail) {
				d.ClassID = class.EnglishA1
				d.Class = "Tiếng Anh Giao Tiếp A1"
				d.TeacherID = user.TeacherTranMai
				d.Teacher = "Cô Trần Mai"
			},
		},
		{name: "ends before it starts", id: "S001", ue: UpdateEvent{EndTime: "17:59"}, wantFields: map[string]string{"end_time": endAfterStartTag}},
		{name: "bad status", id: "S001", ue: UpdateEvent{Status: "Cancelled"}, wantFields: map[string]string{"status": eventStatusTag}},
		{name: "unknown class", id: "S001", ue: UpdateEvent{ClassID: "L999"}, wantFields: map[string]string{"class_id": ErrUnknownClass.Error()}},
		{name: "stale revision", id: "S001", ue: UpdateEvent{Room: "P.2", Revision: 9}, wantErr: registry.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			orig, _ := env.svc.GetByID(tt.id)

			got, err := env.svc.Update(tt.id, tt.ue)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			case tt.wantFields != nil:
				assert.Equal(t, tt.wantFields, fieldErrors(t, err))
				return
			}
			require.NoError(t, err)

			want := orig
			tt.want(&want)
			want.Revision = orig.Revision + 1
			assert.Equal(t, want, got)
		})
	}
}

func TestService_ClassRenameIsReflected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.classes.Update(class.BusinessB2, class.UpdateClass{Name: "Business English B2"})
	require.NoError(t, err)

	dtl, err := env.svc.GetByID("S004")
	require.NoError(t, err)
	assert.Equal(t, "Business English B2", dtl.Class)
}

func TestService_Delete(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, core.ErrConfirmationRequired, env.svc.Delete("S004", false))
	assert.Equal(t, 5, env.svc.Registry().Len())
	require.NoError(t, env.svc.Delete("S004", true))
	assert.Equal(t, registry.ErrNotFound, env.svc.Delete("S004", true))

	// deleted ids are never reused
	got, err := env.svc.Create(NewEvent{Date: "2025-10-30", StartTime: "08:00", EndTime: "09:00", ClassID: class.GrammarA1})
	require.NoError(t, err)
	assert.Equal(t, "S006", got.ID)
}

func TestService_CountByStatus(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, map[string]int{StatusActive: 3, StatusUpcoming: 1, StatusCompleted: 1}, env.svc.CountByStatus())
}

func TestService_View(t *testing.T) {
	env := newTestEnv(t)

	v := env.svc.View(QueryFilter{Date: "2025-10-24"})
	defer v.Close()
	assert.Equal(t, []string{"S001", "S002"}, ids(env.svc.Details(v.Items())))

	_, err := env.svc.Create(NewEvent{Date: "2025-10-24", StartTime: "07:00", EndTime: "08:00", ClassID: class.GrammarA1})
	require.NoError(t, err)
	assert.Len(t, v.Items(), 2, "a view only refreshes on focus")

	v.Focus()
	assert.Equal(t, []string{"S001", "S002", "S006"}, ids(env.svc.Details(v.Items())))
}

func TestService_ViewFollowsClassRename(t *testing.T) {
	env := newTestEnv(t)

	v := env.svc.View(QueryFilter{Search: "business english"})
	assert.Empty(t, v.Items())

	var got [][]Detail
	v.OnChange(func(items []Event) { got = append(got, env.svc.Details(items)) })
	v.Watch()
	defer v.Close()

	_, err := env.classes.Update(class.BusinessB2, class.UpdateClass{Name: "Business English B2"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"S004"}, ids(got[0]))
	assert.Equal(t, "Business English B2", got[0][0].Class)
}
