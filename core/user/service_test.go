package user

import (
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
	emailsvc "github.com/trezcool/langcenter/services/email"
	logsvc "github.com/trezcool/langcenter/services/logger"
)

var now = time.Date(2025, time.October, 24, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *emailsvc.ConsoleServiceMock) {
	t.Helper()
	validate, translator := core.NewValidator()
	RegisterValidators(validate, translator)

	conf := &core.Config{AppName: "Language Center", DefaultFromEmail: mail.Address{Address: "noreply@tdd.edu"}}
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logsvc.NewNopLogger())

	reg := NewRegistry()
	require.NoError(t, Seed(reg, now))
	svc := NewService(reg, validate, mailSvc)
	svc.nowFunc = func() time.Time { return now }
	return svc, mailSvc
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

func TestSeed(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, map[string]int{RoleAdmin: 1, RoleTeacher: 19, RoleStudent: 50}, svc.CountByRole())

	usr, err := svc.GetByID("GV0001")
	require.NoError(t, err)
	assert.Equal(t, "Giảng viên 0001 TestName", usr.Name)
	assert.Equal(t, "gv0001@tdd.edu", usr.Email)

	usr, err = svc.GetByID("HV0005")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, usr.Status)

	first := svc.Registry().ReadAll()[0]
	assert.Equal(t, AdminID, first.ID)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		nu         NewUser
		wantID     string
		wantFields map[string]string
	}{
		{
			name:   "student",
			nu:     NewUser{Name: " Nguyen Van Z ", Email: "Z@Test.com", Role: RoleStudent, Password: "s3cret!pwd", Phone: "090 123-4567"},
			wantID: "HV0051",
		},
		{
			name:   "teacher",
			nu:     NewUser{Name: "Cô Lan", Email: "lan@tdd.edu", Role: RoleTeacher, Password: "s3cret!pwd"},
			wantID: "GV0020",
		},
		{
			name:   "explicit id",
			nu:     NewUser{ID: "HV0100", Name: "Z", Email: "hv0100@tdd.edu", Role: RoleStudent, Password: "s3cret!pwd"},
			wantID: "HV0100",
		},
		{
			name:       "required fields",
			nu:         NewUser{Name: "  "},
			wantFields: map[string]string{"name": "notblank", "email": "required", "role": "required", "password": "required"},
		},
		{
			name:       "invalid role and email",
			nu:         NewUser{Name: "Z", Email: "nope", Role: "Janitor", Password: "s3cret!pwd"},
			wantFields: map[string]string{"email": "email", "role": "userrole"},
		},
		{
			name:       "short password",
			nu:         NewUser{Name: "Z", Email: "z@test.com", Role: RoleStudent, Password: "abc"},
			wantFields: map[string]string{"password": pwdMinLenTag},
		},
		{
			name:       "password with spaces",
			nu:         NewUser{Name: "Z", Email: "z@test.com", Role: RoleStudent, Password: "abc def ghi"},
			wantFields: map[string]string{"password": pwdNoSpaceTag},
		},
		{
			name:       "password similar to email",
			nu:         NewUser{Name: "Z", Email: "zorro@test.com", Role: RoleStudent, Password: "Zorro@test.co"},
			wantFields: map[string]string{"password": pwdAttrSimTag},
		},
		{
			name:       "email taken",
			nu:         NewUser{Name: "Z", Email: "GV0001@tdd.edu", Role: RoleStudent, Password: "s3cret!pwd"},
			wantFields: map[string]string{"email": ErrEmailExists.Error()},
		},
		{
			name:       "id taken",
			nu:         NewUser{ID: "HV0001", Name: "Z", Email: "z@test.com", Role: RoleStudent, Password: "s3cret!pwd"},
			wantFields: map[string]string{"id": registry.ErrDuplicateID.Error()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			before := svc.Registry().Len()

			got, err := svc.Create(tt.nu)
			if tt.wantFields != nil {
				assert.Equal(t, tt.wantFields, fieldErrors(t, err))
				assert.Equal(t, before, svc.Registry().Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, StatusActive, got.Status)
			assert.NoError(t, got.CheckPassword(tt.nu.Password))
			assert.Equal(t, now, got.CreatedAt)

			read, err := svc.GetByID(got.ID)
			require.NoError(t, err)
			assert.Equal(t, got, read)
		})
	}
}

func TestService_CreateCleansInput(t *testing.T) {
	svc, _ := newTestService(t)
	got, err := svc.Create(NewUser{Name: " Nguyen Van Z ", Email: " Z@Test.com", Role: RoleStudent, Password: "s3cret!pwd", Phone: "090 123-4567"})
	require.NoError(t, err)
	assert.Equal(t, "Nguyen Van Z", got.Name)
	assert.Equal(t, "z@test.com", got.Email)
	assert.Equal(t, "0901234567", got.Phone)
}

func TestService_StudentProjection(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Registry().Create(User{ID: "HV0051", Name: "Nguyen Van Z", Role: RoleStudent, Email: "z@test.com", Status: StatusActive})
	require.NoError(t, err)

	var count int
	for _, usr := range svc.List(QueryFilter{Role: RoleStudent}) {
		if usr.ID == "HV0051" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestService_List(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		filter  QueryFilter
		wantLen int
		wantIDs []string
	}{
		{name: "all", filter: QueryFilter{Role: "all"}, wantLen: 70},
		{name: "by id", filter: QueryFilter{Search: "adm0001"}, wantIDs: []string{"ADM0001"}},
		{name: "by name", filter: QueryFilter{Search: "trần mai"}, wantIDs: []string{TeacherTranMai}},
		{name: "by email", filter: QueryFilter{Search: "khang@"}, wantIDs: []string{TeacherKhang}},
		{name: "inactive teachers", filter: QueryFilter{Role: RoleTeacher, Status: StatusInactive}, wantIDs: []string{"GV0005", "GV0010", "GV0015"}},
		{
			name:    "ordering",
			filter:  QueryFilter{Search: "giảng viên 000", Ordering: "-id"},
			wantIDs: []string{"GV0009", "GV0008", "GV0007", "GV0006", "GV0005", "GV0004", "GV0003", "GV0002", "GV0001"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.List(tt.filter)
			if tt.wantIDs == nil {
				assert.Len(t, got, tt.wantLen)
				return
			}
			ids := make([]string, 0, len(got))
			for _, usr := range got {
				ids = append(ids, usr.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestService_Update(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		uu         UpdateUser
		want       func(u *User)
		wantErr    error
		wantFields map[string]string
	}{
		{name: "not found", id: "HV9999", uu: UpdateUser{Name: "x"}, wantErr: registry.ErrNotFound},
		{
			name: "partial update keeps other fields",
			id:   "HV0001",
			uu:   UpdateUser{Name: "Học viên Một", Phone: "0912 345 678"},
			want: func(u *User) { u.Name = "Học viên Một"; u.Phone = "0912345678" },
		},
		{
			name: "deactivate",
			id:   "GV0001",
			uu:   UpdateUser{Status: StatusInactive},
			want: func(u *User) { u.Status = StatusInactive },
		},
		{name: "invalid status", id: "GV0001", uu: UpdateUser{Status: "Gone"}, wantFields: map[string]string{"status": "userstatus"}},
		{name: "email taken", id: "GV0001", uu: UpdateUser{Email: "admin@tdd.edu"}, wantFields: map[string]string{"email": ErrEmailExists.Error()}},
		{name: "own email", id: "GV0001", uu: UpdateUser{Email: "GV0001@tdd.edu"}, want: func(u *User) {}},
		{name: "stale revision", id: "GV0001", uu: UpdateUser{Name: "x", Revision: 9}, wantErr: registry.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			orig, _ := svc.GetByID(tt.id)

			got, err := svc.Update(tt.id, tt.uu)
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

			read, err := svc.GetByID(tt.id)
			require.NoError(t, err)
			assert.Equal(t, want, read)
		})
	}
}

func TestService_ResetPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResetPassword("GV0001", ResetPassword{Password: "abc", PasswordConfirm: "abc"})
	assert.Equal(t, map[string]string{"password": pwdMinLenTag}, fieldErrors(t, err))

	_, err = svc.ResetPassword("GV0001", ResetPassword{Password: "n3wPassword", PasswordConfirm: "other"})
	assert.Equal(t, map[string]string{"password_confirm": "eqfield"}, fieldErrors(t, err))

	_, err = svc.ResetPassword("GV0001", ResetPassword{Password: "gv0001@tdd.ed", PasswordConfirm: "gv0001@tdd.ed"})
	assert.Equal(t, map[string]string{"password": pwdAttrSimTag}, fieldErrors(t, err))

	_, err = svc.ResetPassword("HV9999", ResetPassword{Password: "n3wPassword", PasswordConfirm: "n3wPassword"})
	assert.Equal(t, registry.ErrNotFound, err)

	usr, err := svc.ResetPassword("GV0001", ResetPassword{Password: "n3wPassword", PasswordConfirm: "n3wPassword"})
	require.NoError(t, err)
	assert.NoError(t, usr.CheckPassword("n3wPassword"))
	assert.Equal(t, 2, usr.Revision)
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProfile("GV0001", UpdateProfile{Name: "x"})
	assert.Equal(t, registry.ErrNotFound, err, "only students have a profile")

	_, err = svc.UpdateProfile("HV0002", UpdateProfile{Name: " "})
	assert.Equal(t, map[string]string{"name": "notblank"}, fieldErrors(t, err))

	usr, err := svc.UpdateProfile("HV0002", UpdateProfile{Name: "Học viên Hai", Phone: "(+84) 90 111 2222"})
	require.NoError(t, err)
	assert.Equal(t, "Học viên Hai", usr.Name)
	assert.Equal(t, "84901112222", usr.Phone)
	assert.Equal(t, "hv0002@tdd.edu", usr.Email)
}

func TestService_Delete(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, core.ErrConfirmationRequired, svc.Delete(AdminID, false))
	_, err := svc.GetByID(AdminID)
	require.NoError(t, err, "unconfirmed delete must not remove the user")

	require.NoError(t, svc.Delete(AdminID, true))
	_, err = svc.GetByID(AdminID)
	assert.Equal(t, registry.ErrNotFound, err)

	assert.Equal(t, registry.ErrNotFound, svc.Delete(AdminID, true))
}

func TestService_GetTeacherAndStudent(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetTeacher("GV0003")
	assert.NoError(t, err)
	_, err = svc.GetTeacher("HV0003")
	assert.Equal(t, registry.ErrNotFound, err)
	_, err = svc.GetStudent("HV0003")
	assert.NoError(t, err)
	_, err = svc.GetStudent("ADM0001")
	assert.Equal(t, registry.ErrNotFound, err)

	usr, err := svc.GetByEmail(" KHANG@tdd.edu ")
	require.NoError(t, err)
	assert.Equal(t, TeacherKhang, usr.ID)
}

func TestService_SendWelcomeMails(t *testing.T) {
	svc, mailSvc := newTestService(t)
	cancel := svc.SendWelcomeMails()

	usr, err := svc.Create(NewUser{Name: "Nguyen Van Z", Email: "z@test.com", Role: RoleStudent, Password: "s3cret!pwd"})
	require.NoError(t, err)
	_, err = svc.Update(usr.ID, UpdateUser{Name: "Z"})
	require.NoError(t, err)

	cancel()
	_, err = svc.Create(NewUser{Name: "Y", Email: "y@test.com", Role: RoleStudent, Password: "s3cret!pwd"})
	require.NoError(t, err)

	msgs := mailSvc.SentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "z@test.com", msgs[0].To[0].Address)
	assert.Contains(t, msgs[0].TextContent, "Hello Nguyen Van Z")
	assert.Contains(t, msgs[0].TextContent, "Your id is HV0051")
}
