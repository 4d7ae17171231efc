package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

// Roles
const (
	RoleAdmin   = "Admin"
	RoleTeacher = "Teacher"
	RoleStudent = "Student"
)

// Statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

const idWidth = 4

var (
	AllRoles    = []string{RoleAdmin, RoleTeacher, RoleStudent}
	AllStatuses = []string{StatusActive, StatusInactive}

	Roles = []Role{
		{Name: "Admin", Value: RoleAdmin, IDPrefix: "ADM"},
		{Name: "Giảng viên", Value: RoleTeacher, IDPrefix: "GV"},
		{Name: "Học viên", Value: RoleStudent, IDPrefix: "HV"},
	}
)

type Role struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	IDPrefix string `json:"id_prefix"`
}

// Sequence returns the id sequence of a user: ADM0001, GV0001, HV0001...
func Sequence(usr User) registry.Sequence {
	for _, role := range Roles {
		if role.Value == usr.Role {
			return registry.Sequence{Prefix: role.IDPrefix, Width: idWidth}
		}
	}
	return registry.Sequence{Prefix: "U", Width: idWidth}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	Revision     int       `json:"revision"`
}

func (u User) RecordID() string                { return u.ID }
func (u User) WithRecordID(id string) User     { u.ID = id; return u }
func (u User) RecordRevision() int             { return u.Revision }
func (u User) WithRecordRevision(rev int) User { u.Revision = rev; return u }

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) HasPassword() bool { return len(u.PasswordHash) > 0 }
func (u User) IsAdmin() bool     { return u.Role == RoleAdmin }
func (u User) IsTeacher() bool   { return u.Role == RoleTeacher }
func (u User) IsStudent() bool   { return u.Role == RoleStudent }
func (u User) IsActive() bool    { return u.Status == StatusActive }

// Person is the user as seen by the logger.
func (u User) Person() core.Person {
	return core.Person{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	ID       string `json:"id" validate:"omitempty,alphanum"`
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,numeric,max=15"`
	Role     string `json:"role" validate:"required,userrole"`
	Status   string `json:"status" validate:"omitempty,userstatus"`
	Password string `json:"password" validate:"required"`
}

func (nu *NewUser) Clean() {
	nu.ID = core.CleanString(nu.ID)
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Phone = cleanPhone(nu.Phone)
	if nu.Status == "" {
		nu.Status = StatusActive
	}
}

// UpdateUser defines what information may be provided to modify an existing User.
// Empty fields keep their current value.
type UpdateUser struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,numeric,max=15"`
	Role     string `json:"role" validate:"omitempty,userrole"`
	Status   string `json:"status" validate:"omitempty,userstatus"`
	Revision int    `json:"revision"`
}

func (uu *UpdateUser) Clean(orig User) {
	uu.Name = core.FirstNonEmpty(core.CleanString(uu.Name), orig.Name)
	uu.Email = core.FirstNonEmpty(core.CleanString(uu.Email, true /* lower */), orig.Email)
	uu.Phone = core.FirstNonEmpty(cleanPhone(uu.Phone), orig.Phone)
	uu.Role = core.FirstNonEmpty(core.CleanString(uu.Role), orig.Role)
	uu.Status = core.FirstNonEmpty(core.CleanString(uu.Status), orig.Status)
}

type ResetPassword struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`

	// attributes the password must not resemble
	name, email string
}

// UpdateProfile is what a student may change on their own profile. The email is read-only.
type UpdateProfile struct {
	Name     string `json:"name" validate:"notblank"`
	Phone    string `json:"phone" validate:"omitempty,numeric,max=15"`
	Revision int    `json:"revision"`
}

func (up *UpdateProfile) Clean() {
	up.Name = core.CleanString(up.Name)
	up.Phone = cleanPhone(up.Phone)
}

type QueryFilter struct {
	Search   string `query:"search"`
	Role     string `query:"role"`
	Status   string `query:"status"`
	Ordering string `query:"ordering"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role)
	qf.Status = core.CleanString(qf.Status)
}

// Projection searches on name, id and email and filters on role and status.
func (qf QueryFilter) Projection() registry.Projection[User] {
	return registry.Projection[User]{
		Search: qf.Search,
		SearchFields: []registry.Field[User]{
			func(u User) string { return u.Name },
			func(u User) string { return u.ID },
			func(u User) string { return u.Email },
		},
		Filters: []registry.Filter[User]{
			{Name: "role", Value: qf.Role, Field: func(u User) string { return u.Role }},
			{Name: "status", Value: qf.Status, Field: func(u User) string { return u.Status }},
		},
	}
}

var orderingFields = map[string]core.Comparator[User]{
	"id":         func(a, b User) int { return core.CompareStrings(a.ID, b.ID) },
	"name":       func(a, b User) int { return core.CompareStrings(a.Name, b.Name) },
	"email":      func(a, b User) int { return core.CompareStrings(a.Email, b.Email) },
	"role":       func(a, b User) int { return core.CompareStrings(a.Role, b.Role) },
	"status":     func(a, b User) int { return core.CompareStrings(a.Status, b.Status) },
	"created_at": func(a, b User) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

// cleanPhone keeps the digits only.
func cleanPhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits)
}
