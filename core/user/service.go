package user

import (
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

var (
	// errors
	ErrEmailExists = errors.New("a user with this email already exists")

	welcomeTmpl = core.MustParseEmailTemplate("welcome", `Hello {{.Data.Name}},

Your {{.AppName}} account has been created.
Your id is {{.Data.ID}} and you can sign in with {{.Data.Email}}.
`)
)

type Service struct {
	reg      *registry.Registry[User]
	validate *validator.Validate
	mailSvc  core.EmailService
	nowFunc  func() time.Time // mockable
}

// NewRegistry returns an empty user registry generating role-prefixed ids.
func NewRegistry() *registry.Registry[User] {
	return registry.New(Sequence)
}

func NewService(reg *registry.Registry[User], validate *validator.Validate, mailSvc core.EmailService) *Service {
	return &Service{
		reg:      reg,
		validate: validate,
		mailSvc:  mailSvc,
		nowFunc:  time.Now,
	}
}

func (svc *Service) Registry() *registry.Registry[User] { return svc.reg }

// Notify calls fn after every change of the users.
func (svc *Service) Notify(fn func()) (cancel func()) { return svc.reg.Notify(fn) }

func (svc *Service) checkEmailUniqueness(email string, exclID string) error {
	for _, usr := range svc.reg.ReadAll() {
		if usr.Email == email && usr.ID != exclID {
			return core.NewFieldError("email", ErrEmailExists.Error())
		}
	}
	return nil
}

// Create validates nu and adds the user to the registry.
func (svc *Service) Create(nu NewUser) (User, error) {
	nu.Clean()
	if err := svc.validate.Struct(nu); err != nil {
		return User{}, err
	}
	if err := svc.checkEmailUniqueness(nu.Email, ""); err != nil {
		return User{}, err
	}

	now := svc.nowFunc().UTC()
	usr := User{
		ID:        nu.ID,
		Name:      nu.Name,
		Role:      nu.Role,
		Email:     nu.Email,
		Status:    nu.Status,
		Phone:     nu.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.reg.Create(usr)
	if errors.Cause(err) == registry.ErrDuplicateID {
		return User{}, core.NewFieldError("id", registry.ErrDuplicateID.Error())
	}
	return usr, err
}

// List returns the users matching the filter, sorted by its ordering.
func (svc *Service) List(filter QueryFilter) []User {
	filter.Clean()
	users := filter.Projection().Apply(svc.reg.ReadAll())
	core.SortBy(users, core.ParseOrderings(filter.Ordering), orderingFields)
	return users
}

// View returns a list view of the users matching the filter.
func (svc *Service) View(filter QueryFilter) *registry.View[User] {
	filter.Clean()
	return registry.NewView(svc.reg, filter.Projection())
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.reg.Read(core.CleanString(id))
}

// GetByEmail returns the first user with the given email.
func (svc *Service) GetByEmail(email string) (User, error) {
	email = core.CleanString(email, true /* lower */)
	for _, usr := range svc.reg.ReadAll() {
		if usr.Email == email {
			return usr, nil
		}
	}
	return User{}, registry.ErrNotFound
}

// GetTeacher returns the user with the given id when it is a teacher.
func (svc *Service) GetTeacher(id string) (User, error) {
	usr, err := svc.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if !usr.IsTeacher() {
		return User{}, registry.ErrNotFound
	}
	return usr, nil
}

func (svc *Service) GetStudent(id string) (User, error) {
	usr, err := svc.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if !usr.IsStudent() {
		return User{}, registry.ErrNotFound
	}
	return usr, nil
}

// Update loads the user, applies uu and saves the whole record.
func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	usr, err := svc.GetByID(id)
	if err != nil {
		return User{}, err
	}

	uu.Clean(usr)
	if err := svc.validate.Struct(uu); err != nil {
		return User{}, err
	}
	if err := svc.checkEmailUniqueness(uu.Email, usr.ID); err != nil {
		return User{}, err
	}

	usr.Name = uu.Name
	usr.Email = uu.Email
	usr.Phone = uu.Phone
	usr.Role = uu.Role
	usr.Status = uu.Status
	usr.UpdatedAt = svc.nowFunc().UTC()
	if uu.Revision != 0 {
		usr.Revision = uu.Revision
	}
	return svc.reg.Update(usr.ID, usr)
}

// ResetPassword sets a new password on the user.
func (svc *Service) ResetPassword(id string, rp ResetPassword) (User, error) {
	usr, err := svc.GetByID(id)
	if err != nil {
		return User{}, err
	}

	rp.name, rp.email = usr.Name, usr.Email
	if err := svc.validate.Struct(rp); err != nil {
		return User{}, err
	}
	if err := usr.SetPassword(rp.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = svc.nowFunc().UTC()
	return svc.reg.Update(usr.ID, usr)
}

// UpdateProfile is the student self-service edit of name and phone.
func (svc *Service) UpdateProfile(id string, up UpdateProfile) (User, error) {
	usr, err := svc.GetStudent(id)
	if err != nil {
		return User{}, err
	}

	up.Clean()
	if err := svc.validate.Struct(up); err != nil {
		return User{}, err
	}

	usr.Name = up.Name
	usr.Phone = up.Phone
	usr.UpdatedAt = svc.nowFunc().UTC()
	if up.Revision != 0 {
		usr.Revision = up.Revision
	}
	return svc.reg.Update(usr.ID, usr)
}

// Delete removes the user. It must be explicitly confirmed.
func (svc *Service) Delete(id string, confirmed bool) error {
	usr, err := svc.GetByID(id)
	if err != nil {
		return err
	}
	if !confirmed {
		return core.ErrConfirmationRequired
	}
	if !svc.reg.Delete(usr.ID) {
		return registry.ErrNotFound
	}
	return nil
}

// CountByRole returns the number of users per role.
func (svc *Service) CountByRole() map[string]int {
	counts := make(map[string]int, len(AllRoles))
	for _, role := range AllRoles {
		counts[role] = 0
	}
	for _, usr := range svc.reg.ReadAll() {
		counts[usr.Role]++
	}
	return counts
}

// SendWelcomeMails subscribes to the registry and welcomes every created user by email.
func (svc *Service) SendWelcomeMails() (cancel func()) {
	return svc.reg.Subscribe(func(evt registry.Event[User]) {
		if evt.Kind != registry.Created || evt.Record.Email == "" {
			return
		}
		usr := evt.Record
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      "Welcome",
			Template:     welcomeTmpl,
			TemplateData: usr,
		})
	})
}
