// Package di wires the registries, services and infrastructure shared by the api and admin apps.
package di

import (
	"io"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/assignment"
	"github.com/trezcool/langcenter/core/attendance"
	"github.com/trezcool/langcenter/core/certificate"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/finance"
	"github.com/trezcool/langcenter/core/material"
	"github.com/trezcool/langcenter/core/schedule"
	"github.com/trezcool/langcenter/core/user"
	emailsvc "github.com/trezcool/langcenter/services/email"
	logsvc "github.com/trezcool/langcenter/services/logger"
	"github.com/trezcool/langcenter/services/spreadsheet"
)

type Container struct {
	Conf           *core.Config
	Logger         core.Logger
	Validate       *validator.Validate
	Translator     ut.Translator
	MailSvc        core.EmailService
	UserSvc        *user.Service
	CourseSvc      *course.Service
	ClassSvc       *class.Service
	FinanceSvc     *finance.Service
	ScheduleSvc    *schedule.Service
	CertificateSvc *certificate.Service
	AssignmentSvc  *assignment.Service
	AttendanceSvc  *attendance.Service
	MaterialSvc    *material.Service
	Importer       *spreadsheet.UserImporter
}

func newLogger(out io.Writer, conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(out, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	user.RegisterValidators(validate, translator)
	course.RegisterValidators(validate, translator)
	class.RegisterValidators(validate, translator)
	finance.RegisterValidators(validate, translator)
	schedule.RegisterValidators(validate, translator)
	certificate.RegisterValidators(validate, translator)
	assignment.RegisterValidators(validate, translator)
	attendance.RegisterValidators(validate, translator)
	material.RegisterValidators(validate, translator)
	return validate, translator
}

// New returns the wired dependencies. The registries start empty unless conf.Seed is set.
func New(conf *core.Config, logOut io.Writer) (*Container, error) {
	c := &Container{Conf: conf}
	c.Logger = newLogger(logOut, conf)
	c.MailSvc = newEmailService(conf, c.Logger)
	c.Validate, c.Translator = newValidator()

	userReg := user.NewRegistry()
	courseReg := course.NewRegistry()
	classReg := class.NewRegistry()
	financeReg := finance.NewRegistry()
	eventReg := schedule.NewRegistry()
	certReg := certificate.NewRegistry()
	asgReg := assignment.NewRegistry()
	attReg := attendance.NewRegistry()
	matReg := material.NewRegistry()

	if conf.Seed {
		if err := user.Seed(userReg, time.Now()); err != nil {
			return nil, err
		}
		if err := course.Seed(courseReg); err != nil {
			return nil, err
		}
		if err := class.Seed(classReg); err != nil {
			return nil, err
		}
		if err := finance.Seed(financeReg); err != nil {
			return nil, err
		}
		if err := schedule.Seed(eventReg); err != nil {
			return nil, err
		}
		if err := certificate.Seed(certReg); err != nil {
			return nil, err
		}
		if err := assignment.Seed(asgReg); err != nil {
			return nil, err
		}
		if err := attendance.Seed(attReg); err != nil {
			return nil, err
		}
		if err := material.Seed(matReg); err != nil {
			return nil, errors.Wrap(err, "seeding registries")
		}
	}

	c.UserSvc = user.NewService(userReg, c.Validate, c.MailSvc)
	c.CourseSvc = course.NewService(courseReg, c.Validate)
	c.ClassSvc = class.NewService(classReg, c.CourseSvc, c.UserSvc, c.Validate)
	c.FinanceSvc = finance.NewService(financeReg, c.UserSvc, c.Validate)
	c.ScheduleSvc = schedule.NewService(eventReg, c.ClassSvc, c.UserSvc, c.Validate)
	c.CertificateSvc = certificate.NewService(certReg, c.CourseSvc, c.UserSvc, c.Validate)
	c.AssignmentSvc = assignment.NewService(asgReg, c.ClassSvc, c.UserSvc, c.Validate)
	c.AttendanceSvc = attendance.NewService(attReg, c.ClassSvc, c.UserSvc, c.Validate)
	c.MaterialSvc = material.NewService(matReg, c.CourseSvc, c.UserSvc, c.Validate)
	c.Importer = spreadsheet.NewUserImporter(c.UserSvc, c.Translator, c.Logger)
	return c, nil
}

// Sheets returns every registry as a worksheet, in the admin portal menu order.
func (c *Container) Sheets() []spreadsheet.Sheet {
	return []spreadsheet.Sheet{
		spreadsheet.UserSheet(c.UserSvc.List(user.QueryFilter{})),
		spreadsheet.ClassSheet(c.ClassSvc.List(class.QueryFilter{})),
		spreadsheet.CourseSheet(c.CourseSvc.List(course.QueryFilter{})),
		spreadsheet.FinanceSheet(c.FinanceSvc.List(finance.QueryFilter{})),
		spreadsheet.ScheduleSheet(c.ScheduleSvc.List(schedule.QueryFilter{})),
		spreadsheet.AssignmentSheet(c.AssignmentSvc.List(assignment.QueryFilter{})),
		spreadsheet.AttendanceSheet(c.AttendanceSvc.List(attendance.QueryFilter{})),
		spreadsheet.CertificateSheet(c.CertificateSvc.List(certificate.QueryFilter{})),
		spreadsheet.MaterialSheet(c.MaterialSvc.List(material.QueryFilter{})),
	}
}
