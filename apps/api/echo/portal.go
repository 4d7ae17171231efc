package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/assignment"
	"github.com/trezcool/langcenter/core/attendance"
	"github.com/trezcool/langcenter/core/certificate"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/finance"
	"github.com/trezcool/langcenter/core/material"
	"github.com/trezcool/langcenter/core/schedule"
	"github.com/trezcool/langcenter/core/user"
)

// portalApi serves the teacher and student portals: read-only views scoped to one user,
// plus the student's own profile edit.
type portalApi struct {
	users        *user.Service
	classes      *class.Service
	schedule     *schedule.Service
	finance      *finance.Service
	certificates *certificate.Service
	assignments  *assignment.Service
	attendance   *attendance.Service
	materials    *material.Service
}

func registerPortalAPI(g *echo.Group, deps Deps) {
	api := portalApi{
		users:        deps.UserSvc,
		classes:      deps.ClassSvc,
		schedule:     deps.ScheduleSvc,
		finance:      deps.FinanceSvc,
		certificates: deps.CertificateSvc,
		assignments:  deps.AssignmentSvc,
		attendance:   deps.AttendanceSvc,
		materials:    deps.MaterialSvc,
	}

	tg := g.Group("/teachers/:id", objectMiddleware(api.users.GetTeacher))
	tg.GET("/classes", api.teacherClasses)
	tg.GET("/schedule", api.teacherSchedule)
	tg.GET("/assignments", api.teacherAssignments)
	tg.GET("/materials", api.teacherMaterials)

	sg := g.Group("/students/:id", objectMiddleware(api.users.GetStudent))
	sg.GET("/profile", api.retrieveProfile)
	sg.PUT("/profile", api.updateProfile)
	sg.GET("/finance", api.studentFinance)
	sg.GET("/certificates", api.studentCertificates)
	sg.GET("/grades", api.studentGrades)
	sg.GET("/attendance", api.studentAttendance)
}

func (api *portalApi) teacherClasses(ctx echo.Context) error {
	teacher, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	var filter class.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}

	classes, err := api.classes.ByTeacher(teacher.ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying teacher classes")
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *portalApi) teacherSchedule(ctx echo.Context) error {
	teacher, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}

	events, err := api.schedule.ByTeacher(teacher.ID, ctx.QueryParam("date"))
	if err != nil {
		return errors.Wrap(err, "querying teacher schedule")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *portalApi) retrieveProfile(ctx echo.Context) error {
	student, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, student)
}

func (api *portalApi) updateProfile(ctx echo.Context) error {
	student, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}

	var data user.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}

	student, err = api.users.UpdateProfile(student.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return updated(ctx, "/v1/students/"+student.ID+"/profile", student)
}

func (api *portalApi) studentFinance(ctx echo.Context) error {
	student, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	var filter finance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	filter.StudentID = student.ID
	return ctx.JSON(http.StatusOK, api.finance.List(filter))
}

func (api *portalApi) teacherAssignments(ctx echo.Context) error {
	teacher, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	var filter assignment.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}

	asgs, err := api.assignments.ByTeacher(teacher.ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying teacher assignments")
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *portalApi) teacherMaterials(ctx echo.Context) error {
	teacher, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	var filter material.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}

	mats, err := api.materials.ByTeacher(teacher.ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying teacher materials")
	}
	return ctx.JSON(http.StatusOK, mats)
}

func (api *portalApi) studentCertificates(ctx echo.Context) error {
	student, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	var filter certificate.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.certificates.ByStudent(student.ID, filter))
}

func (api *portalApi) studentGrades(ctx echo.Context) error {
	student, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}

	grades, err := api.assignments.Grades(student.ID)
	if err != nil {
		return errors.Wrap(err, "querying student grades")
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *portalApi) studentAttendance(ctx echo.Context) error {
	student, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	var filter attendance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.attendance.ByStudent(student.ID, filter))
}
