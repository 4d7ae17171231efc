package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/langcenter/core/finance"
)

type (
	classCounts struct {
		Classes  map[string]int `json:"classes"`  // per status
		Students map[string]int `json:"students"` // enrolled, per class status
	}

	// Dashboard holds the admin portal counters.
	Dashboard struct {
		Users    map[string]int  `json:"users"` // per role
		Courses  map[string]int  `json:"courses"`
		Classes  classCounts     `json:"classes"`
		Finance  finance.Summary `json:"finance"`
		Schedule map[string]int  `json:"schedule"`
	}
)

func registerDashboardAPI(g *echo.Group, deps Deps) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		var dash Dashboard
		dash.Users = deps.UserSvc.CountByRole()
		dash.Courses = deps.CourseSvc.CountByStatus()
		dash.Classes.Classes, dash.Classes.Students = deps.ClassSvc.CountByStatus()
		dash.Finance = deps.FinanceSvc.Summary()
		dash.Schedule = deps.ScheduleSvc.CountByStatus()
		return ctx.JSON(http.StatusOK, dash)
	})
}
