package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/course"
)

const coursesPath = "/v1/courses"

type courseApi struct {
	svc *course.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/stream", api.stream)

	dg := cg.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	crs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return created(ctx, coursesPath, crs)
}

func (api *courseApi) query(ctx echo.Context) error {
	var filter course.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *courseApi) stream(ctx echo.Context) error {
	var filter course.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), func(courses []course.Course) []course.Course { return courses })
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}

	crs, err = api.svc.Update(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return updated(ctx, coursesPath+"/"+crs.ID, crs)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	crs, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(crs.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return deleted(ctx, coursesPath)
}
