package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/assignment"
)

const assignmentsPath = "/v1/assignments"

type assignmentApi struct {
	svc *assignment.Service
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service) {
	api := assignmentApi{svc: svc}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/stream", api.stream)

	dg := ag.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/grades", api.grade)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}

	asg, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return created(ctx, assignmentsPath, asg)
}

func (api *assignmentApi) query(ctx echo.Context) error {
	var filter assignment.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []assignment.Detail{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *assignmentApi) stream(ctx echo.Context) error {
	var filter assignment.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), api.svc.Details)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	asg, err := contextObject[assignment.Detail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, asg)
}

func (api *assignmentApi) update(ctx echo.Context) error {
	asg, err := contextObject[assignment.Detail](ctx)
	if err != nil {
		return err
	}

	var data assignment.UpdateAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}

	asg, err = api.svc.Update(asg.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return updated(ctx, assignmentsPath+"/"+asg.ID, asg)
}

func (api *assignmentApi) grade(ctx echo.Context) error {
	asg, err := contextObject[assignment.Detail](ctx)
	if err != nil {
		return err
	}

	var data assignment.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}

	asg, err = api.svc.Grade(asg.ID, data)
	if err != nil {
		return errors.Wrap(err, "grading assignment")
	}
	return updated(ctx, assignmentsPath+"/"+asg.ID, asg)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	asg, err := contextObject[assignment.Detail](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(asg.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return deleted(ctx, assignmentsPath)
}
