package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/schedule"
)

const schedulePath = "/v1/schedule"

type scheduleApi struct {
	svc *schedule.Service
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service) {
	api := scheduleApi{svc: svc}

	sg := g.Group("/schedule")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/stream", api.stream)

	dg := sg.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}

	evt, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return created(ctx, schedulePath, evt)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	var filter schedule.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []schedule.Detail{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *scheduleApi) stream(ctx echo.Context) error {
	var filter schedule.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), api.svc.Details)
}

func (api *scheduleApi) retrieve(ctx echo.Context) error {
	evt, err := contextObject[schedule.Detail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *scheduleApi) update(ctx echo.Context) error {
	evt, err := contextObject[schedule.Detail](ctx)
	if err != nil {
		return err
	}

	var data schedule.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}

	evt, err = api.svc.Update(evt.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return updated(ctx, schedulePath+"/"+evt.ID, evt)
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	evt, err := contextObject[schedule.Detail](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(evt.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return deleted(ctx, schedulePath)
}
