package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/attendance"
)

const attendancePath = "/v1/attendance"

type attendanceApi struct {
	svc *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service) {
	api := attendanceApi{svc: svc}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.POST("", api.rollCall)
	ag.GET("/summary", api.summary)
	ag.GET("/stream", api.stream)

	dg := ag.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *attendanceApi) rollCall(ctx echo.Context) error {
	var data attendance.RollCall
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RollCall")
	}

	recs, err := api.svc.Take(data)
	if err != nil {
		return errors.Wrap(err, "taking roll call")
	}
	return created(ctx, attendancePath, recs)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	var filter attendance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []attendance.Detail{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	var filter attendance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Summarize(filter))
}

func (api *attendanceApi) stream(ctx echo.Context) error {
	var filter attendance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), api.svc.Details)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	rec, err := contextObject[attendance.Detail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	rec, err := contextObject[attendance.Detail](ctx)
	if err != nil {
		return err
	}

	var data attendance.UpdateRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}

	rec, err = api.svc.Update(rec.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating attendance")
	}
	return updated(ctx, attendancePath+"/"+rec.ID, rec)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	rec, err := contextObject[attendance.Detail](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(rec.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	return deleted(ctx, attendancePath)
}
