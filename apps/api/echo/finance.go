package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/finance"
)

const financePath = "/v1/finance"

type financeApi struct {
	svc *finance.Service
}

func registerFinanceAPI(g *echo.Group, svc *finance.Service) {
	api := financeApi{svc: svc}

	fg := g.Group("/finance")
	fg.GET("", api.query)
	fg.POST("", api.create)
	fg.GET("/summary", api.summary)
	fg.GET("/stream", api.stream)

	dg := fg.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *financeApi) create(ctx echo.Context) error {
	var data finance.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}

	rec, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating finance record")
	}
	return created(ctx, financePath, rec)
}

func (api *financeApi) query(ctx echo.Context) error {
	var filter finance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []finance.Record{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *financeApi) summary(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Summary())
}

func (api *financeApi) stream(ctx echo.Context) error {
	var filter finance.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), func(recs []finance.Record) []finance.Record { return recs })
}

func (api *financeApi) retrieve(ctx echo.Context) error {
	rec, err := contextObject[finance.Record](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *financeApi) update(ctx echo.Context) error {
	rec, err := contextObject[finance.Record](ctx)
	if err != nil {
		return err
	}

	var data finance.UpdateRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}

	rec, err = api.svc.Update(rec.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating finance record")
	}
	return updated(ctx, financePath+"/"+rec.ID, rec)
}

func (api *financeApi) destroy(ctx echo.Context) error {
	rec, err := contextObject[finance.Record](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(rec.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting finance record")
	}
	return deleted(ctx, financePath)
}
