package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/class"
)

const classesPath = "/v1/classes"

type classApi struct {
	svc *class.Service
}

func registerClassAPI(g *echo.Group, svc *class.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/stream", api.stream)

	dg := cg.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}

	cls, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return created(ctx, classesPath, cls)
}

func (api *classApi) query(ctx echo.Context) error {
	var filter class.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []class.Detail{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *classApi) stream(ctx echo.Context) error {
	var filter class.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), api.svc.Details)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := contextObject[class.Detail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) update(ctx echo.Context) error {
	cls, err := contextObject[class.Detail](ctx)
	if err != nil {
		return err
	}

	var data class.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}

	cls, err = api.svc.Update(cls.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return updated(ctx, classesPath+"/"+cls.ID, cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	cls, err := contextObject[class.Detail](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(cls.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return deleted(ctx, classesPath)
}
