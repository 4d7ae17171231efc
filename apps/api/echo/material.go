package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/material"
)

const materialsPath = "/v1/materials"

type materialApi struct {
	svc *material.Service
}

func registerMaterialAPI(g *echo.Group, svc *material.Service) {
	api := materialApi{svc: svc}

	mg := g.Group("/materials")
	mg.GET("", api.query)
	mg.POST("", api.create)
	mg.GET("/stream", api.stream)

	dg := mg.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *materialApi) create(ctx echo.Context) error {
	var data material.NewMaterial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMaterial")
	}

	mat, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating material")
	}
	return created(ctx, materialsPath, mat)
}

func (api *materialApi) query(ctx echo.Context) error {
	var filter material.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []material.Detail{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *materialApi) stream(ctx echo.Context) error {
	var filter material.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), api.svc.Details)
}

func (api *materialApi) retrieve(ctx echo.Context) error {
	mat, err := contextObject[material.Detail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, mat)
}

func (api *materialApi) update(ctx echo.Context) error {
	mat, err := contextObject[material.Detail](ctx)
	if err != nil {
		return err
	}

	var data material.UpdateMaterial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMaterial")
	}

	mat, err = api.svc.Update(mat.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating material")
	}
	return updated(ctx, materialsPath+"/"+mat.ID, mat)
}

func (api *materialApi) destroy(ctx echo.Context) error {
	mat, err := contextObject[material.Detail](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(mat.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting material")
	}
	return deleted(ctx, materialsPath)
}
