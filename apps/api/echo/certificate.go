package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/certificate"
)

const certificatesPath = "/v1/certificates"

type certificateApi struct {
	svc *certificate.Service
}

func registerCertificateAPI(g *echo.Group, svc *certificate.Service) {
	api := certificateApi{svc: svc}

	cg := g.Group("/certificates")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/stream", api.stream)

	dg := cg.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/issue", api.issue)
}

func (api *certificateApi) create(ctx echo.Context) error {
	var data certificate.NewCertificate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCertificate")
	}

	cert, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating certificate")
	}
	return created(ctx, certificatesPath, cert)
}

func (api *certificateApi) query(ctx echo.Context) error {
	var filter certificate.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []certificate.Detail{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *certificateApi) stream(ctx echo.Context) error {
	var filter certificate.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), api.svc.Details)
}

func (api *certificateApi) retrieve(ctx echo.Context) error {
	cert, err := contextObject[certificate.Detail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cert)
}

func (api *certificateApi) update(ctx echo.Context) error {
	cert, err := contextObject[certificate.Detail](ctx)
	if err != nil {
		return err
	}

	var data certificate.UpdateCertificate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCertificate")
	}

	cert, err = api.svc.Update(cert.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating certificate")
	}
	return updated(ctx, certificatesPath+"/"+cert.ID, cert)
}

func (api *certificateApi) issue(ctx echo.Context) error {
	cert, err := contextObject[certificate.Detail](ctx)
	if err != nil {
		return err
	}

	var data certificate.IssueCertificate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to IssueCertificate")
	}

	cert, err = api.svc.Issue(cert.ID, data)
	if err != nil {
		return errors.Wrap(err, "issuing certificate")
	}
	return updated(ctx, certificatesPath+"/"+cert.ID, cert)
}

func (api *certificateApi) destroy(ctx echo.Context) error {
	cert, err := contextObject[certificate.Detail](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(cert.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting certificate")
	}
	return deleted(ctx, certificatesPath)
}
