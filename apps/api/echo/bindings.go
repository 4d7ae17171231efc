package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
)

const (
	objectKey    = "object"
	confirmParam = "confirm"
)

// bindQuery binds the query params only, whatever the request method.
func bindQuery(ctx echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, dst); err != nil {
		return errors.Wrap(err, "binding query params")
	}
	return nil
}

// confirmed reads the `?confirm=true` a destructive action requires.
func confirmed(ctx echo.Context) (bool, error) {
	var ok bool
	if err := echo.QueryParamsBinder(ctx).Bool(confirmParam, &ok).BindError(); err != nil {
		return false, core.NewFieldError(confirmParam, "must be true or false")
	}
	return ok, nil
}

// created answers a create: the new object and the list to navigate back to.
func created(ctx echo.Context, listPath string, obj interface{}) error {
	ctx.Response().Header().Set(echo.HeaderLocation, listPath)
	return ctx.JSON(http.StatusCreated, obj)
}

// updated answers an update: the object and its detail location.
func updated(ctx echo.Context, detailPath string, obj interface{}) error {
	ctx.Response().Header().Set(echo.HeaderLocation, detailPath)
	return ctx.JSON(http.StatusOK, obj)
}

// deleted answers a delete with the list to navigate back to.
func deleted(ctx echo.Context, listPath string) error {
	ctx.Response().Header().Set(echo.HeaderLocation, listPath)
	return ctx.NoContent(http.StatusNoContent)
}
