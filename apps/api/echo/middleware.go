package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// objectMiddleware loads the `:id` object before the handler runs. An unknown id ends the request with a 404.
func objectMiddleware[T any](load func(id string) (T, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := load(ctx.Param("id"))
			if err != nil {
				return errors.Wrapf(err, "loading %s", ctx.Param("id"))
			}
			ctx.Set(objectKey, obj)
			return next(ctx)
		}
	}
}

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}
