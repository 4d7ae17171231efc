package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/registry"
)

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if fldErrs, ok := core.FieldErrors(err, translator); ok {
			code = http.StatusBadRequest
			if len(fldErrs) > 0 {
				message = fldErrs
			} else {
				message = err.Error()
			}
		} else {
			switch origErr := errors.Cause(err); origErr {
			case registry.ErrNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			case registry.ErrConflict:
				code = http.StatusConflict
				message = origErr.Error()
			case core.ErrConfirmationRequired:
				code = http.StatusBadRequest
				message = origErr.Error()
			default:
				if herr, ok := origErr.(*echo.HTTPError); ok {
					if herr.Internal != nil {
						if internal, ok := herr.Internal.(*echo.HTTPError); ok {
							herr = internal
						}
					}
					code = herr.Code
					message = herr.Message
					break
				}

				// any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{
					"request_id": ctx.Response().Header().Get(echo.HeaderXRequestID),
					"method":     ctx.Request().Method,
					"path":       ctx.Request().URL.Path,
				})
				if ctx.Echo().Debug {
					message = err.Error()
				}

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
