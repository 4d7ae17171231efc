package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core/registry"
)

// streamView sends the view items as server-sent events: once on open, then after each registry change.
// It returns when the client goes away.
func streamView[T registry.Record[T], R any](ctx echo.Context, view *registry.View[T], render func([]T) R) error {
	defer view.Close()

	// only the latest list matters to a client that lags behind
	updates := make(chan []T, 1)
	view.OnChange(func(items []T) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- items:
		default:
		}
	})
	view.Watch()

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	if err := writeEvent(resp, render(view.Items())); err != nil {
		return err
	}
	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case items := <-updates:
			if err := writeEvent(resp, render(items)); err != nil {
				return err
			}
		}
	}
}

func writeEvent(resp *echo.Response, data interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encoding event")
	}
	if _, err := fmt.Fprintf(resp, "event: list\ndata: %s\n\n", b); err != nil {
		return errors.Wrap(err, "writing event")
	}
	resp.Flush()
	return nil
}
