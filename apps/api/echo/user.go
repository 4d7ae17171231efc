package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/user"
	"github.com/trezcool/langcenter/services/spreadsheet"
)

const (
	usersPath = "/v1/users"
	xlsxMIME  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type userApi struct {
	svc      *user.Service
	importer *spreadsheet.UserImporter
}

func registerUserAPI(g *echo.Group, svc *user.Service, importer *spreadsheet.UserImporter) {
	api := userApi{svc: svc, importer: importer}

	ug := g.Group("/users")
	ug.GET("", api.query)
	ug.POST("", api.create)
	ug.GET("/roles", api.queryRoles)
	ug.GET("/export", api.export)
	ug.POST("/import", api.importXLSX)
	ug.GET("/stream", api.stream)

	// detail endpoints
	dg := ug.Group("/:id", objectMiddleware(svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/password", api.resetPassword)
}

// Handlers

func (api *userApi) create(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	usr, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return created(ctx, usersPath, usr)
}

func (api *userApi) query(ctx echo.Context) error {
	var filter user.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.User{})
	}
	return ctx.JSON(http.StatusOK, api.svc.List(filter))
}

func (api *userApi) stream(ctx echo.Context) error {
	var filter user.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	return streamView(ctx, api.svc.View(filter), func(users []user.User) []user.User { return users })
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) update(ctx echo.Context) error {
	usr, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}

	usr, err = api.svc.Update(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return updated(ctx, usersPath+"/"+usr.ID, usr)
}

func (api *userApi) resetPassword(ctx echo.Context) error {
	usr, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}

	var data user.ResetPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetPassword")
	}

	usr, err = api.svc.ResetPassword(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "resetting password")
	}
	return updated(ctx, usersPath+"/"+usr.ID, usr)
}

func (api *userApi) destroy(ctx echo.Context) error {
	usr, err := contextObject[user.User](ctx)
	if err != nil {
		return err
	}
	confirm, err := confirmed(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(usr.ID, confirm); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return deleted(ctx, usersPath)
}

func (api *userApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api *userApi) export(ctx echo.Context) error {
	var filter user.QueryFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, spreadsheet.UserSheet(api.svc.List(filter))); err != nil {
		return errors.Wrap(err, "exporting users")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="users.xlsx"`)
	return ctx.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (api *userApi) importXLSX(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewFieldError("file", "this field is required")
	}
	file, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer file.Close()

	res, err := api.importer.Import(file)
	if err != nil {
		return errors.Wrap(err, "importing users")
	}
	return ctx.JSON(http.StatusOK, res)
}
