package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/user"
)

// import columns: Name | Email | Phone | Role | Password
const (
	colName = iota
	colEmail
	colPhone
	colRole
	colPassword
)

type (
	UserCreator interface {
		Create(nu user.NewUser) (user.User, error)
	}

	// RowError reports why a row was not imported. Rows are numbered like in the sheet (header = 1).
	RowError struct {
		Row    int               `json:"row"`
		Fields map[string]string `json:"fields"`
	}

	ImportResult struct {
		Imported []string   `json:"imported"` // ids of the created users
		Errors   []RowError `json:"errors"`
	}

	UserImporter struct {
		users      UserCreator
		translator ut.Translator
		logger     core.Logger
	}
)

func NewUserImporter(users UserCreator, translator ut.Translator, logger core.Logger) *UserImporter {
	return &UserImporter{users: users, translator: translator, logger: logger}
}

// Import creates a user per row of the first sheet. A bad row is reported and skipped.
func (imp *UserImporter) Import(r io.Reader) (ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{}, core.NewFieldError("file", "not a valid xlsx file")
	}
	defer func() {
		if err := f.Close(); err != nil {
			imp.logger.Error("closing imported workbook", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return ImportResult{}, core.NewFieldError("file", "the workbook has no sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportResult{}, errors.Wrapf(err, "reading rows of %q", sheet)
	}

	res := ImportResult{Imported: []string{}, Errors: []RowError{}}
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue // header
		}

		usr, err := imp.users.Create(user.NewUser{
			Name:     cell(row, colName),
			Email:    cell(row, colEmail),
			Phone:    cell(row, colPhone),
			Role:     parseRole(cell(row, colRole)),
			Password: cell(row, colPassword),
		})
		if err != nil {
			fldErrs, ok := core.FieldErrors(err, imp.translator)
			if !ok {
				return res, errors.Wrapf(err, "importing row %d", i+1)
			}
			res.Errors = append(res.Errors, RowError{Row: i + 1, Fields: fldErrs})
			continue
		}
		res.Imported = append(res.Imported, usr.ID)
	}

	imp.logger.Info(fmt.Sprintf("imported %d users, %d rows rejected", len(res.Imported), len(res.Errors)))
	return res, nil
}

func cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRole accepts a role value or its display name, e.g. "Student" or "Học viên".
func parseRole(raw string) string {
	raw = core.CleanString(raw)
	for _, role := range user.Roles {
		if strings.EqualFold(raw, role.Value) || strings.EqualFold(raw, role.Name) {
			return role.Value
		}
	}
	return raw
}
