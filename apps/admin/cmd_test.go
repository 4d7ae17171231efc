package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/langcenter/apps/di"
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/services/spreadsheet"
)

func setup(t *testing.T) {
	t.Helper()
	orig := newContainerFunc
	newContainerFunc = func(logOut io.Writer) (*di.Container, error) {
		conf := &core.Config{Env: "TEST", TestMode: true, Debug: true, AppName: "Language Center", Seed: true}
		return di.New(conf, io.Discard)
	}
	t.Cleanup(func() { newContainerFunc = orig })
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func Test_export(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "export.xlsx")

	out, err := run(t, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Users: 70 rows\n")
	assert.Contains(t, out, "Schedule: 5 rows\n")
	assert.Contains(t, out, "Attendance: 12 rows\n")
	assert.Contains(t, out, "Certificates: 5 rows\n")
	assert.Contains(t, out, "Materials: 5 rows\n")

	f := openWorkbook(t, path)
	assert.Equal(t, []string{"Users", "Classes", "Courses", "Finance", "Schedule", "Assignments", "Attendance", "Certificates", "Materials"}, f.GetSheetList())

	rows, err := f.GetRows("Classes")
	require.NoError(t, err)
	assert.Len(t, rows, 7)
}

func Test_import(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, spreadsheet.Write(&buf, spreadsheet.Sheet{
		Name:   "Import",
		Header: []string{"Name", "Email", "Phone", "Role", "Password"},
		Rows: [][]interface{}{
			{"Phạm Thu", "thu.pham@tdd.edu", "", "Student", "Xk92#mq!"},
			{"Hồ Nam", "nope", "", "Student", "Xk92#mq!"},
		},
	}))
	in := filepath.Join(dir, "users.xlsx")
	require.NoError(t, os.WriteFile(in, buf.Bytes(), 0o600))
	bad := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(bad, []byte("name,email\n"), 0o600))
	result := filepath.Join(dir, "result.xlsx")

	t.Run("missing file flag", func(t *testing.T) {
		_, err := run(t, "import")
		assert.Error(t, err)
	})
	t.Run("not a workbook", func(t *testing.T) {
		_, err := run(t, "import", "-f", bad)
		require.Error(t, err)
		assert.Equal(t, bad+": not a valid xlsx file", err.Error())
	})
	t.Run("import", func(t *testing.T) {
		out, err := run(t, "import", "-f", in, "-o", result)
		require.NoError(t, err)

		var res spreadsheet.ImportResult
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, []string{"HV0051"}, res.Imported)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, 3, res.Errors[0].Row)
		assert.Contains(t, res.Errors[0].Fields, "email")

		rows, err := openWorkbook(t, result).GetRows("Users")
		require.NoError(t, err)
		assert.Len(t, rows, 72) // header + 70 seeded + 1 imported
		assert.Equal(t, "HV0051", rows[len(rows)-1][0])
	})
}
