package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/langcenter/apps/di"
	"github.com/trezcool/langcenter/core"
	"github.com/trezcool/langcenter/core/user"
)

func newTestContainer(t *testing.T) *di.Container {
	t.Helper()
	conf := &core.Config{Env: "TEST", TestMode: true, Debug: true, AppName: "Language Center", Seed: true}
	c, err := di.New(conf, io.Discard)
	require.NoError(t, err)
	return c
}

func Test_resetAdminPassword(t *testing.T) {
	tests := []struct {
		name      string
		pwds      []string
		wantField string
	}{
		{name: "mismatch", pwds: []string{"s3cr3t!pass", "other!pass"}, wantField: "password_confirm"},
		{name: "too short", pwds: []string{"abc", "abc"}, wantField: "password"},
		{name: "empty", pwds: []string{"", ""}, wantField: "password"},
		{name: "ok", pwds: []string{"s3cr3t!pass", "s3cr3t!pass"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContainer(t)
			before, err := c.UserSvc.GetByID(user.AdminID)
			require.NoError(t, err)

			calls := 0
			readPasswordFunc = func(fd int) ([]byte, error) {
				pwd := tt.pwds[calls]
				calls++
				return []byte(pwd), nil
			}

			err = resetAdminPassword(c.UserSvc)
			assert.Equal(t, 2, calls)
			if tt.wantField != "" {
				fldErrs, ok := core.FieldErrors(err, c.Translator)
				require.True(t, ok, "want validation error, got %v", err)
				assert.Contains(t, fldErrs, tt.wantField)
				return
			}
			require.NoError(t, err)
			after, err := c.UserSvc.GetByID(user.AdminID)
			require.NoError(t, err)
			assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
		})
	}
}

func Test_newRootCmd(t *testing.T) {
	cmd := newRootCmd()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serveCmd.Name())
	assert.NotNil(t, serveCmd.Flags().Lookup("addr"))
	assert.NotNil(t, serveCmd.Flags().Lookup("reset-admin-password"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log"))
}
