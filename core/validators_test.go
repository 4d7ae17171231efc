package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	validate, translator := NewValidator()

	type form struct {
		Name  string `json:"name" validate:"notblank"`
		Code  string `json:"code" validate:"omitempty,alphanum_"`
		Date  string `json:"date" validate:"omitempty,date"`
		Start string `json:"start_time" validate:"omitempty,clock"`
		Price int    `json:"price" validate:"gt=0"`
		Room  string `json:"room" validate:"required"`
	}

	tests := []struct {
		name string
		form form
		want map[string]string
	}{
		{
			name: "valid",
			form: form{Name: "IELTS", Code: "C_101", Date: "2025-10-20", Start: "18:00", Price: 1, Room: "P.201"},
		},
		{
			name: "invalid",
			form: form{Name: "  ", Code: "C-101", Date: "20/10/2025", Start: "6pm"},
			want: map[string]string{
				"name":       "this field cannot be blank",
				"code":       "only alphanumeric characters and underscores are allowed",
				"date":       "date must be a valid date (YYYY-MM-DD)",
				"start_time": "start_time must be a valid time (HH:MM)",
				"price":      "price must be > 0",
				"room":       "this field is required",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.form)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			fldErrs, ok := FieldErrors(err, translator)
			require.True(t, ok)
			assert.Equal(t, tt.want, fldErrs)
		})
	}
}

func TestFieldErrors(t *testing.T) {
	_, translator := NewValidator()

	fldErrs, ok := FieldErrors(errors.Wrap(NewFieldError("email", "email already exists"), "creating user"), translator)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"email": "email already exists"}, fldErrs)

	_, ok = FieldErrors(errors.New("boom"), translator)
	assert.False(t, ok)

	assert.True(t, IsShutdown(errors.Wrap(NewShutdownError("integrity"), "ctx")))
	assert.False(t, IsShutdown(ErrConfirmationRequired))
}
