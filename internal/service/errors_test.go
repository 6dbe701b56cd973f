package service

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "title",
				Message: "cannot be empty",
			},
			want: "validation error on field title: cannot be empty",
		},
		{
			name: "empty field",
			err: &ValidationError{
				Field:   "",
				Message: "invalid",
			},
			want: "validation error on field : invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("original error"),
			msg:     "context",
			wantNil: false,
			wantMsg: "context: original error",
		},
		{
			name:    "empty message",
			err:     errors.New("original error"),
			msg:     "",
			wantNil: false,
			wantMsg: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			assert.Equal(t, tt.wantMsg, got.Error())
			assert.ErrorIs(t, got, tt.err, "WrapError() should wrap original error")
		})
	}
}

func TestErrorConstants(t *testing.T) {
	for _, err := range []error{ErrInvalidInput, ErrNotFound, ErrConflict} {
		require.Error(t, err)
		assert.ErrorIs(t, err, err)
	}
	assert.NotErrorIs(t, ErrNotFound, ErrConflict)
}

func TestValidationError_MatchesErrInvalidInput(t *testing.T) {
	var err error = WrapError(&ValidationError{Field: "ids", Message: "must not contain duplicates"}, "reorder")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFromValidationError(t *testing.T) {
	type request struct {
		ID    int64   `validate:"gt=0"`
		Title string  `validate:"required,max=3"`
		IDs   []int64 `validate:"unique"`
	}
	validate := validator.New(validator.WithRequiredStructEnabled())

	tests := []struct {
		name      string
		req       request
		wantField string
		wantMsg   string
	}{
		{
			name:      "gt",
			req:       request{ID: 0, Title: "ok"},
			wantField: "id",
			wantMsg:   "must be greater than 0",
		},
		{
			name:      "required",
			req:       request{ID: 1},
			wantField: "title",
			wantMsg:   "cannot be empty",
		},
		{
			name:      "max",
			req:       request{ID: 1, Title: "long"},
			wantField: "title",
			wantMsg:   "is too long, max: 3",
		},
		{
			name:      "unique",
			req:       request{ID: 1, Title: "ok", IDs: []int64{1, 1}},
			wantField: "ids",
			wantMsg:   "must not contain duplicates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fromValidationError(validate.Struct(tt.req))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}
