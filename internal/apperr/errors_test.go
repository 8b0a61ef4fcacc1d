package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"not found", apperr.ErrNotFound, apperr.KindNotFound},
		{"wrapped not found", fmt.Errorf("find link: %w", apperr.ErrNotFound), apperr.KindNotFound},
		{"forbidden", apperr.ErrForbidden, apperr.KindAuthorization},
		{"bad credentials", apperr.ErrInvalidCredentials, apperr.KindAuthorization},
		{"validation", apperr.Invalid("url", "must be absolute"), apperr.KindValidation},
		{"username taken", apperr.ErrUsernameTaken, apperr.KindConflict},
		{"store failure", errors.New("connection reset"), apperr.KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("create link: %w", apperr.Invalid("description", "at most 2 lines"))

	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "description", verr.Field)
	assert.Equal(t, "invalid description: at most 2 lines", verr.Error())
}
