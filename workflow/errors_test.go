package workflow

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "validation",
			err:  Validationf("bad input"),
			want: KindValidation,
		},
		{
			name: "conflict",
			err:  Conflictf("lost the race"),
			want: KindConflict,
		},
		{
			name: "forbidden",
			err:  Forbiddenf("not yours"),
			want: KindForbidden,
		},
		{
			name: "not found",
			err:  NotFoundf("gone"),
			want: KindNotFound,
		},
		{
			name: "wrapped workflow error keeps its kind",
			err:  fmt.Errorf("submit: %w", Conflictf("lost the race")),
			want: KindConflict,
		},
		{
			name: "gorm record not found",
			err:  gorm.ErrRecordNotFound,
			want: KindNotFound,
		},
		{
			name: "mysql lock wait timeout is a retryable conflict",
			err:  &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"},
			want: KindConflict,
		},
		{
			name: "mysql deadlock is a retryable conflict",
			err:  &mysql.MySQLError{Number: 1213, Message: "Deadlock found"},
			want: KindConflict,
		},
		{
			name: "other mysql errors stay internal",
			err:  &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
			want: KindInternal,
		},
		{
			name: "anything else is internal",
			err:  errors.New("boom"),
			want: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessageWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := &Error{Kind: KindInternal, Message: "save approval", Err: cause}

	assert.EqualError(t, err, "save approval: connection reset")
	assert.ErrorIs(t, err, cause)
}
