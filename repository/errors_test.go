package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"userDirectory/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"validation", &models.FieldTooLongError{Field: "name", Max: 100, Len: 101}, KindTooLong},
		{"pg truncation", &pgconn.PgError{Code: "22001"}, KindTooLong},
		{"pg check", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23514"}), KindTooLong},
		{"pg unique", &pgconn.PgError{Code: "23505"}, KindDuplicateKey},
		{"pg other", &pgconn.PgError{Code: "08006"}, KindUnknown},
		{"sqlite check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, KindTooLong},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, KindDuplicateKey},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, KindUnknown},
		{"gorm duplicate", gorm.ErrDuplicatedKey, KindDuplicateKey},
		{"gorm not found", gorm.ErrRecordNotFound, KindNotFound},
		{"other", errors.New("connection reset"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("handler: %w", fail("create user", &pgconn.PgError{Code: "23505"}))
	assert.Equal(t, KindDuplicateKey, KindOf(wrapped))
}

func TestFail_KeepsExistingFailure(t *testing.T) {
	inner := notFound("update user")
	assert.Same(t, inner, fail("outer", inner))
}

func TestKind_Message(t *testing.T) {
	assert.Equal(t, "Some data is too long for the database fields.", KindTooLong.Message())
	assert.Equal(t, "A user with that email already exists.", KindDuplicateKey.Message())
	assert.Equal(t, "Something went wrong. Please try again.", KindUnknown.Message())
	assert.Empty(t, KindNone.Message())
}
