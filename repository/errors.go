package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"userDirectory/models"
)

// Kind tags a storage failure.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindTooLong
	KindDuplicateKey
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindTooLong:
		return "too_long"
	case KindDuplicateKey:
		return "duplicate_key"
	default:
		return "unknown"
	}
}

// Message is the operator-facing text for a recoverable failure.
func (k Kind) Message() string {
	switch k {
	case KindNone:
		return ""
	case KindNotFound:
		return "User not found."
	case KindTooLong:
		return "Some data is too long for the database fields."
	case KindDuplicateKey:
		return "A user with that email already exists."
	default:
		return "Something went wrong. Please try again."
	}
}

// Failure is the error returned by every repository operation.
type Failure struct {
	Kind Kind
	Op   string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf reports the failure kind carried by err. A nil error is KindNone and
// an error that is not a *Failure is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}

// Postgres SQLSTATE codes.
const (
	pgStringDataRightTruncation = "22001"
	pgCheckViolation            = "23514"
	pgUniqueViolation           = "23505"
)

// Classify maps a driver or validation error to a Kind. Bound violations are
// checked first, then uniqueness; anything else is unknown.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case isTooLong(err):
		return KindTooLong
	case isDuplicate(err):
		return KindDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}

func isTooLong(err error) bool {
	var fe *models.FieldTooLongError
	if errors.As(err, &fe) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgStringDataRightTruncation || pgErr.Code == pgCheckViolation
	}
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode == sqlite3.ErrConstraintCheck
	}
	return false
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return err
	}
	return &Failure{Kind: Classify(err), Op: op, Err: err}
}

func notFound(op string) error {
	return &Failure{Kind: KindNotFound, Op: op, Err: gorm.ErrRecordNotFound}
}
