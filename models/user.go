package models

import (
	"fmt"
	"unicode/utf8"
)

// Column bounds for the user table, counted in characters.
const (
	MaxNameLen  = 100
	MaxEmailLen = 120
	MaxRoleLen  = 50
)

// User represents a directory entry managed from the admin panel.
// It maps to the `user` table.
type User struct {
	ID    int64  `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null;check:chk_user_name_len,length(name) <= 100" json:"name"`
	Email string `gorm:"size:120;not null;uniqueIndex:idx_user_email;check:chk_user_email_len,length(email) <= 120" json:"email"`
	Role  string `gorm:"size:50;not null;check:chk_user_role_len,length(role) <= 50" json:"role"`
}

// TableName pins the table name; gorm would otherwise pluralize it.
func (User) TableName() string {
	return "user"
}

// FieldTooLongError reports a field that exceeds its column bound.
type FieldTooLongError struct {
	Field string
	Max   int
	Len   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s is %d characters, limit is %d", e.Field, e.Len, e.Max)
}

// Validate checks the column bounds. Uniqueness is left to the database.
func (u *User) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"name", u.Name, MaxNameLen},
		{"email", u.Email, MaxEmailLen},
		{"role", u.Role, MaxRoleLen},
	}
	for _, f := range fields {
		if n := utf8.RuneCountInString(f.value); n > f.max {
			return &FieldTooLongError{Field: f.name, Max: f.max, Len: n}
		}
	}
	return nil
}
