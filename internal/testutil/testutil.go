package testutil

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	"userDirectory/internal/config"
	"userDirectory/internal/db"
)

// OpenInMemoryDB opens a named in-memory SQLite database with the schema applied.
// The database is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	// Shared cache so the name identifies one database for the whole test.
	d, err := db.Open(config.DriverSQLite, "file:"+name+"?mode=memory&cache=shared", db.Options{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(d) })
	return d
}

// DBName derives a database name from the running test, so parallel or
// sequential tests never share rows.
func DBName(t *testing.T) string {
	t.Helper()
	r := strings.NewReplacer("/", "_", " ", "_", "#", "_")
	return r.Replace(t.Name())
}
