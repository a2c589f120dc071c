package testutil

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const usersSchema = `CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT NOT NULL
)`

// OpenUsersDB opens a file-backed SQLite database under t.TempDir with the
// users table created. A file is used instead of :memory: so the schema
// survives connections being closed between lookups.
func OpenUsersDB(t *testing.T) *sqlx.DB {
	t.Helper()
	d, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	d.SetMaxIdleConns(0)
	if _, err := d.Exec(usersSchema); err != nil {
		t.Fatalf("create users table: %v", err)
	}
	return d
}

func SeedUser(t *testing.T, d *sqlx.DB, id int64, name, role string) {
	t.Helper()
	if _, err := d.Exec(`INSERT INTO users (id, name, role) VALUES (?, ?, ?)`, id, name, role); err != nil {
		t.Fatalf("seed user %d: %v", id, err)
	}
}

// DropUsers removes the users table so subsequent queries fail.
func DropUsers(t *testing.T, d *sqlx.DB) {
	t.Helper()
	if _, err := d.Exec(`DROP TABLE users`); err != nil {
		t.Fatalf("drop users table: %v", err)
	}
}
