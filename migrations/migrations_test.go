package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no migrations embedded")
	}

	body, err := fs.ReadFile(FS, "00001_create_users.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"-- +goose Up", "-- +goose Down", "users_username_key", "users_email_key"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("migration missing %q", want)
		}
	}
}
