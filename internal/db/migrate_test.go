package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrations, migrationsDir+"/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 migrations, got %v", files)
	}

	for _, f := range files {
		b, err := fs.ReadFile(migrations, f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		body := string(b)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Fatalf("%s is missing goose annotations", f)
		}
	}
}
