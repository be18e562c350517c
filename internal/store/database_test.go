package store

import (
	"strings"
	"testing"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatalf("MigrationNames() error = %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded migrations")
	}
	if names[0] != "001_create_scrape_runs.sql" {
		t.Errorf("first migration = %q, want scrape_runs (other tables reference it)", names[0])
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("migrations out of order: %q before %q", names[i-1], names[i])
		}
	}
	for _, n := range names {
		if !strings.HasSuffix(n, ".sql") {
			t.Errorf("unexpected migration file %q", n)
		}
	}
}
