package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestVehiclesMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_vehicles_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS vehicles",
		"license_plate text NOT NULL",
		"purchase_price numeric(12,2) NOT NULL",
		"chk_vehicles_partner_status",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_vehicles_license_plate",
		"CREATE INDEX IF NOT EXISTS idx_vehicles_status",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestServiceEntriesMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_service_entries_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS service_entries",
		"service_value numeric(12,2) NOT NULL",
		"ON DELETE CASCADE",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOutboxMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_outbox_events_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"idx_outbox_events_unpublished",
		"ux_outbox_events_event_aggregate",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
