package db

import (
	"testing"

	"skylight/internal/config"
	"skylight/models"
)

func TestInitializeRequiresSQLitePath(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{URL: "", SQLitePath: "  "})
	if err == nil {
		t.Fatal("expected error when sqlite path is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestOpenMemoryMigratesSchema(t *testing.T) {
	t.Parallel()

	database, err := OpenMemory("skylight-db-test")
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}

	row := models.Setting{Key: "probe", Value: "ok"}
	if err := database.Create(&row).Error; err != nil {
		t.Fatalf("insert into migrated schema: %v", err)
	}

	var loaded models.Setting
	if err := database.First(&loaded, "key = ?", "probe").Error; err != nil {
		t.Fatalf("read back setting: %v", err)
	}
	if loaded.Value != "ok" {
		t.Fatalf("expected value %q, got %q", "ok", loaded.Value)
	}
}
