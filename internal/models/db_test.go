package models

import (
	"fmt"
	"testing"
	"time"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "whatever", DBPoolConfig{}); err == nil {
		t.Fatalf("unknown driver should be rejected")
	}
}

func TestMigrateCreatesAllTables(t *testing.T) {
	dsn := fmt.Sprintf("file:models_migrate_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := Open("sqlite", dsn, DBPoolConfig{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	for _, model := range allModels() {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("table for %T missing", model)
		}
	}
	if err := Migrate(nil); err == nil {
		t.Fatalf("nil db should fail")
	}
}

func TestAdminIsProtected(t *testing.T) {
	if !(&Admin{Username: " Admin "}).IsProtected() {
		t.Fatalf("admin account should be protected")
	}
	if (&Admin{Username: "desk01"}).IsProtected() {
		t.Fatalf("desk account should not be protected")
	}
	var nilAdmin *Admin
	if nilAdmin.IsProtected() {
		t.Fatalf("nil admin should not be protected")
	}
}
