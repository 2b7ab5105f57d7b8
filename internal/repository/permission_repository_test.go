package repository

import (
	"strings"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"toolbox-backend/internal/models"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=toolbox dbname=toolbox sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestUpsertPermissionsSendsFalseFlags(t *testing.T) {
	db := newDryRunDB(t)
	rows := permissionRows("bob", map[string]bool{"snake_game": false, "dashboard": true})

	stmt := upsertPermissions(db, &rows).Statement
	sql := stmt.SQL.String()

	if !strings.Contains(sql, `ON CONFLICT ("username","module") DO UPDATE SET "allowed"="excluded"."allowed"`) {
		t.Fatalf("expected upsert on (username, module), got %s", sql)
	}

	var flags []bool
	for _, v := range stmt.Vars {
		if b, ok := v.(bool); ok {
			flags = append(flags, b)
		}
	}
	// rows are sorted by module: dashboard, snake_game
	if len(flags) != 2 || flags[0] != true || flags[1] != false {
		t.Fatalf("expected allowed values [true false], got %v (sql %s)", flags, sql)
	}
	if rows[1].Module != "snake_game" || rows[1].Allowed {
		t.Fatalf("expected revoked row to stay false, got %+v", rows[1])
	}
}

func TestUserPermissionAllowedHasNoColumnDefault(t *testing.T) {
	db := newDryRunDB(t)
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&models.UserPermission{}); err != nil {
		t.Fatalf("parse model: %v", err)
	}

	field := stmt.Schema.LookUpField("allowed")
	if field == nil {
		t.Fatalf("expected allowed field")
	}
	if field.HasDefaultValue {
		t.Fatalf("allowed must not carry a default, got %q", field.DefaultValue)
	}
}
