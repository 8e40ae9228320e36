// Package dbtest opens throwaway sqlite databases for repository and
// service tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saikambala25/goat/pkg/db"
	"github.com/saikambala25/goat/pkg/db/models"
)

// Open returns an isolated in-memory database with every model migrated.
// The database lives until the test's cleanup closes the pool.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// One connection keeps the shared-cache database alive and serialises writes.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

// OpenClient wraps Open in the runtime db.Client.
func OpenClient(t testing.TB) *db.Client {
	t.Helper()
	return db.NewFromConn(Open(t))
}
