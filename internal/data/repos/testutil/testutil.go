package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/voclab/voclab-backend/internal/data/db"
	"github.com/voclab/voclab-backend/internal/pkg/logger"
)

var (
	sharedDB  *gorm.DB
	sharedErr error
	openOnce  sync.Once
)

// Logger returns a quiet logger for repo and service tests.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("test")
	if err != nil {
		tb.Fatalf("new logger: %v", err)
	}
	return log
}

// DB opens a migrated database once per test binary. When TEST_POSTGRES_DSN
// is set it runs against that Postgres instance; otherwise it falls back to
// an in-memory sqlite database so the suite stays self-contained.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	openOnce.Do(func() {
		cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn != "" {
			sharedDB, sharedErr = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			sharedDB, sharedErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
		}
		if sharedErr != nil {
			return
		}
		sharedErr = db.AutoMigrateAll(sharedDB)
	})

	if sharedErr != nil {
		tb.Fatalf("open test database: %v", sharedErr)
	}
	return sharedDB
}

// Tx begins a transaction that is rolled back when the test ends, keeping
// tests isolated from each other on the shared database.
func Tx(tb testing.TB) *gorm.DB {
	tb.Helper()

	tx := DB(tb).Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() { tx.Rollback() })
	return tx
}
