// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eatshare/eats-back/internal/db"
)

// New returns a migrated sqlite store private to t.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.New().String())
	conn, err := db.Open(sqlite.Open(dsn), logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
