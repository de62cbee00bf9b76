// Package testdb opens throwaway databases for repository and use case tests. Only
// _test files import it. The container-backed server is behind the integration build tag.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"donations/internal/adapters/out/postgres/orderrepo"
	"donations/internal/adapters/out/postgres/orderspackagerepo"
	"donations/internal/adapters/out/postgres/packagerepo"
	"donations/internal/adapters/out/postgres/syncissuerepo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted row type.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&packagerepo.PackageDTO{},
		&packagerepo.PackagesLocationDTO{},
		&orderspackagerepo.OrdersPackageDTO{},
		&syncissuerepo.SyncIssueDTO{},
	}
}

// NewSQLite returns an isolated in-memory database with the schema migrated. Each test
// gets its own named database so parallel tests never share rows.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}
