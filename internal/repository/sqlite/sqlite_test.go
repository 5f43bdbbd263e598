package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func initAll(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewEmployeeRepository(db).Init(ctx))
	require.NoError(t, NewDepartmentRepository(db).Init(ctx))
	require.NoError(t, NewHolidayRepository(db).Init(ctx))
}

func TestInit_Idempotent(t *testing.T) {
	db := setupDB(t)
	initAll(t, db)
	initAll(t, db)
}
