package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/hr_notify/internal/models"
)

func TestOpen_SQLiteMigratesAccounts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gdb, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	assert.True(t, gdb.Migrator().HasTable(&models.Account{}))
	assert.NoError(t, Ping(ctx, gdb))
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), DriverSQLite, "")
	require.Error(t, err)

	_, err = Open(context.Background(), "mongodb", "mongodb://localhost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported db driver")
}
