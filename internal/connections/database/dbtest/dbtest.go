// Package dbtest opens the Postgres database used by repository tests.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"food-order/internal/connections/database"
)

// EnvDSN names the variable holding the test database URL.
const EnvDSN = "FOOD_TEST_DATABASE_URL"

// Pool connects to the database named by EnvDSN and applies the schema.
// The test is skipped when the variable is unset. Tests share the database,
// so they should use fresh ids rather than truncating tables.
func Pool(t testing.TB) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, database.EnsureSchema(ctx, pool))
	return pool
}
