//go:build integration

package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"

	"github.com/dulcecodigo/storefront/internal/domain/analytics"
	"github.com/dulcecodigo/storefront/internal/domain/loyalty"
	"github.com/dulcecodigo/storefront/internal/domain/order"
	"github.com/dulcecodigo/storefront/internal/domain/user"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgc, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgc.Terminate(context.Background())
	})

	connStr, err := pgc.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	pool, err := NewPool(ctx, startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool))

	users := NewUserRepository(pool)
	orders := NewOrderRepository(pool)
	ledger := NewLoyaltyRepository(pool)
	events := NewAnalyticsRepository(pool)

	u, err := users.Create(ctx, "Ana Martinez", "ana@example.com", []byte("hash"))
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	_, err = users.Create(ctx, "Otra Ana", "ana@example.com", []byte("hash"))
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	created, err := orders.Create(ctx, &order.Order{
		UserID:        &u.ID,
		CustomerName:  "Ana Martinez",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "555-0101",
		Address:       "Calle Luna 42",
		Items:         json.RawMessage(`[{"name":"Chispas Clasica","price":2.50,"quantity":3}]`),
		Total:         decimal.RequireFromString("36.97"),
		Status:        order.StatusPending,
		PointsEarned:  3,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.False(t, created.EmailSent)

	t.Run("concurrent credit is idempotent per order", func(t *testing.T) {
		var g errgroup.Group
		for i := 0; i < 5; i++ {
			g.Go(func() error {
				return ledger.CreditEarned(ctx, u.ID, created.ID, 3, "3 puntos ganados")
			})
		}
		require.NoError(t, g.Wait())

		entries, err := ledger.ListForUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, loyalty.EntryEarned, entries[0].Type)
		assert.Equal(t, int64(3), entries[0].Points)

		fresh, err := users.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), fresh.LoyaltyPoints, "balance must be credited exactly once")
	})

	t.Run("status update refreshes updated_at", func(t *testing.T) {
		updated, err := orders.UpdateStatus(ctx, created.ID, order.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, order.StatusConfirmed, updated.Status)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
	})

	t.Run("mark notified", func(t *testing.T) {
		marked, err := orders.MarkNotified(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, marked.EmailSent)
	})

	t.Run("unknown order id", func(t *testing.T) {
		_, err := orders.Get(ctx, 99999)
		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("items round-trip verbatim", func(t *testing.T) {
		got, err := orders.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, string(created.Items), string(got.Items))
	})

	t.Run("analytics summary excludes cancelled revenue", func(t *testing.T) {
		cancelled, err := orders.Create(ctx, &order.Order{
			CustomerName:  "Guest",
			CustomerEmail: "guest@example.com",
			CustomerPhone: "555-0102",
			Address:       "Calle Sol 7",
			Items:         json.RawMessage(`[]`),
			Total:         decimal.RequireFromString("100.00"),
			Status:        order.StatusPending,
		})
		require.NoError(t, err)
		_, err = orders.UpdateStatus(ctx, cancelled.ID, order.StatusCancelled)
		require.NoError(t, err)

		require.NoError(t, events.RecordEvent(ctx, &analytics.Event{Type: "order_created"}))

		summary, err := events.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), summary.TotalOrders, "cancelled orders are not counted")
		assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("36.97")),
			"revenue %s must exclude the cancelled order", summary.TotalRevenue)
		assert.Equal(t, int64(1), summary.TotalUsers)
	})
}
