package postgres

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/pixelmart/storefront/pkg/outbox"
)

func setupOutboxStore(t *testing.T) (*OutboxStore, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("requires docker")
	}
	ctx := context.Background()

	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("pixelmart"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, pgURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, NewRepository(slog.Default(), pool).EnsureSchema(ctx))
	return NewOutboxStore(slog.Default(), pool), pool
}

func insertEvent(t *testing.T, pool *pgxpool.Pool, aggregateID string) {
	t.Helper()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, traceparent)
		 VALUES ('order', $1, 'OrderCreated', '{}', '')`, aggregateID)
	require.NoError(t, err)
}

func TestLockBatch_LeasedRowsAreInvisibleToOtherRelays(t *testing.T) {
	store, pool := setupOutboxStore(t)
	ctx := context.Background()
	insertEvent(t, pool, "o1")

	events, err := store.LockBatch(ctx, "relay-a", 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "o1", events[0].AggregateID)

	events, err = store.LockBatch(ctx, "relay-b", 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLockBatch_ReclaimsExpiredLeases(t *testing.T) {
	store, pool := setupOutboxStore(t)
	ctx := context.Background()
	insertEvent(t, pool, "o1")

	events, err := store.LockBatch(ctx, "relay-a", 10, time.Second)
	require.NoError(t, err)
	require.Len(t, events, 1)

	// relay-a never reports back; once the lease runs out another relay
	// picks the row up again.
	time.Sleep(1500 * time.Millisecond)

	events, err = store.LockBatch(ctx, "relay-b", 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "o1", events[0].AggregateID)
}

func TestMarkSentAndMarkFailedAreTerminal(t *testing.T) {
	store, pool := setupOutboxStore(t)
	ctx := context.Background()
	insertEvent(t, pool, "o1")
	insertEvent(t, pool, "o2")

	events, err := store.LockBatch(ctx, "relay-a", 10, time.Second)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var sent, failed outbox.Event
	for _, e := range events {
		if e.AggregateID == "o1" {
			sent = e
		} else {
			failed = e
		}
	}
	require.NoError(t, store.MarkSent(ctx, []int64{sent.ID}))
	require.NoError(t, store.MarkFailed(ctx, failed.ID, "broker unavailable"))

	// Neither sent nor failed rows come back, even after the lease expires.
	time.Sleep(1500 * time.Millisecond)
	events, err = store.LockBatch(ctx, "relay-b", 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, events)
}
