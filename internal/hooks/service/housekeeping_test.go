package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/promptside/hooklistener/internal/hooks/service"
	"github.com/promptside/hooklistener/internal/hooks/store"
	"github.com/promptside/hooklistener/internal/hooks/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingTrimsOldDeliveries(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ctx := context.Background()
	stale := store.Delivery{
		UUID:       "stale-delivery",
		Action:     "sale_confirm",
		ReceivedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	fresh := store.Delivery{
		UUID:       "fresh-delivery",
		Action:     "sale_confirm",
		ReceivedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Deliveries().Record(ctx, stale))
	require.NoError(t, st.Deliveries().Record(ctx, fresh))

	logger := slog.New(slog.DiscardHandler)
	hk := service.NewHousekeepingService(st, logger, 10*time.Millisecond, 24*time.Hour)

	hk.Start()
	defer hk.Stop()

	require.Eventually(t, func() bool {
		_, err := st.Deliveries().Get(ctx, stale.UUID)
		return err != nil
	}, time.Second, 5*time.Millisecond, "stale delivery should be trimmed")

	_, err = st.Deliveries().Get(ctx, fresh.UUID)
	require.NoError(t, err, "fresh delivery must survive the trim")
}

func TestHousekeepingStopWaitsForWorker(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.DiscardHandler)
	hk := service.NewHousekeepingService(st, logger, 10*time.Millisecond, 24*time.Hour)

	hk.Start()

	done := make(chan struct{})
	go func() {
		hk.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestHousekeepingDefaults(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	logger := slog.New(slog.DiscardHandler)
	hk := service.NewHousekeepingService(st, logger, 0, 0)
	require.Equal(t, time.Hour, hk.Interval)
	require.Equal(t, 7*24*time.Hour, hk.Retention)
}
