package client

import (
	"context"
	"testing"
	"time"

	"go-inventory-client/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReceivesStockUpdates(t *testing.T) {
	srv := startServer(t)
	c := srv.loggedIn(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, func(ev Event) { events <- ev })
	}()
	require.Eventually(t, func() bool { return srv.hub.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	created, err := c.Products.CreateProduct(newFields("Widget", "WID-1", 3, "2", ""))
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, ws.TypeStockUpdate, ev.Type)
		assert.Equal(t, ws.ActionProductCreated, ev.Action)
		require.NotNil(t, ev.Product)
		assert.Equal(t, created.ID, ev.Product.ID)
		assert.Equal(t, adminEmail, ev.User)
	case <-time.After(5 * time.Second):
		t.Fatal("no stock update received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchRequiresSession(t *testing.T) {
	c := startServer(t).client()

	err := c.Watch(context.Background(), func(Event) {})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestWatchReconnects(t *testing.T) {
	srv := startServer(t)
	c := srv.loggedIn(t)

	for i := 0; i < 30; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- c.Watch(ctx, func(Event) {})
		}()
		require.Eventually(t, func() bool { return srv.hub.Count() == 1 }, 5*time.Second, 5*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatalf("watch %d did not stop", i)
		}
		require.Eventually(t, func() bool { return srv.hub.Count() == 0 }, 5*time.Second, 5*time.Millisecond)
	}

	// The stream still works after the churn.
	_, err := c.Products.CreateProduct(newFields("Widget", "WID-1", 3, "2", ""))
	require.NoError(t, err)
}

func TestWatchEndsWhenServerStops(t *testing.T) {
	srv := startServer(t)
	c := srv.loggedIn(t)

	done := make(chan error, 1)
	go func() {
		done <- c.Watch(context.Background(), func(Event) {})
	}()
	require.Eventually(t, func() bool { return srv.hub.Count() == 1 }, 5*time.Second, 10*time.Millisecond)

	srv.hub.Close()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrConnectivity)
	case <-time.After(5 * time.Second):
		t.Fatal("watch survived hub shutdown")
	}
	assert.Eventually(t, func() bool { return srv.hub.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}
