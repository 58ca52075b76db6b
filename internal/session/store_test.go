package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/invoice-studio/internal/invoice"
	"github.com/noah-isme/invoice-studio/internal/session"
)

func newStore(t *testing.T) (*session.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewStore(client, time.Minute), mr
}

func TestPutGetRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	doc := invoice.Document{InvoiceNumber: "INV-009", Currency: "$"}
	require.NoError(t, store.Put(ctx, "abc", doc))

	var got invoice.Document
	require.NoError(t, store.Get(ctx, "abc", &got))
	require.Equal(t, "INV-009", got.InvoiceNumber)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store, _ := newStore(t)
	var got invoice.Document
	err := store.Get(context.Background(), "nope", &got)
	require.True(t, errors.Is(err, session.ErrNotFound))
}

func TestGetAfterExpiryReturnsNotFound(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "abc", invoice.Document{}))

	mr.FastForward(2 * time.Minute)

	var got invoice.Document
	err := store.Get(ctx, "abc", &got)
	require.True(t, errors.Is(err, session.ErrNotFound))
}

func TestGetRefreshesExpiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "abc", invoice.Document{}))

	mr.FastForward(45 * time.Second)
	var got invoice.Document
	require.NoError(t, store.Get(ctx, "abc", &got))

	mr.FastForward(45 * time.Second)
	require.NoError(t, store.Get(ctx, "abc", &got), "read should have reset the ttl")
}

func TestDelete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "abc", invoice.Document{}))
	require.NoError(t, store.Delete(ctx, "abc"))

	var got invoice.Document
	require.True(t, errors.Is(store.Get(ctx, "abc", &got), session.ErrNotFound))

	require.NoError(t, store.Delete(ctx, "abc"), "deleting absent session is not an error")
}
