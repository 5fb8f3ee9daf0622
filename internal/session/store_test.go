package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorent/internal/models"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	user := models.User{ID: "u1", Username: "alice", Role: models.RoleCustomer}
	sess, err := store.Create(ctx, user, "bearer-token")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.User.Username)
	assert.Equal(t, "bearer-token", got.Token)
}

func TestMemoryStore_Destroy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, models.User{ID: "u1"}, "tok")
	require.NoError(t, err)

	require.NoError(t, store.Destroy(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Destroying twice is a no-op.
	assert.NoError(t, store.Destroy(ctx, sess.ID))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	sess, err := store.Create(ctx, models.User{ID: "u1"}, "tok")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Refresh(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, models.User{ID: "u1", Phone: "111"}, "tok")
	require.NoError(t, err)

	sess.User.Phone = "222"
	require.NoError(t, store.Refresh(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "222", got.User.Phone)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, _ := store.Create(ctx, models.User{ID: "u1", Phone: "111"}, "tok")

	got, _ := store.Get(ctx, sess.ID)
	got.User.Phone = "mutated"

	again, _ := store.Get(ctx, sess.ID)
	assert.Equal(t, "111", again.User.Phone)
}

func TestMemoryStore_MissingSession(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
