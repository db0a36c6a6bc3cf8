package authstore_test

import (
	"context"
	"io"
	"testing"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/authstore"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreAcrossRestart(t *testing.T) {
	ctx := context.Background()
	logger := testhelpers.NewLogger(io.Discard)
	space := authstore.NewMemorySpace()
	storage := space.Storage(authstore.AgentIdentityKey)

	store := authstore.NewStore(storage, nil, logger)
	store.Initialize(ctx)
	require.NoError(t, store.Login(ctx, models.Identity{Name: "kim", Role: "AGENT"}))

	// A new store over the same storage stands in for a process restart.
	// No network call is involved in restoring the session.
	restarted := authstore.NewStore(storage, nil, logger)
	assert.True(t, restarted.Loading())
	assert.False(t, restarted.Authenticated(), "not authenticated before restore completes")

	restarted.Initialize(ctx)
	assert.False(t, restarted.Loading())
	assert.True(t, restarted.Authenticated())
	assert.Equal(t, models.Identity{Name: "kim", Role: "AGENT"}, restarted.Identity())
}

func TestInitializeDiscardsBadBlob(t *testing.T) {
	ctx := context.Background()
	space := authstore.NewMemorySpace()
	storage := space.Storage(authstore.AgentIdentityKey)
	require.NoError(t, storage.Set(ctx, []byte("{not json")))

	store := authstore.NewStore(storage, nil, testhelpers.NewLogger(io.Discard))
	store.Initialize(ctx)

	assert.False(t, store.Loading())
	assert.False(t, store.Authenticated())
	_, ok, err := storage.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "undecodable blob is discarded")
}

func TestInitializeIdempotent(t *testing.T) {
	ctx := context.Background()
	space := authstore.NewMemorySpace()
	store := authstore.NewStore(space.Storage(authstore.AgentIdentityKey), nil, testhelpers.NewLogger(io.Discard))

	store.Initialize(ctx)
	require.NoError(t, store.Login(ctx, models.Identity{Name: "kim", Role: "AGENT"}))

	// A repeated Initialize must not re-run restoration and clobber state.
	store.Initialize(ctx)
	assert.True(t, store.Authenticated())
}

func TestLogoutClearsStateEvenWhenRequestFails(t *testing.T) {
	ctx := context.Background()
	space := authstore.NewMemorySpace()
	storage := space.Storage(authstore.AgentIdentityKey)

	terminate := func(context.Context) error {
		return errors.New("connection refused")
	}
	store := authstore.NewStore(storage, terminate, testhelpers.NewLogger(io.Discard))
	store.Initialize(ctx)
	require.NoError(t, store.Login(ctx, models.Identity{Name: "kim", Role: "AGENT"}))

	store.Logout(ctx)

	assert.False(t, store.Authenticated())
	_, ok, err := storage.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "persisted blob cleared despite failed logout request")
}

func TestKeyNamespacesAreDisjoint(t *testing.T) {
	ctx := context.Background()
	space := authstore.NewMemorySpace()
	tokenStorage := space.Storage(authstore.ApplicantTokenKey)
	require.NoError(t, tokenStorage.Set(ctx, []byte(`"bearer-token"`)))

	store := authstore.NewStore(space.Storage(authstore.AgentIdentityKey), nil, testhelpers.NewLogger(io.Discard))
	store.Initialize(ctx)

	// The applicant token under its own key must not be read as an identity.
	assert.False(t, store.Authenticated())

	store.Logout(ctx)
	_, ok, err := tokenStorage.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "agent logout must not touch the applicant token key")
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := authstore.NewFileStorage(t.TempDir(), authstore.AgentIdentityKey)

	_, ok, err := storage.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Set(ctx, []byte(`{"name":"kim","role":"AGENT"}`)))
	blob, ok, err := storage.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"kim","role":"AGENT"}`, string(blob))

	require.NoError(t, storage.Delete(ctx))
	_, ok, err = storage.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing blob is not an error.
	require.NoError(t, storage.Delete(ctx))
}
