package main

import (
	"context"
	"testing"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_listCache_staleRefreshLoses(t *testing.T) {
	cache := newListCache()
	ctx := context.Background()

	older := []models.ComplaintSummary{{ID: "1", Title: "old"}}
	newer := []models.ComplaintSummary{{ID: "2", Title: "new"}}

	// A refresh that started first but finishes last must not overwrite the
	// result of the refresh that started after it.
	slowStarted := make(chan struct{})
	slowFinish := make(chan struct{})
	done := make(chan []models.ComplaintSummary)
	go func() {
		items, err := cache.Refresh(ctx, "session", func(context.Context) ([]models.ComplaintSummary, error) {
			close(slowStarted)
			<-slowFinish
			return older, nil
		})
		assert.NoError(t, err)
		done <- items
	}()

	<-slowStarted
	items, err := cache.Refresh(ctx, "session", func(context.Context) ([]models.ComplaintSummary, error) {
		return newer, nil
	})
	require.NoError(t, err)
	assert.Equal(t, newer, items)

	close(slowFinish)
	assert.Equal(t, newer, <-done)

	cached, ok := cache.Items("session")
	require.True(t, ok)
	assert.Equal(t, newer, cached)
}

func Test_listCache_keysAreIsolated(t *testing.T) {
	cache := newListCache()
	ctx := context.Background()

	first := []models.ComplaintSummary{{ID: "1"}}
	_, err := cache.Refresh(ctx, "a", func(context.Context) ([]models.ComplaintSummary, error) {
		return first, nil
	})
	require.NoError(t, err)

	_, ok := cache.Items("b")
	assert.False(t, ok)

	cache.Drop("a")
	_, ok = cache.Items("a")
	assert.False(t, ok)
}
