package fetch_test

import (
	"sync"
	"testing"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/fetch"
	"github.com/stretchr/testify/assert"
)

func TestTokensSupersede(t *testing.T) {
	var tokens fetch.Tokens

	first := tokens.Next()
	assert.True(t, tokens.Latest(first))

	second := tokens.Next()
	assert.False(t, tokens.Latest(first), "older token must be rejected")
	assert.True(t, tokens.Latest(second))
}

func TestTokensConcurrent(t *testing.T) {
	var tokens fetch.Tokens
	var wg sync.WaitGroup

	const n = 100
	issued := make([]uint64, n)
	for i := range issued {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			issued[i] = tokens.Next()
		}(i)
	}
	wg.Wait()

	latest := 0
	for i, token := range issued {
		if tokens.Latest(token) {
			latest++
			assert.Equal(t, uint64(n), issued[i])
		}
	}
	assert.Equal(t, 1, latest, "exactly one token is the latest")
}
