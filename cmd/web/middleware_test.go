package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/contexthelpers"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgentSession struct {
	loading       bool
	authenticated bool
	identity      models.Identity
}

func (s fakeAgentSession) Loading() bool             { return s.loading }
func (s fakeAgentSession) Authenticated() bool       { return s.authenticated }
func (s fakeAgentSession) Identity() models.Identity { return s.identity }

func runAgentGuard(t *testing.T, session fakeAgentSession) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reachedNext := false
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		reachedNext = true
		assert.True(t, contexthelpers.IsAuthenticated(r.Context()))
		assert.Equal(t, session.identity, contexthelpers.AuthenticatedIdentity(r.Context()))
	})
	renderLoading := func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("loading"))
	}

	guard := agentGuard(func(*http.Request) agentSession { return session }, renderLoading, next)
	recorder := httptest.NewRecorder()
	guard.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/agent/complaints", nil))
	return recorder, reachedNext
}

func Test_agentGuard_ordering(t *testing.T) {
	// While restoration is in flight the guard must show the placeholder,
	// never a redirect, regardless of the authentication outcome.
	for _, authenticated := range []bool{false, true} {
		recorder, reachedNext := runAgentGuard(t, fakeAgentSession{loading: true, authenticated: authenticated})
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "loading")
		assert.False(t, reachedNext)
	}
}

func Test_agentGuard_unauthenticated(t *testing.T) {
	recorder, reachedNext := runAgentGuard(t, fakeAgentSession{})

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/agent/login", recorder.Header().Get("Location"))
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
	assert.False(t, reachedNext)
}

func Test_agentGuard_authenticated(t *testing.T) {
	session := fakeAgentSession{
		authenticated: true,
		identity:      models.Identity{Name: "김주사", Role: "AGENT"},
	}
	recorder, reachedNext := runAgentGuard(t, session)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, reachedNext)
}
