package main

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func Test_tokenExpired(t *testing.T) {
	assert.False(t, tokenExpired("not-a-jwt"))
	assert.False(t, tokenExpired(signedToken(t, jwt.MapClaims{"sub": "hong"})))
	assert.False(t, tokenExpired(signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})))
	assert.True(t, tokenExpired(signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	})))
}

func Test_application_listStatePerView(t *testing.T) {
	app := &application{sessionManager: scs.New()}
	ctx, err := app.sessionManager.Load(context.Background(), "")
	require.NoError(t, err)

	state := app.listState(ctx, applicantView)
	state.EditKeyword("소음")
	state.Search()
	app.putListState(ctx, applicantView, state)

	// The committed filter belongs to the applicant view only.
	assert.Equal(t, "소음", app.listState(ctx, applicantView).Keyword)
	assert.Empty(t, app.listState(ctx, agentView).Keyword)
}

func Test_applicantDisplayName(t *testing.T) {
	assert.Equal(t, "민원인", applicantDisplayName("not-a-jwt"))
	assert.Equal(t, "민원인", applicantDisplayName(signedToken(t, jwt.MapClaims{})))
	assert.Equal(t, "hong", applicantDisplayName(signedToken(t, jwt.MapClaims{"sub": "hong"})))
}
