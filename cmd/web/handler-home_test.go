package main

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_home(t *testing.T) {
	server := startTestServer(t)
	ctx := context.Background()

	doc, err := server.Client().GetDoc(ctx, "/")
	require.NoError(t, err)

	require.Equal(t, 1, doc.Find("a[href='/applicant/login']").Length())
	require.Equal(t, 1, doc.Find("a[href='/agent/login']").Length())
}

func Test_application_healthy(t *testing.T) {
	server := startTestServer(t)

	resp, err := server.Client().Get(context.Background(), "/api/healthy")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `"status":"ok"`)
	require.Contains(t, string(body), `"sessions":`)
}
