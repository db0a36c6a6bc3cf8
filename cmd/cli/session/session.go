// Package session holds the CLI commands managing the stored agent session.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/authstore"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "session",
	Title: "Session operations",
}

const cookieStorageKey = "backend_session"

// StateDir is where the CLI persists its session between invocations.
func StateDir() string {
	if dir := os.Getenv("MINWON_STATE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minwonctl"
	}
	return filepath.Join(home, ".minwonctl")
}

// BackendURL is the backend origin the CLI talks to.
func BackendURL() string {
	if url := os.Getenv("MINWON_BACKEND_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// Logger builds the CLI logger at info level; MINWON_DEBUG enables debug.
func Logger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("MINWON_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Credentials loads the stored backend session cookie.
func Credentials(ctx context.Context) backend.Credentials {
	storage := authstore.NewFileStorage(StateDir(), cookieStorageKey)
	blob, ok, err := storage.Get(ctx)
	if err != nil || !ok {
		return backend.Credentials{}
	}
	var value string
	if err = json.Unmarshal(blob, &value); err != nil {
		return backend.Credentials{}
	}
	return backend.Credentials{SessionCookie: &http.Cookie{Name: "JSESSIONID", Value: value}}
}

// Store builds the agent auth store over the file-backed state directory and
// restores the persisted identity.
func Store(ctx context.Context, client *backend.Client, logger *slog.Logger) *authstore.Store {
	storage := authstore.NewFileStorage(StateDir(), authstore.AgentIdentityKey)
	creds := Credentials(ctx)
	store := authstore.NewStore(storage, func(ctx context.Context) error {
		return client.TerminateSession(ctx, creds)
	}, logger)
	store.Initialize(ctx)
	return store
}

func init() {
	Login.Flags().StringP("username", "u", "", "agent username")
	Login.Flags().StringP("password", "p", "", "agent password")
	_ = Login.MarkFlagRequired("username")
	_ = Login.MarkFlagRequired("password")
}

var Login = &cobra.Command{
	Use:     "login",
	GroupID: "session",
	Short:   "Sign in as an agent",
	Long:    "Authenticates against the complaint backend and stores the session locally.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := Logger()
		client := backend.NewClient(BackendURL(), logger)

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		identity, cookie, err := client.AgentLogin(ctx, username, password)
		if err != nil {
			return err
		}

		blob, err := json.Marshal(cookie.Value)
		if err != nil {
			return err
		}
		if err = authstore.NewFileStorage(StateDir(), cookieStorageKey).Set(ctx, blob); err != nil {
			return err
		}

		store := Store(ctx, client, logger)
		if err = store.Login(ctx, identity); err != nil {
			return err
		}

		fmt.Printf("signed in as %s (%s)\n", identity.Name, identity.Role)
		return nil
	},
}

var Logout = &cobra.Command{
	Use:     "logout",
	GroupID: "session",
	Short:   "Sign out",
	Long:    "Terminates the backend session and clears the stored credentials.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := Logger()
		client := backend.NewClient(BackendURL(), logger)

		store := Store(ctx, client, logger)
		store.Logout(ctx)
		if err := authstore.NewFileStorage(StateDir(), cookieStorageKey).Delete(ctx); err != nil {
			return err
		}

		fmt.Println("signed out")
		return nil
	},
}

var Whoami = &cobra.Command{
	Use:     "whoami",
	GroupID: "session",
	Short:   "Show the stored identity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		logger := Logger()
		client := backend.NewClient(BackendURL(), logger)

		store := Store(ctx, client, logger)
		if !store.Authenticated() {
			fmt.Println("not signed in")
			return nil
		}
		identity := store.Identity()
		fmt.Printf("%s (%s)\n", identity.Name, identity.Role)
		return nil
	},
}
