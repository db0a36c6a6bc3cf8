package main

import (
	"context"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/authstore"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/listquery"
)

// Session keys. The agent identity and the applicant token live in disjoint
// namespaces; nothing reads across them.
const agentIdentitySessionKey = authstore.AgentIdentityKey
const applicantTokenSessionKey = authstore.ApplicantTokenKey
const backendCookieSessionKey = "backend_session"

// List views. A browser can be signed into both areas at once, so every
// piece of list state is scoped to the view it belongs to.
const agentView = "agent"
const applicantView = "applicant"

func listStateSessionKey(view string) string {
	return "complaint_list_state:" + view
}

func init() {
	gob.Register(listquery.State{})
}

// sessionStorage adapts the scs session of the current request to the
// authstore.Storage interface, playing the role browser storage has for a
// client-side app: per browser, persisted across requests, keyed blobs.
type sessionStorage struct {
	sessions *scs.SessionManager
	key      string
}

func (s *sessionStorage) Get(ctx context.Context) ([]byte, bool, error) {
	blob := s.sessions.GetBytes(ctx, s.key)
	return blob, blob != nil, nil
}

func (s *sessionStorage) Set(ctx context.Context, blob []byte) error {
	s.sessions.Put(ctx, s.key, blob)
	return nil
}

func (s *sessionStorage) Delete(ctx context.Context) error {
	s.sessions.Remove(ctx, s.key)
	return nil
}

// agentStore builds the auth store for the browser behind this request and
// restores its identity. Restoration reads session state only; no network
// call is involved.
func (app *application) agentStore(r *http.Request) *authstore.Store {
	storage := &sessionStorage{sessions: app.sessionManager, key: agentIdentitySessionKey}
	creds := app.backendCreds(r)
	terminate := func(ctx context.Context) error {
		return app.backend.TerminateSession(ctx, creds)
	}
	store := authstore.NewStore(storage, terminate, app.logger)
	store.Initialize(r.Context())
	return store
}

// agentSessionFromRequest is the route guard's view of the auth store.
func (app *application) agentSessionFromRequest(r *http.Request) agentSession {
	return app.agentStore(r)
}

// backendCreds assembles the backend credentials carried by this browser
// session: the relayed backend session cookie for agents and the bearer
// token for applicants.
func (app *application) backendCreds(r *http.Request) backend.Credentials {
	ctx := r.Context()
	creds := backend.Credentials{}
	if cookieValue := app.sessionManager.GetString(ctx, backendCookieSessionKey); cookieValue != "" {
		creds.SessionCookie = &http.Cookie{Name: "JSESSIONID", Value: cookieValue}
	}
	creds.BearerToken = app.sessionManager.GetString(ctx, applicantTokenSessionKey)
	return creds
}

// tokenExpired peeks at the bearer token's exp claim so an expired token can
// be discarded without a backend round trip. A token without a readable exp
// claim is not treated as expired; the backend still has the final say.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// applicantDisplayName peeks at the bearer token's subject claim for display
// purposes only. The claims are not verified here; the backend is the
// authority on token validity.
func applicantDisplayName(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "민원인"
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	return "민원인"
}

// listState returns the complaint list query state of this session and view,
// starting from the defaults on first use. The state is reset only by an
// explicit user action.
func (app *application) listState(ctx context.Context, view string) listquery.State {
	if state, ok := app.sessionManager.Get(ctx, listStateSessionKey(view)).(listquery.State); ok {
		return state
	}
	return listquery.NewState()
}

func (app *application) putListState(ctx context.Context, view string, state listquery.State) {
	app.sessionManager.Put(ctx, listStateSessionKey(view), state)
}

// listCacheKey scopes cached list rows to both the session and the view, so
// the agent and applicant areas of one browser never see each other's rows.
func (app *application) listCacheKey(ctx context.Context, view string) string {
	return app.sessionManager.Token(ctx) + ":" + view
}
