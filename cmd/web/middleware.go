package main

import (
	"fmt"
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/contexthelpers"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/random"
	"github.com/justinas/nosurf"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

func cacheForeverHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		app.logger.Debug("received request", "proto", proto, "method", method, "uri", uri)

		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := random.Letters(32) //nolint:mnd // nonce length
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Security-Policy",
			fmt.Sprintf(`script-src 'nonce-%s' 'strict-dynamic' https: http:;
				   object-src 'none';
				   base-uri 'none';`, nonce))

		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		r = contexthelpers.SetCSPNonce(r, nonce)
		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf
func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
	})

	return csrfHandler
}

// agentSession is the slice of the auth store the route guard needs.
type agentSession interface {
	Loading() bool
	Authenticated() bool
	Identity() models.Identity
}

// requireAgent gates the agent pages.
func (app *application) requireAgent(next http.Handler) http.Handler {
	return agentGuard(app.agentSessionFromRequest, app.renderLoading, next)
}

// agentGuard is the gate in front of the agent pages. The ordering here is
// load-bearing: while session restoration is in flight it renders a loading
// placeholder and never redirects, because redirecting during restoration
// would bounce an authenticated agent to the login page. Only after loading
// completes does it check authentication.
func agentGuard(
	sessionFor func(*http.Request) agentSession,
	renderLoading func(http.ResponseWriter, *http.Request),
	next http.Handler,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := sessionFor(r)

		if session.Loading() {
			renderLoading(w, r)
			return
		}

		if !session.Authenticated() {
			// Replace history so back-navigation cannot land in the
			// guarded area.
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, "/agent/login", http.StatusSeeOther)
			return
		}

		r = contexthelpers.AuthenticateContext(r, session.Identity())
		next.ServeHTTP(w, r)
	})
}

// requireApplicant gates the applicant pages on the presence of a bearer
// token. Token validity is checked against the backend on login; a token the
// backend later rejects surfaces as an unauthorized fetch that clears it.
func (app *application) requireApplicant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := app.sessionManager.GetString(r.Context(), applicantTokenSessionKey)
		if token == "" || tokenExpired(token) {
			if token != "" {
				app.sessionManager.Remove(r.Context(), applicantTokenSessionKey)
			}
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, "/applicant/login", http.StatusSeeOther)
			return
		}

		r = contexthelpers.AuthenticateContext(r, models.Identity{Name: applicantDisplayName(token), Role: "APPLICANT"})
		next.ServeHTTP(w, r)
	})
}
