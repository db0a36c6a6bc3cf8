package main

import (
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

// agentLogout ends the agent session. The backend call is best effort: the
// local session is cleared even when the backend is unreachable, so the
// browser never stays signed in against the user's wishes.
func (app *application) agentLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := app.agentStore(r)
	store.Logout(ctx)

	app.lists.Drop(app.listCacheKey(ctx, agentView))
	app.sessionManager.Remove(ctx, backendCookieSessionKey)
	app.sessionManager.Remove(ctx, listStateSessionKey(agentView))
	if err := app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}

	http.Redirect(w, r, "/agent/login", http.StatusSeeOther)
}

// applicantLogout drops the bearer token and local state. There is no
// backend session to terminate; the token simply stops being sent.
func (app *application) applicantLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	app.lists.Drop(app.listCacheKey(ctx, applicantView))
	app.sessionManager.Remove(ctx, applicantTokenSessionKey)
	app.sessionManager.Remove(ctx, listStateSessionKey(applicantView))
	if err := app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}

	http.Redirect(w, r, "/applicant/login", http.StatusSeeOther)
}
