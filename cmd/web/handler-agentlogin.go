package main

import (
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

type agentLoginTemplateData struct {
	BaseTemplateData
	Username   string
	FlashError string
}

func (app *application) agentLoginPage(w http.ResponseWriter, r *http.Request) {
	store := app.agentStore(r)
	if store.Authenticated() {
		http.Redirect(w, r, "/agent/complaints", http.StatusSeeOther)
		return
	}

	data := agentLoginTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "agentlogin", data)
}

// agentLoginSubmit exchanges the credentials for a backend session. On
// success the backend session cookie and the agent identity are stored in
// the browser session; on failure the form is re-rendered with the username
// preserved.
func (app *application) agentLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		data := agentLoginTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Username:         username,
			FlashError:       "아이디와 비밀번호를 입력해 주세요.",
		}
		app.render(w, r, http.StatusUnprocessableEntity, "agentlogin", data)
		return
	}

	ctx := r.Context()
	identity, sessionCookie, err := app.backend.AgentLogin(ctx, username, password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			data := agentLoginTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Username:         username,
				FlashError:       "아이디 또는 비밀번호가 올바르지 않습니다.",
			}
			app.render(w, r, http.StatusUnprocessableEntity, "agentlogin", data)
			return
		}
		app.serverError(w, r, errors.Wrap(err, "agent login"))
		return
	}

	// Session fixation defence before persisting credentials.
	if err = app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	if sessionCookie != nil {
		app.sessionManager.Put(ctx, backendCookieSessionKey, sessionCookie.Value)
	}

	store := app.agentStore(r)
	if err = store.Login(ctx, identity); err != nil {
		app.serverError(w, r, errors.Wrap(err, "persist agent identity"))
		return
	}

	http.Redirect(w, r, "/agent/complaints", http.StatusSeeOther)
}
