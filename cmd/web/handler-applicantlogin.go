package main

import (
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

type applicantLoginTemplateData struct {
	BaseTemplateData
	Providers  []string
	FlashError string
}

var oauthProviders = []string{"kakao", "naver", "google"}

// applicantLoginPage shows the social login choices. A session that already
// carries a valid token skips straight to the main page; a token the backend
// rejects is dropped so the stale session cannot loop.
func (app *application) applicantLoginPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if token := app.sessionManager.GetString(ctx, applicantTokenSessionKey); token != "" {
		if tokenExpired(token) {
			app.sessionManager.Remove(ctx, applicantTokenSessionKey)
			data := applicantLoginTemplateData{
				BaseTemplateData: newBaseTemplateData(r),
				Providers:        oauthProviders,
			}
			app.render(w, r, http.StatusOK, "applicantlogin", data)
			return
		}
		err := app.backend.ValidateToken(ctx, token)
		switch {
		case err == nil:
			http.Redirect(w, r, "/applicant/main", http.StatusSeeOther)
			return
		case errors.Is(err, backend.ErrUnauthorized):
			app.sessionManager.Remove(ctx, applicantTokenSessionKey)
		default:
			app.serverError(w, r, errors.Wrap(err, "validate token"))
			return
		}
	}

	data := applicantLoginTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Providers:        oauthProviders,
	}
	app.render(w, r, http.StatusOK, "applicantlogin", data)
}

// applicantOAuthRedirect hands the browser to the backend's authorization
// endpoint for the chosen provider.
func (app *application) applicantOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	known := false
	for _, p := range oauthProviders {
		if p == provider {
			known = true
			break
		}
	}
	if !known {
		app.notFound(w, r)
		return
	}

	http.Redirect(w, r, app.backend.AuthorizeURL(provider), http.StatusSeeOther)
}

// applicantAuthCallback receives the access token minted by the backend
// after the provider round trip and stores it in the session.
func (app *application) applicantAuthCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.URL.Query().Get("accessToken")
	}
	if token == "" {
		data := applicantLoginTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Providers:        oauthProviders,
			FlashError:       "로그인에 실패했습니다. 다시 시도해 주세요.",
		}
		app.render(w, r, http.StatusUnprocessableEntity, "applicantlogin", data)
		return
	}

	ctx := r.Context()
	if err := app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(ctx, applicantTokenSessionKey, token)

	http.Redirect(w, r, "/applicant/main", http.StatusSeeOther)
}
