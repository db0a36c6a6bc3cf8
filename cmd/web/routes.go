package main

import (
	"net/http"
	"time"

	"github.com/justinas/alice"
)

func (app *application) routes(defaultTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)
	agent := dynamic.Append(app.requireAgent)
	applicant := dynamic.Append(app.requireApplicant)

	mux.Handle("GET /{$}", dynamic.ThenFunc(app.home))

	// Agent-facing pages.
	mux.Handle("GET /agent/login", dynamic.ThenFunc(app.agentLoginPage))
	mux.Handle("POST /agent/login", dynamic.ThenFunc(app.agentLoginSubmit))
	mux.Handle("POST /agent/logout", dynamic.ThenFunc(app.agentLogout))
	mux.Handle("GET /agent/complaints", agent.ThenFunc(app.agentComplaintList))
	mux.Handle("GET /agent/complaints/{id}", agent.ThenFunc(app.agentComplaintDetail))

	// Applicant-facing pages.
	mux.Handle("GET /applicant/login", dynamic.ThenFunc(app.applicantLoginPage))
	mux.Handle("GET /applicant/login/{provider}", dynamic.ThenFunc(app.applicantOAuthRedirect))
	mux.Handle("GET /applicant/auth/callback", dynamic.ThenFunc(app.applicantAuthCallback))
	mux.Handle("POST /applicant/logout", dynamic.ThenFunc(app.applicantLogout))
	mux.Handle("GET /applicant/main", applicant.ThenFunc(app.applicantMain))
	mux.Handle("GET /applicant/main/recent", applicant.ThenFunc(app.applicantRecentPanel))
	mux.Handle("GET /applicant/complaints", applicant.ThenFunc(app.complaintList))
	mux.Handle("POST /applicant/complaints/search", applicant.ThenFunc(app.complaintListSearch))
	mux.Handle("POST /applicant/complaints/reset", applicant.ThenFunc(app.complaintListReset))
	mux.Handle("GET /applicant/complaints/{id}", applicant.ThenFunc(app.complaintDetail))
	mux.Handle("POST /applicant/complaints/{id}/comments", applicant.ThenFunc(app.submitComment))

	return app.recoverPanic(app.logRequest(secureHeaders(timeoutHandler(mux, defaultTimeout))))
}
