package main

import (
	"log/slog"
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

type applicantMainTemplateData struct {
	BaseTemplateData
}

// applicantMain is the applicant dashboard shell. The recent-complaints
// panel arrives separately over htmx so a slow backend does not block the
// page.
func (app *application) applicantMain(w http.ResponseWriter, r *http.Request) {
	data := applicantMainTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "applicantmain", data)
}

type recentPanelTemplateData struct {
	BaseTemplateData
	Recent     []models.ComplaintSummary
	FetchError bool
}

const recentPanelSize = 3

// applicantRecentPanel renders the three most recent complaints of the
// signed-in applicant. Fetch failures degrade to an inline notice instead of
// a server error so the dashboard stays usable.
func (app *application) applicantRecentPanel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := recentPanelTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}

	recent, err := app.backend.RecentComplaints(ctx, app.backendCreds(r))
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			app.sessionManager.Remove(ctx, applicantTokenSessionKey)
			w.Header().Set("HX-Redirect", "/applicant/login")
			w.WriteHeader(http.StatusOK)
			return
		}
		app.logger.LogAttrs(ctx, slog.LevelWarn, "recent complaints fetch failed", errors.SlogError(err))
		data.FetchError = true
		app.renderPartial(w, r, "applicantmain", "recent-panel", data)
		return
	}

	if len(recent) > recentPanelSize {
		recent = recent[:recentPanelSize]
	}
	data.Recent = recent
	app.renderPartial(w, r, "applicantmain", "recent-panel", data)
}
