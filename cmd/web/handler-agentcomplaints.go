package main

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/listquery"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/thread"
)

// agentComplaintList shows every complaint visible to the signed-in agent.
// It shares the query semantics of the applicant list except for keyword
// search, which the agent view does not have.
func (app *application) agentComplaintList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.listState(ctx, agentView)

	query := r.URL.Query()
	if raw := query.Get("sort"); raw != "" {
		state.SetSort(listquery.ParseSortKey(raw))
	}
	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			state.GoToPage(page)
		}
	}
	app.putListState(ctx, agentView, state)

	data := complaintListTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		State:            state,
		Ellipsis:         listquery.Ellipsis,
		SortKeys:         listSortKeys,
		BasePath:         "/agent/complaints",
	}

	creds := app.backendCreds(r)
	items, err := app.lists.Refresh(ctx, app.listCacheKey(ctx, agentView), func(ctx context.Context) ([]models.ComplaintSummary, error) {
		return app.backend.AgentComplaints(ctx, creds)
	})
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			app.agentStore(r).Logout(ctx)
			redirectExpired(w, r, "/agent/login")
			return
		}
		cached, ok := app.lists.Items(app.listCacheKey(ctx, agentView))
		if !ok {
			data.FetchError = true
			app.renderAgentListPage(w, r, data)
			return
		}
		data.FetchError = true
		items = cached
	}

	data.Result = listquery.Apply(items, state)
	if data.Result.Page != state.Page {
		state.Page = data.Result.Page
		app.putListState(ctx, agentView, state)
		data.State = state
	}
	data.PageNumbers = listquery.PageNumbers(data.Result.Page, data.Result.TotalPages)

	app.renderAgentListPage(w, r, data)
}

func (app *application) renderAgentListPage(w http.ResponseWriter, r *http.Request, data complaintListTemplateData) {
	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		app.renderPartial(w, r, "agentcomplaints", "results", data)
		return
	}
	app.render(w, r, http.StatusOK, "agentcomplaints", data)
}

type agentComplaintDetailTemplateData struct {
	BaseTemplateData
	Detail   models.ComplaintDetail
	Messages []models.Message
}

// agentComplaintDetail shows one complaint with its normalization results
// and any incident it was grouped into.
func (app *application) agentComplaintDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	key, err := backend.NumericID(r.PathValue("id"))
	if err != nil {
		app.notFound(w, r)
		return
	}

	detail, err := app.backend.ComplaintDetail(ctx, app.backendCreds(r), "agent", key)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrNotFound):
			app.notFound(w, r)
		case errors.Is(err, backend.ErrUnauthorized):
			redirectExpired(w, r, "/agent/login")
		default:
			app.serverError(w, r, errors.Wrap(err, "fetch complaint detail", slog.Int64("complaint", key)))
		}
		return
	}

	data := agentComplaintDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Detail:           detail,
		Messages:         thread.Assemble(detail),
	}
	app.render(w, r, http.StatusOK, "agentcomplaintdetail", data)
}
