package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/listquery"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

type complaintListTemplateData struct {
	BaseTemplateData
	State       listquery.State
	Result      listquery.Result
	PageNumbers []string
	Ellipsis    string
	SortKeys    []listquery.SortKey
	FetchError  bool
	BasePath    string
}

var listSortKeys = []listquery.SortKey{
	listquery.SortDateDesc,
	listquery.SortDateAsc,
	listquery.SortStatus,
	listquery.SortTitle,
}

// complaintList shows the applicant's complaints. Sort and page changes
// arrive as query parameters and take effect immediately; keyword and date
// edits only take effect through the search form.
func (app *application) complaintList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.listState(ctx, applicantView)

	query := r.URL.Query()
	if raw := query.Get("sort"); raw != "" {
		state.SetSort(listquery.ParseSortKey(raw))
	}
	if raw := query.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			state.GoToPage(page)
		}
	}
	app.putListState(ctx, applicantView, state)

	app.renderComplaintList(w, r, state, app.applicantFetch(r))
}

// complaintListSearch commits the draft keyword and date range and returns
// to the first page.
func (app *application) complaintListSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	state := app.listState(ctx, applicantView)
	state.EditKeyword(r.PostForm.Get("keyword"))
	state.EditDateRange(r.PostForm.Get("startDate"), r.PostForm.Get("endDate"))
	state.Search()
	app.putListState(ctx, applicantView, state)

	app.renderComplaintList(w, r, state, app.applicantFetch(r))
}

// complaintListReset restores the default filter, sort and page.
func (app *application) complaintListReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := app.listState(ctx, applicantView)
	state.Reset()
	app.putListState(ctx, applicantView, state)

	app.renderComplaintList(w, r, state, app.applicantFetch(r))
}

func (app *application) applicantFetch(r *http.Request) func(context.Context) ([]models.ComplaintSummary, error) {
	creds := app.backendCreds(r)
	return func(ctx context.Context) ([]models.ComplaintSummary, error) {
		return app.backend.ApplicantComplaints(ctx, creds)
	}
}

func (app *application) renderComplaintList(
	w http.ResponseWriter,
	r *http.Request,
	state listquery.State,
	fetchList func(context.Context) ([]models.ComplaintSummary, error),
) {
	ctx := r.Context()
	data := complaintListTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		State:            state,
		Ellipsis:         listquery.Ellipsis,
		SortKeys:         listSortKeys,
		BasePath:         "/applicant/complaints",
	}

	items, err := app.lists.Refresh(ctx, app.listCacheKey(ctx, applicantView), fetchList)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			app.sessionManager.Remove(ctx, applicantTokenSessionKey)
			redirectExpired(w, r, "/applicant/login")
			return
		}
		// Keep showing whatever we last fetched; a transient backend
		// failure should not blank the page.
		cached, ok := app.lists.Items(app.listCacheKey(ctx, applicantView))
		if !ok {
			data.FetchError = true
			app.renderListPage(w, r, data)
			return
		}
		data.FetchError = true
		items = cached
	}

	data.Result = listquery.Apply(items, state)
	if data.Result.Page != state.Page {
		// Apply clamped the page; persist the clamp so pagination links
		// agree with what is shown.
		state.Page = data.Result.Page
		app.putListState(ctx, applicantView, state)
		data.State = state
	}
	data.PageNumbers = listquery.PageNumbers(data.Result.Page, data.Result.TotalPages)

	app.renderListPage(w, r, data)
}

func (app *application) renderListPage(w http.ResponseWriter, r *http.Request, data complaintListTemplateData) {
	h := app.htmx.NewHandler(w, r)
	if h.IsHxRequest() {
		app.renderPartial(w, r, "complaintlist", "results", data)
		return
	}
	app.render(w, r, http.StatusOK, "complaintlist", data)
}

// redirectExpired sends the browser to the login page whether the request
// came from htmx or plain navigation.
func redirectExpired(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, target, http.StatusSeeOther)
}
