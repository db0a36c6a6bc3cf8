package main

import (
	"log/slog"
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/backend"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/thread"
)

type complaintDetailTemplateData struct {
	BaseTemplateData
	Detail       models.ComplaintDetail
	Messages     []models.Message
	Answered     bool
	CommentDraft string
	CommentError string
}

// complaintDetail renders the conversation view of one complaint: the
// original submission, the department answer when one exists, and the
// comment form.
func (app *application) complaintDetail(w http.ResponseWriter, r *http.Request) {
	detail, messages, ok := app.loadComplaintThread(w, r)
	if !ok {
		return
	}

	data := complaintDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Detail:           detail,
		Messages:         messages,
		Answered:         thread.Answered(messages),
	}
	app.render(w, r, http.StatusOK, "complaintdetail", data)
}

// submitComment posts a follow-up comment. A failed submission re-renders
// the page with the typed content preserved so the user never loses their
// text.
func (app *application) submitComment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	content := r.PostForm.Get("content")

	detail, messages, ok := app.loadComplaintThread(w, r)
	if !ok {
		return
	}

	data := complaintDetailTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Detail:           detail,
		Messages:         messages,
		Answered:         thread.Answered(messages),
	}

	if content == "" {
		data.CommentError = "내용을 입력해 주세요."
		app.render(w, r, http.StatusUnprocessableEntity, "complaintdetail", data)
		return
	}

	ctx := r.Context()
	if err := app.backend.PostComment(ctx, app.backendCreds(r), detail.OriginalID, content); err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			app.sessionManager.Remove(ctx, applicantTokenSessionKey)
			redirectExpired(w, r, "/applicant/login")
			return
		}
		app.logger.LogAttrs(ctx, slog.LevelWarn, "comment submission failed",
			slog.Int64("complaint", detail.OriginalID), errors.SlogError(err))
		data.CommentDraft = content
		data.CommentError = "전송에 실패했습니다. 잠시 후 다시 시도해 주세요."
		app.render(w, r, http.StatusOK, "complaintdetail", data)
		return
	}

	http.Redirect(w, r, "/applicant/complaints/"+r.PathValue("id"), http.StatusSeeOther)
}

// loadComplaintThread resolves the path id, fetches the detail and builds
// the message thread. It writes the error response itself when it fails.
func (app *application) loadComplaintThread(w http.ResponseWriter, r *http.Request) (models.ComplaintDetail, []models.Message, bool) {
	ctx := r.Context()

	key, err := backend.NumericID(r.PathValue("id"))
	if err != nil {
		app.notFound(w, r)
		return models.ComplaintDetail{}, nil, false
	}

	detail, err := app.backend.ComplaintDetail(ctx, app.backendCreds(r), "applicant", key)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrNotFound):
			app.notFound(w, r)
		case errors.Is(err, backend.ErrUnauthorized):
			app.sessionManager.Remove(ctx, applicantTokenSessionKey)
			redirectExpired(w, r, "/applicant/login")
		default:
			app.serverError(w, r, errors.Wrap(err, "fetch complaint detail", slog.Int64("complaint", key)))
		}
		return models.ComplaintDetail{}, nil, false
	}

	return detail, thread.Assemble(detail), true
}
