package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/contexthelpers"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/format"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/listquery"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

type BaseTemplateData struct {
	Authenticated bool
	IdentityName  string
	CurrentPath   string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	ctx := r.Context()
	return BaseTemplateData{
		Authenticated: contexthelpers.IsAuthenticated(ctx),
		IdentityName:  contexthelpers.AuthenticatedIdentity(ctx).Name,
		CurrentPath:   contexthelpers.CurrentPath(ctx),
	}
}

// templateFuncs are the display helpers available to every template. The
// fallback helpers keep the missing-data policy in one place instead of
// scattering Korean placeholder strings across templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"hasPrefix":        strings.HasPrefix,
		"statusLabel":      format.StatusLabel,
		"statusBadgeClass": format.StatusBadgeClass,
		"fallback":         format.Fallback,
		"date":             format.Date,
		"sender": func(s models.Sender) string {
			return string(s)
		},
		"sortLabel": func(key listquery.SortKey) string {
			switch key {
			case listquery.SortDateAsc:
				return "오래된순"
			case listquery.SortStatus:
				return "상태순"
			case listquery.SortTitle:
				return "제목순"
			default:
				return "최신순"
			}
		},
		"nonce": func() string {
			panic("not implemented")
		},
		"csrf": func() string {
			panic("not implemented")
		},
	}
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside the pages folder of the template
// directory. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	files := []string{
		filepath.Join(app.templateDir, "base.gohtml"),
	}

	pageTemplateFiles, err := filepath.Glob(filepath.Join(app.templateDir, "pages", pageName, "*.gohtml"))
	if err != nil {
		return nil, fmt.Errorf("glob page template files: %w", err)
	}
	files = append(files, pageTemplateFiles...)

	// The FuncMap has to exist before parsing; render overrides the
	// request-scoped entries.
	return template.New(pageName).Funcs(templateFuncs()).ParseFiles(files...)
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, file string, data any) {
	app.renderTemplate(w, r, status, file, "base", data)
}

// renderPartial executes a named template of the page without the base
// layout. htmx requests swap these fragments in place.
func (app *application) renderPartial(w http.ResponseWriter, r *http.Request, file string, name string, data any) {
	app.renderTemplate(w, r, http.StatusOK, file, name, data)
}

func (app *application) renderTemplate(w http.ResponseWriter, r *http.Request, status int, file string, name string, data any) {
	var (
		err error
		t   *template.Template
	)

	if t, err = app.pageTemplate(file); err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", file)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec, we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec, we trust the csrf since it's not provided by user.
		},
	})
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", file)))
		return
	}

	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}

// renderLoading is the placeholder shown while the session is still being
// restored. The guard sends it before any authentication decision so that a
// slow restore never flashes a redirect.
func (app *application) renderLoading(w http.ResponseWriter, r *http.Request) {
	data := struct {
		BaseTemplateData
	}{
		BaseTemplateData: newBaseTemplateData(r),
	}
	app.render(w, r, http.StatusOK, "loading", data)
}
