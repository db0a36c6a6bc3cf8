package main

import (
	"net/http"
)

type homeTemplateData struct {
	BaseTemplateData
}

// home is the landing page pointing to the applicant and agent entries.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
	}

	app.render(w, r, http.StatusOK, "home", data)
}
