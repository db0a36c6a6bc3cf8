package main

import (
	"fmt"
	"net/http"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

// healthy reports liveness. The session count is queried over the read-only
// connection, so the check also fails when the session database has become
// unreadable.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	var sessions int
	if err := app.readDB.GetContext(r.Context(), &sessions, "SELECT count(*) FROM sessions"); err != nil {
		app.serverError(w, r, errors.Wrap(err, "query session store"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, sessions)
}
