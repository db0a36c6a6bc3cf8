package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/e2etest"
	"github.com/stretchr/testify/require"
)

const (
	stubAgentUsername = "kim.jusa"
	stubAgentPassword = "secret"
	stubAgentSession  = "stub-agent-session"
	stubBearerToken   = "good-token"
)

type stubComplaint struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	Status         string   `json:"status"`
	Urgency        string   `json:"urgency"`
	Category       string   `json:"category"`
	DepartmentName string   `json:"departmentName"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Answer         string   `json:"answer,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}

func stubComplaints() []stubComplaint {
	return []stubComplaint{
		{
			ID: 1, Title: "가로등이 고장났어요", Body: "집 앞 가로등이 밤에 켜지지 않습니다",
			Status: "RECEIVED", Urgency: "MEDIUM", Category: "도로/조명", DepartmentName: "",
			CreatedAt: "2026-08-01T09:00:00", UpdatedAt: "2026-08-01T09:00:00",
		},
		{
			ID: 2, Title: "소음이 심합니다", Body: "공사장 소음이 너무 큽니다",
			Status: "IN_PROGRESS", Urgency: "HIGH", Category: "소음", DepartmentName: "환경과",
			CreatedAt: "2026-08-10T14:30:00", UpdatedAt: "2026-08-12T10:00:00",
			Answer: "현장 점검 후 조치하였습니다",
		},
		{
			ID: 3, Title: "불법 주차 신고", Body: "소화전 앞 불법 주차 차량이 있습니다",
			Status: "CLOSED", Urgency: "LOW", Category: "주차", DepartmentName: "교통과",
			CreatedAt: "2026-08-05T08:15:00", UpdatedAt: "2026-08-20T16:00:00",
			Answer: "단속 완료하였습니다",
		},
	}
}

// newStubBackend fakes the complaint backend: cookie-authenticated agent
// endpoints and bearer-authenticated applicant endpoints over fixture data.
func newStubBackend(t *testing.T) *httptest.Server {
	t.Helper()

	complaints := stubComplaints()

	agentAuthed := func(r *http.Request) bool {
		cookie, err := r.Cookie("JSESSIONID")
		return err == nil && cookie.Value == stubAgentSession
	}
	applicantAuthed := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+stubBearerToken
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}
	findComplaint := func(rawID string) (stubComplaint, bool) {
		for _, c := range complaints {
			if fmt.Sprintf("%d", c.ID) == rawID {
				return c, true
			}
		}
		return stubComplaint{}, false
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/agent/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Username != stubAgentUsername || creds.Password != stubAgentPassword {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: stubAgentSession, Path: "/"})
		writeJSON(w, map[string]string{"username": "김주사", "role": "AGENT"})
	})

	mux.HandleFunc("POST /api/agent/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		if !applicantAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /api/agent/complaints", func(w http.ResponseWriter, r *http.Request) {
		if !agentAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, complaints)
	})

	mux.HandleFunc("GET /api/agent/complaints/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !agentAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		c, ok := findComplaint(r.PathValue("id"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, c)
	})

	mux.HandleFunc("GET /api/applicant/complaints", func(w http.ResponseWriter, r *http.Request) {
		if !applicantAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, complaints)
	})

	mux.HandleFunc("GET /api/applicant/complaints/top3", func(w http.ResponseWriter, r *http.Request) {
		if !applicantAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, complaints)
	})

	mux.HandleFunc("GET /api/applicant/complaints/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !applicantAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		c, ok := findComplaint(r.PathValue("id"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, c)
	})

	mux.HandleFunc("POST /api/applicant/complaints/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		if !applicantAuthed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.True(t, strings.Contains(string(body), "content"))
		w.WriteHeader(http.StatusCreated)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testLookupEnv(backendURL string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch key {
		case "MINWON_ADDR":
			return "localhost:0", true
		case "MINWON_BACKEND_URL":
			return backendURL, true
		case "MINWON_SQLITE_URL":
			return ":memory:", true
		case "MINWON_TEMPLATE_DIR":
			return "../../ui/templates", true
		default:
			return "", false
		}
	}
}

// startTestServer boots the web server against a stub backend and returns a
// browser-like client bound to it.
func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()

	backendStub := newStubBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server, err := e2etest.StartServer(ctx, io.Discard, testLookupEnv(backendStub.URL), run)
	require.NoError(t, err)
	return server
}
