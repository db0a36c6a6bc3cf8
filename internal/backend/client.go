// Package backend is the HTTP binding to the complaint backend. All domain
// data is owned by the backend; this client fetches it over JSON with the
// caller's session cookie or bearer token attached and maps the wire records
// to the canonical models at the boundary.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/format"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

var (
	ErrNotFound     = errors.NewSentinel("record not found")
	ErrUnauthorized = errors.NewSentinel("unauthorized")
)

// Credentials carry the caller's backend authentication for one request.
// Web handlers relay the browser's backend session cookie; the applicant
// flow uses a bearer token instead.
type Credentials struct {
	SessionCookie *http.Cookie
	BearerToken   string
}

// Client is bound to a single backend origin. The base URL is read once at
// process start and never changes.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthorizeURL returns the browser redirect target initiating an OAuth login
// with the given provider. This is a navigation, not an API call.
func (c *Client) AuthorizeURL(provider string) string {
	return fmt.Sprintf("%s/oauth2/authorization/%s", c.baseURL, provider)
}

type identityDTO struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AgentLogin authenticates an agent against the backend session endpoint.
// On success it returns the identity and the backend session cookie to relay
// to the browser.
func (c *Client) AgentLogin(ctx context.Context, username, password string) (models.Identity, *http.Cookie, error) {
	payload, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return models.Identity{}, nil, errors.Wrap(err, "marshal login payload")
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/agent/login", Credentials{}, bytes.NewReader(payload))
	if err != nil {
		return models.Identity{}, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err = checkStatus(resp); err != nil {
		return models.Identity{}, nil, err
	}

	var dto identityDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return models.Identity{}, nil, errors.Wrap(err, "decode login response")
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "JSESSIONID" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		return models.Identity{}, nil, errors.New("backend did not set a session cookie")
	}

	return models.Identity{Name: dto.Username, Role: dto.Role}, sessionCookie, nil
}

// TerminateSession asks the backend to end the agent session. Callers treat
// the outcome as best effort; local state is cleared regardless.
func (c *Client) TerminateSession(ctx context.Context, creds Credentials) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/agent/logout", creds, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return checkStatus(resp)
}

// ValidateToken checks an applicant bearer token against the backend.
// ErrUnauthorized means the token is expired or invalid.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/validate", Credentials{BearerToken: token}, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return checkStatus(resp)
}

// listItemDTO is the wire shape shared by the agent and applicant list
// endpoints. The applicant variant omits the agent-only enrichment fields.
type listItemDTO struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	Status         string   `json:"status"`
	Urgency        string   `json:"urgency"`
	Category       string   `json:"category"`
	DepartmentName string   `json:"departmentName"`
	CreatedAt      string   `json:"createdAt"`
	ReceivedAt     string   `json:"receivedAt"`
	UpdatedAt      string   `json:"updatedAt"`
	Tags           []string `json:"tags"`
}

// AgentComplaints fetches the full agent complaint collection.
func (c *Client) AgentComplaints(ctx context.Context, creds Credentials) ([]models.ComplaintSummary, error) {
	return c.complaintList(ctx, "/api/agent/complaints", creds)
}

// ApplicantComplaints fetches the authenticated applicant's complaints.
func (c *Client) ApplicantComplaints(ctx context.Context, creds Credentials) ([]models.ComplaintSummary, error) {
	return c.complaintList(ctx, "/api/applicant/complaints", creds)
}

// RecentComplaints fetches the applicant's three most recent complaints for
// the dashboard panel.
func (c *Client) RecentComplaints(ctx context.Context, creds Credentials) ([]models.ComplaintSummary, error) {
	return c.complaintList(ctx, "/api/applicant/complaints/top3", creds)
}

func (c *Client) complaintList(ctx context.Context, urlPath string, creds Credentials) ([]models.ComplaintSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, urlPath, creds, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err = checkStatus(resp); err != nil {
		return nil, err
	}

	var dtos []listItemDTO
	if err = json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, errors.Wrap(err, "decode complaint list", slog.String("path", urlPath))
	}

	complaints := make([]models.ComplaintSummary, 0, len(dtos))
	for _, dto := range dtos {
		complaints = append(complaints, c.toSummary(ctx, dto))
	}
	return complaints, nil
}

func (c *Client) toSummary(ctx context.Context, dto listItemDTO) models.ComplaintSummary {
	status, err := models.ParseStatus(dto.Status)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "unknown status from backend",
			slog.Int64("complaint_id", dto.ID), errors.SlogError(err))
	}
	submitted := dto.CreatedAt
	if submitted == "" {
		submitted = dto.ReceivedAt
	}
	return models.ComplaintSummary{
		ID:            fmt.Sprintf("%d", dto.ID),
		Title:         dto.Title,
		Content:       dto.Body,
		Status:        status,
		Urgency:       models.Urgency(dto.Urgency),
		Category:      dto.Category,
		Department:    dto.DepartmentName,
		SubmittedDate: format.Date(submitted),
		LastUpdate:    format.Date(dto.UpdatedAt),
		Tags:          dto.Tags,
	}
}

// wireID decodes an identifier field the backend serves either as a
// display-formatted string such as "C2026-0004" or as a bare number.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID(n)
	return nil
}

type detailDTO struct {
	ID                     wireID   `json:"id"`
	OriginalID             int64    `json:"originalId"`
	Title                  string   `json:"title"`
	Body                   string   `json:"body"`
	Answer                 string   `json:"answer"`
	Address                string   `json:"address"`
	Status                 string   `json:"status"`
	Urgency                string   `json:"urgency"`
	Category               string   `json:"category"`
	DepartmentName         string   `json:"departmentName"`
	OfficerName            string   `json:"officerName"`
	CreatedAt              string   `json:"createdAt"`
	ReceivedAt             string   `json:"receivedAt"`
	UpdatedAt              string   `json:"updatedAt"`
	NeutralSummary         string   `json:"neutralSummary"`
	CoreRequest            string   `json:"coreRequest"`
	CoreCause              string   `json:"coreCause"`
	TargetObject           string   `json:"targetObject"`
	LocationHint           string   `json:"locationHint"`
	Keywords               []string `json:"keywords"`
	IncidentID             string   `json:"incidentId"`
	IncidentTitle          string   `json:"incidentTitle"`
	IncidentStatus         string   `json:"incidentStatus"`
	IncidentComplaintCount int      `json:"incidentComplaintCount"`
}

// ComplaintDetail fetches one complaint by its numeric backend key. The
// display-formatted route id must be converted with NumericID first.
func (c *Client) ComplaintDetail(ctx context.Context, creds Credentials, audience string, key int64) (models.ComplaintDetail, error) {
	urlPath := fmt.Sprintf("/api/%s/complaints/%d", audience, key)
	resp, err := c.do(ctx, http.MethodGet, urlPath, creds, nil)
	if err != nil {
		return models.ComplaintDetail{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if err = checkStatus(resp); err != nil {
		return models.ComplaintDetail{}, err
	}

	var dto detailDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return models.ComplaintDetail{}, errors.Wrap(err, "decode complaint detail", slog.Int64("key", key))
	}

	status, err := models.ParseStatus(dto.Status)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "unknown status from backend",
			slog.Int64("complaint_key", key), errors.SlogError(err))
	}

	originalID := dto.OriginalID
	if originalID == 0 {
		originalID = key
	}
	submitted := dto.CreatedAt
	if submitted == "" {
		submitted = dto.ReceivedAt
	}

	return models.ComplaintDetail{
		ID:                     string(dto.ID),
		OriginalID:             originalID,
		Title:                  dto.Title,
		Body:                   dto.Body,
		Answer:                 dto.Answer,
		Address:                dto.Address,
		Status:                 status,
		Urgency:                models.Urgency(dto.Urgency),
		Category:               dto.Category,
		Department:             dto.DepartmentName,
		AssignedTo:             dto.OfficerName,
		SubmittedAt:            submitted,
		UpdatedAt:              dto.UpdatedAt,
		NeutralSummary:         dto.NeutralSummary,
		CoreRequest:            dto.CoreRequest,
		CoreCause:              dto.CoreCause,
		TargetObject:           dto.TargetObject,
		LocationHint:           dto.LocationHint,
		Keywords:               dto.Keywords,
		IncidentID:             dto.IncidentID,
		IncidentTitle:          dto.IncidentTitle,
		IncidentStatus:         models.IncidentStatus(dto.IncidentStatus),
		IncidentComplaintCount: dto.IncidentComplaintCount,
	}, nil
}

// PostComment submits a follow-up comment on a complaint. The key is the
// numeric backend key, never the display id.
func (c *Client) PostComment(ctx context.Context, creds Credentials, key int64, content string) error {
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return errors.Wrap(err, "marshal comment payload")
	}

	urlPath := fmt.Sprintf("/api/applicant/complaints/%d/comments", key)
	resp, err := c.do(ctx, http.MethodPost, urlPath, creds, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, urlPath string, creds Credentials, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request", slog.String("path", urlPath))
	}
	req.Header.Set("Content-Type", "application/json")
	if creds.SessionCookie != nil {
		req.AddCookie(creds.SessionCookie)
	}
	if creds.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+creds.BearerToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "backend request", slog.String("path", urlPath))
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Wrap(ErrUnauthorized, "backend rejected credentials", slog.Int("status", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrap(ErrNotFound, "backend returned not found")
	case resp.StatusCode >= 400:
		return errors.New("unexpected backend status", slog.Int("status", resp.StatusCode))
	}
	return nil
}
