package models

// ComplaintSummary is one row of a complaint list as rendered for the user.
// It is read-only backend data; the only local derivations are the status
// case-fold and the date truncation performed at the fetch boundary.
type ComplaintSummary struct {
	// ID is the display identifier, e.g. "C2026-0004" for agents or the
	// stringified numeric key for applicants.
	ID         string
	Title      string
	Content    string
	Status     Status
	Urgency    Urgency
	Category   string
	Department string
	// SubmittedDate is the submission date truncated to "2006-01-02".
	// ISO 8601 dates compare correctly as strings, which the list query
	// engine relies on.
	SubmittedDate string
	LastUpdate    string
	Tags          []string
}

// ComplaintDetail is the full complaint record with normalization and
// incident enrichment.
//
// ID is the display-formatted identifier while OriginalID is the numeric
// backend key. Follow-up requests must always use OriginalID; the two are
// deliberately distinct fields so they cannot be conflated.
type ComplaintDetail struct {
	ID         string
	OriginalID int64
	Title      string
	Body       string
	Answer     string
	Address    string
	Status     Status
	Urgency    Urgency
	Category   string
	Department string
	AssignedTo string
	// SubmittedAt and UpdatedAt are the raw backend timestamps; display
	// code truncates them to the date portion.
	SubmittedAt string
	UpdatedAt   string

	// Normalization fields produced by the backend pipeline.
	NeutralSummary string
	CoreRequest    string
	CoreCause      string
	TargetObject   string
	LocationHint   string
	Keywords       []string

	// Incident linkage.
	IncidentID             string
	IncidentTitle          string
	IncidentStatus         IncidentStatus
	IncidentComplaintCount int
}

// HasIncident reports whether the complaint is linked to an incident cluster.
func (d ComplaintDetail) HasIncident() bool {
	return d.IncidentID != ""
}
