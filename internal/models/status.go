package models

import (
	"log/slog"
	"strings"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

// Status is the canonical complaint status. The backend serves two casings of
// the same pipeline, the routing enum (RECEIVED, NORMALIZED, RECOMMENDED,
// IN_PROGRESS, CLOSED) and the display variant (received, categorizing,
// assigned, answered, closed). ParseStatus folds both into this enumeration so
// that no other code branches on raw status strings.
type Status string

const (
	StatusReceived     Status = "received"
	StatusCategorizing Status = "categorizing"
	StatusAssigned     Status = "assigned"
	StatusAnswered     Status = "answered"
	StatusClosed       Status = "closed"
)

var ErrUnknownStatus = errors.NewSentinel("unknown complaint status")

// ParseStatus maps a backend status string, in either casing, to the canonical Status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "received":
		return StatusReceived, nil
	case "normalized", "categorizing":
		return StatusCategorizing, nil
	case "recommended", "assigned":
		return StatusAssigned, nil
	case "in_progress", "answered":
		return StatusAnswered, nil
	case "closed":
		return StatusClosed, nil
	}
	return StatusReceived, errors.Wrap(ErrUnknownStatus, "parse status", slog.String("status", raw))
}

// Urgency is the complaint urgency level as served by the backend.
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// IncidentStatus is the lifecycle state of an incident cluster a complaint is linked to.
type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "OPEN"
	IncidentInProgress IncidentStatus = "IN_PROGRESS"
	IncidentResolved   IncidentStatus = "RESOLVED"
	IncidentClosed     IncidentStatus = "CLOSED"
)
