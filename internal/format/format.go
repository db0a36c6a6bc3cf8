// Package format is the single presentation-formatting policy for the web
// pages. Fallback labels for missing backend fields live here instead of
// being scattered over the individual templates.
package format

import (
	"strings"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

// Field names accepted by Fallback.
const (
	FieldDepartment = "department"
	FieldCategory   = "category"
	FieldAssignedTo = "assignedTo"
	FieldAnswerDate = "answerDate"
)

var fallbackLabels = map[string]string{
	FieldDepartment: "부서 배정 중",
	FieldCategory:   "미분류",
	FieldAssignedTo: "미지정",
	FieldAnswerDate: "답변 대기 중",
}

// Fallback returns value, or the centralized placeholder label for the field
// when value is empty.
func Fallback(field, value string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallbackLabels[field]
}

var statusLabels = map[models.Status]string{
	models.StatusReceived:     "접수됨",
	models.StatusCategorizing: "분류중",
	models.StatusAssigned:     "담당자 배정",
	models.StatusAnswered:     "답변 완료",
	models.StatusClosed:       "처리 완료",
}

var statusBadgeClasses = map[models.Status]string{
	models.StatusReceived:     "badge-received",
	models.StatusCategorizing: "badge-categorizing",
	models.StatusAssigned:     "badge-assigned",
	models.StatusAnswered:     "badge-answered",
	models.StatusClosed:       "badge-closed",
}

// StatusLabel returns the display label for a canonical status.
func StatusLabel(s models.Status) string {
	return statusLabels[s]
}

// StatusBadgeClass returns the CSS class for the status badge.
func StatusBadgeClass(s models.Status) string {
	return statusBadgeClasses[s]
}

// Date truncates an ISO 8601 timestamp such as "2026-01-02T15:04:05" to its
// date portion. Bare dates pass through unchanged.
func Date(timestamp string) string {
	if idx := strings.IndexByte(timestamp, 'T'); idx >= 0 {
		return timestamp[:idx]
	}
	return timestamp
}
