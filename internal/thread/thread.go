// Package thread synthesizes the display thread of a complaint detail page
// from the fetched record. The thread is rebuilt on every fetch and never
// stored.
package thread

import (
	"github.com/hyun7520/RAG-Complaint-2nd/internal/format"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/models"
)

const applicantSenderName = "민원인(본인)"
const departmentFallbackName = "담당부서"

// Assemble builds the ordered messages for a complaint: the original
// submission always comes first, and the department's answer is appended if
// and only if one exists.
func Assemble(detail models.ComplaintDetail) []models.Message {
	messages := []models.Message{
		{
			ID:         "q-" + detail.ID,
			Sender:     models.SenderApplicant,
			SenderName: applicantSenderName,
			Content:    detail.Body,
			Timestamp:  format.Date(detail.SubmittedAt),
		},
	}

	if detail.Answer != "" {
		senderName := detail.Department
		if senderName == "" {
			senderName = departmentFallbackName
		}
		messages = append(messages, models.Message{
			ID:         "a-" + detail.ID,
			Sender:     models.SenderDepartment,
			SenderName: senderName,
			Content:    detail.Answer,
			Timestamp:  format.Date(detail.UpdatedAt),
		})
	}

	return messages
}

// Answered reports whether the thread contains a department response.
func Answered(messages []models.Message) bool {
	for _, m := range messages {
		if m.Sender == models.SenderDepartment {
			return true
		}
	}
	return false
}
