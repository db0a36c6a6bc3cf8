package models

// Sender distinguishes the two sides of a complaint thread.
type Sender string

const (
	SenderApplicant  Sender = "applicant"
	SenderDepartment Sender = "department"
)

// Message is one entry of a complaint's display thread. Messages are derived
// from the complaint body and its optional answer on every detail fetch; they
// are never persisted.
type Message struct {
	ID         string
	Sender     Sender
	SenderName string
	Content    string
	// Timestamp is the message date truncated to "2006-01-02".
	Timestamp string
}
