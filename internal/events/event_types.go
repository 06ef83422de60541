package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventProblemCreated         EventType = "problem_created"
	EventProblemUpdated         EventType = "problem_updated"
	EventProblemDeleted         EventType = "problem_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PasswordResetRequestedPayload carries the reset token for the delivery stub.
type PasswordResetRequestedPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// ProblemChangedPayload payload for problem create/update/delete events.
type ProblemChangedPayload struct {
	EntryID   string `json:"entry_id"`
	ProblemID string `json:"problem_id"`
	Title     string `json:"title"`
}
