package models

type StudentChangedEvent struct {
	EventID   string `json:"event_id"`
	Action    string `json:"action"`
	StudentID int64  `json:"student_id"`
	Email     string `json:"email,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

const (
	StudentCreated = "created"
	StudentUpdated = "updated"
	StudentDeleted = "deleted"
)
