// Package queue defines message payloads exchanged over the message broker.
package queue

// DecisionQueueName is the durable queue carrying ConsultationDecidedEvent.
const DecisionQueueName = "consultation.decided"

// ConsultationDecidedEvent is published after a professor approves or
// rejects a pending request.  It carries enough for downstream consumers to
// log or notify without querying the primary database.
type ConsultationDecidedEvent struct {
	RequestID        uint64  `json:"request_id"`
	StudentID        uint64  `json:"student_id"`
	ProfessorID      uint64  `json:"professor_id"`
	CourseID         uint64  `json:"course_id"`
	Status           string  `json:"status"`                      // approved | rejected
	ApprovedDate     *string `json:"approved_date,omitempty"`     // YYYY-MM-DD, approved only
	ApprovedTime     *string `json:"approved_time,omitempty"`     // HH:MM, approved only
	ConsultationType *string `json:"consultation_type,omitempty"` // face_to_face | online
	DecidedAt        string  `json:"decided_at"`                  // RFC3339, UTC
}
