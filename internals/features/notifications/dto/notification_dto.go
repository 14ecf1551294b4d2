package dto

import "time"

// EmailConfigDTO is the caller-supplied SMTP identity. It lives only for
// the duration of the request.
type EmailConfigDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SendResultsRequest selects who to mail. An empty StudentIDs list means
// every stored student.
type SendResultsRequest struct {
	EmailConfig EmailConfigDTO `json:"email_config" validate:"required"`
	StudentIDs  []string       `json:"student_ids" validate:"omitempty,dive,uuid4"`
}

// TestEmailConfigRequest verifies credentials without sending anything.
type TestEmailConfigRequest struct {
	EmailConfig EmailConfigDTO `json:"email_config" validate:"required"`
}

// EmailLogResponseDTO is one send attempt joined with its student.
type EmailLogResponseDTO struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	StudentName  string     `json:"student_name"`
	Recipient    string     `json:"recipient"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
