package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// EmailLogModel records one send attempt. Many entries may exist per
// student; history is read newest first.
type EmailLogModel struct {
	EmailLogID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:email_log_id" json:"email_log_id"`
	EmailLogStudentID uuid.UUID  `gorm:"type:uuid;not null;index;column:email_log_student_id" json:"email_log_student_id"`
	EmailLogRecipient string     `gorm:"type:varchar(120);not null;column:email_log_recipient" json:"email_log_recipient"`
	EmailLogStatus    string     `gorm:"type:varchar(20);not null;default:'pending';column:email_log_status" json:"email_log_status"`
	EmailLogError     *string    `gorm:"type:text;column:email_log_error_message" json:"email_log_error_message,omitempty"`
	EmailLogSentAt    *time.Time `gorm:"type:timestamptz;column:email_log_sent_at" json:"email_log_sent_at,omitempty"`
	EmailLogCreatedAt time.Time  `gorm:"type:timestamptz;not null;autoCreateTime;column:email_log_created_at" json:"email_log_created_at"`
}

func (EmailLogModel) TableName() string { return "email_logs" }
