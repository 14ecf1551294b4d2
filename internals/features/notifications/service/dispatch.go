package service

import (
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	logModel "studentresults_backend/internals/features/notifications/model"
	"studentresults_backend/internals/features/notifications/render"
	studentModel "studentresults_backend/internals/features/students/model"
)

// DispatchDetail is the per-student outcome of one send batch.
type DispatchDetail struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// DispatchSummary reports a whole batch. Total always equals Sent + Failed.
type DispatchSummary struct {
	Total   int              `json:"total"`
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Details []DispatchDetail `json:"details"`
}

// SendStudentResults renders and delivers one result email per student. A
// failed delivery is logged and reported but never aborts the batch. When
// ownerEmail is non-empty every message carries it as BCC.
func SendStudentResults(db *gorm.DB, sender Sender, students []studentModel.StudentModel, ownerEmail string) DispatchSummary {
	summary := DispatchSummary{
		Total:   len(students),
		Details: make([]DispatchDetail, 0, len(students)),
	}

	var bcc []string
	if strings.TrimSpace(ownerEmail) != "" {
		bcc = []string{strings.TrimSpace(ownerEmail)}
	}

	for i := range students {
		s := &students[i]
		detail := sendOne(db, sender, s, bcc)
		if detail.Status == logModel.EmailStatusSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
		summary.Details = append(summary.Details, detail)
	}
	return summary
}

func sendOne(db *gorm.DB, sender Sender, s *studentModel.StudentModel, bcc []string) DispatchDetail {
	detail := DispatchDetail{
		StudentID:   s.StudentID.String(),
		StudentName: s.StudentName,
		Email:       s.StudentEmail,
	}

	// Log writes are best effort; a broken log table must not block mail.
	entry := logModel.EmailLogModel{
		EmailLogStudentID: s.StudentID,
		EmailLogRecipient: s.StudentEmail,
		EmailLogStatus:    logModel.EmailStatusPending,
	}
	logged := false
	if db != nil {
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("[ERROR] email log create for %s: %v", s.StudentEmail, err)
		} else {
			logged = true
		}
	}

	subject := render.Subject(s)
	body := render.BuildResultEmail(s, time.Now())

	if err := sender.Send(s.StudentEmail, bcc, subject, body); err != nil {
		detail.Status = logModel.EmailStatusFailed
		detail.Message = err.Error()
		if logged {
			markLog(db, &entry, logModel.EmailStatusFailed, err.Error())
		}
		return detail
	}

	detail.Status = logModel.EmailStatusSent
	if logged {
		markLog(db, &entry, logModel.EmailStatusSent, "")
	}
	return detail
}

func markLog(db *gorm.DB, entry *logModel.EmailLogModel, status, errMsg string) {
	updates := map[string]any{"email_log_status": status}
	if status == logModel.EmailStatusSent {
		updates["email_log_sent_at"] = time.Now()
	}
	if errMsg != "" {
		updates["email_log_error_message"] = errMsg
	}
	if err := db.Model(entry).Updates(updates).Error; err != nil {
		log.Printf("[ERROR] email log update %s: %v", entry.EmailLogID, err)
	}
}
