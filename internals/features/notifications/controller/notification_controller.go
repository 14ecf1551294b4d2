package controller

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"gorm.io/gorm"

	"studentresults_backend/internals/configs"
	"studentresults_backend/internals/features/notifications/dto"
	"studentresults_backend/internals/features/notifications/model"
	"studentresults_backend/internals/features/notifications/service"
	studentModel "studentresults_backend/internals/features/students/model"
	helper "studentresults_backend/internals/helpers"
)

type NotificationController struct {
	DB        *gorm.DB
	Validator *validator.Validate

	// NewSender is swappable in tests; defaults to the SMTP mailer.
	NewSender func(cfg service.SMTPConfig) service.Sender
}

func NewNotificationController(db *gorm.DB, v *validator.Validate) *NotificationController {
	if v == nil {
		v = validator.New()
	}
	return &NotificationController{
		DB:        db,
		Validator: v,
		NewSender: func(cfg service.SMTPConfig) service.Sender { return service.NewMailer(cfg) },
	}
}

func smtpConfigFor(ec dto.EmailConfigDTO) service.SMTPConfig {
	return service.SMTPConfig{
		Host:     configs.MailServer(),
		Port:     configs.MailPort(),
		Username: strings.TrimSpace(ec.Email),
		Password: ec.Password,
		Sender:   configs.MailDefaultSender(),
		UseTLS:   configs.MailUseTLS(),
	}
}

/* ============================================
   SEND RESULTS
   POST /api/send-results
============================================ */

func (ctl *NotificationController) SendResults(c *fiber.Ctx) error {
	var p dto.SendResultsRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	cfg := smtpConfigFor(p.EmailConfig)
	if err := cfg.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email configuration required. Please provide your email credentials.")
	}

	var students []studentModel.StudentModel
	q := ctl.DB.Order("student_created_at ASC")
	if len(p.StudentIDs) > 0 {
		q = q.Where("student_id IN ?", p.StudentIDs)
	}
	if err := q.Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	if len(students) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No students found to send results to")
	}

	summary := service.SendStudentResults(ctl.DB, ctl.NewSender(cfg), students, configs.MailOwnerEmail())

	msg := fmt.Sprintf("Sent %d of %d result emails", summary.Sent, summary.Total)
	return helper.JsonOK(c, msg, summary)
}

/* ============================================
   TEST EMAIL CONFIG
   POST /api/test-email-config
============================================ */

func (ctl *NotificationController) TestEmailConfig(c *fiber.Ctx) error {
	var p dto.TestEmailConfigRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	cfg := smtpConfigFor(p.EmailConfig)
	if err := cfg.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email configuration required. Please provide your email credentials.")
	}

	mailer := service.NewMailer(cfg)
	if err := mailer.Verify(); err != nil {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest, "Email configuration test failed", fiber.Map{
			"error": err.Error(),
		})
	}
	return helper.JsonOK(c, "Email configuration is working", fiber.Map{
		"server": cfg.Host,
		"port":   cfg.Port,
	})
}

/* ============================================
   EMAIL LOGS
   GET /api/email-logs
   GET /api/email-logs/export
============================================ */

type emailLogRow struct {
	model.EmailLogModel
	StudentName string `gorm:"column:student_name"`
}

func (ctl *NotificationController) loadLogs() ([]emailLogRow, error) {
	var rows []emailLogRow
	err := ctl.DB.
		Table("email_logs").
		Select("email_logs.*, students.student_name").
		Joins("LEFT JOIN students ON students.student_id = email_logs.email_log_student_id").
		Order("email_logs.email_log_created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (ctl *NotificationController) GetEmailLogs(c *fiber.Ctx) error {
	rows, err := ctl.loadLogs()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load email logs")
	}

	out := make([]dto.EmailLogResponseDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.EmailLogResponseDTO{
			ID:           r.EmailLogID.String(),
			StudentID:    r.EmailLogStudentID.String(),
			StudentName:  r.StudentName,
			Recipient:    r.EmailLogRecipient,
			Status:       r.EmailLogStatus,
			ErrorMessage: r.EmailLogError,
			SentAt:       r.EmailLogSentAt,
			CreatedAt:    r.EmailLogCreatedAt,
		})
	}
	return helper.JsonOK(c, "OK", fiber.Map{"logs": out, "total": len(out)})
}

func (ctl *NotificationController) ExportEmailLogs(c *fiber.Ctx) error {
	rows, err := ctl.loadLogs()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load email logs")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Student Name", "Email", "Status", "Error", "Sent At", "Created At"})
	for _, r := range rows {
		sentAt := ""
		if r.EmailLogSentAt != nil {
			sentAt = r.EmailLogSentAt.Format(time.RFC3339)
		}
		errMsg := ""
		if r.EmailLogError != nil {
			errMsg = *r.EmailLogError
		}
		_ = w.Write([]string{
			r.StudentName,
			r.EmailLogRecipient,
			r.EmailLogStatus,
			errMsg,
			sentAt,
			r.EmailLogCreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to export email logs")
	}

	filename := fmt.Sprintf("email_logs_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
