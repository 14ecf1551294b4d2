package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationCtl "studentresults_backend/internals/features/notifications/controller"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctl := notificationCtl.NewNotificationController(db, nil)

	api.Post("/send-results", ctl.SendResults)
	api.Post("/test-email-config", ctl.TestEmailConfig)
	api.Get("/email-logs", ctl.GetEmailLogs)
	api.Get("/email-logs/export", ctl.ExportEmailLogs)
}
