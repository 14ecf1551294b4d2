package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helpRoute "studentresults_backend/internals/features/help/route"
	importRoute "studentresults_backend/internals/features/imports/route"
	notificationRoute "studentresults_backend/internals/features/notifications/route"
	shareRoute "studentresults_backend/internals/features/shares/route"
	studentRoute "studentresults_backend/internals/features/students/route"
)

// SetupRoutes mounts every feature under the /api prefix.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	importRoute.ImportRoutes(api, db)
	studentRoute.StudentRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
	shareRoute.ShareRoutes(api, db)
	helpRoute.HelpRoutes(api)
}
