package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	shareCtl "studentresults_backend/internals/features/shares/controller"
)

func ShareRoutes(api fiber.Router, db *gorm.DB) {
	ctl := shareCtl.NewShareController(db, nil)

	api.Post("/share/create", ctl.CreateShare)
	api.Get("/share/:token", ctl.ResolveShare)
	api.Post("/share/:token/deactivate", ctl.DeactivateShare)
	api.Get("/shares", ctl.ListShares)
}
