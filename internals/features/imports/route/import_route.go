package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	importCtl "studentresults_backend/internals/features/imports/controller"
)

func ImportRoutes(api fiber.Router, db *gorm.DB) {
	ctl := importCtl.NewImportController(db, nil)

	api.Post("/upload", ctl.Upload)
	api.Post("/map-columns", ctl.MapColumns)
	api.Get("/download-sample", ctl.DownloadSample)
}
