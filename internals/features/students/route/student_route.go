package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtl "studentresults_backend/internals/features/students/controller"
)

func StudentRoutes(api fiber.Router, db *gorm.DB) {
	ctl := studentCtl.NewStudentController(db, nil)

	api.Post("/save-students", ctl.SaveStudents)
	api.Get("/students", ctl.GetStudents)
	api.Put("/students/:id", ctl.UpdateStudent)
	api.Put("/students/:id/comment", ctl.UpdateComment)
	api.Delete("/clear-students", ctl.ClearStudents)
}
