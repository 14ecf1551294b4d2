package route

import (
	"github.com/gofiber/fiber/v2"

	helpCtl "studentresults_backend/internals/features/help/controller"
)

func HelpRoutes(api fiber.Router) {
	ctl := helpCtl.NewHelpController(nil)

	api.Get("/help-faqs", ctl.GetFAQs)
	api.Post("/help-question", ctl.AnswerQuestion)
}
