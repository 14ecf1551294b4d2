package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	helper "studentresults_backend/internals/helpers"
)

type HelpController struct {
	Validator *validator.Validate
}

func NewHelpController(v *validator.Validate) *HelpController {
	if v == nil {
		v = validator.New()
	}
	return &HelpController{Validator: v}
}

type faqEntry struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

var helpFAQs = []faqEntry{
	{
		Question: "What file formats are supported?",
		Answer:   "CSV (.csv) and Excel (.xlsx, .xls) files are supported.",
	},
	{
		Question: "How to send using my own Gmail as sender?",
		Answer:   "Enter your Gmail and App Password on the home page, test configuration, then click Send Results Now.",
	},
	{
		Question: "Gmail authentication failed",
		Answer:   "Use a Gmail App Password (requires 2-Step Verification). Generate at https://myaccount.google.com/apppasswords.",
	},
	{
		Question: "Emails go to spam",
		Answer:   "Ask recipients to mark as Not Spam, avoid spammy content, and use a domain with SPF/DKIM if possible.",
	},
	{
		Question: "Rate limits or too many failures",
		Answer:   "Send in smaller batches, verify email addresses, and retry later if rate-limited.",
	},
	{
		Question: "Receive copies of sent emails",
		Answer:   "Set MAIL_OWNER_EMAIL in the environment to receive BCC copies.",
	},
}

// keyed variants of the FAQs used for keyword scoring against a free-text
// question.
var helpAnswers = []struct {
	keywords string
	answer   string
}{
	{"file formats supported", "CSV (.csv) and Excel (.xlsx, .xls) files are supported."},
	{"send using my own gmail", "Enter your Gmail and App Password on the home page, test configuration, then click Send Results Now."},
	{"gmail authentication failed", "Use a Gmail App Password (requires 2-Step Verification). Generate at https://myaccount.google.com/apppasswords."},
	{"emails spam", "Ask recipients to mark as Not Spam, avoid spammy content, and use a domain with SPF/DKIM if possible."},
	{"rate limit failure", "Send in smaller batches, verify email addresses, and retry later if rate-limited."},
	{"bcc owner copy", "Set MAIL_OWNER_EMAIL in the environment to receive BCC copies."},
}

const helpFallbackAnswer = "Please check the Help page FAQs and Troubleshooting. If the issue persists, verify your file format and email configuration."

/* ============================================
   FAQ LIST
   GET /api/help-faqs
============================================ */

func (ctl *HelpController) GetFAQs(c *fiber.Ctx) error {
	return helper.JsonOK(c, "OK", helpFAQs)
}

/* ============================================
   FREE-TEXT QUESTION
   POST /api/help-question
============================================ */

type helpQuestionRequest struct {
	Query string `json:"query" validate:"required"`
}

func (ctl *HelpController) AnswerQuestion(c *fiber.Ctx) error {
	var p helpQuestionRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query is required")
	}
	query := strings.ToLower(strings.TrimSpace(p.Query))
	if query == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query is required")
	}

	return helper.JsonOK(c, "OK", fiber.Map{"answer": BestAnswer(query)})
}

// BestAnswer scores each FAQ by how many of its keywords appear in the
// lower-cased query; ties keep the earlier entry, zero hits fall back to
// the generic pointer.
func BestAnswer(query string) string {
	best := ""
	bestScore := 0
	for _, entry := range helpAnswers {
		score := 0
		for _, token := range strings.Fields(entry.keywords) {
			if strings.Contains(query, token) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.answer
		}
	}
	if bestScore == 0 {
		return helpFallbackAnswer
	}
	return best
}
