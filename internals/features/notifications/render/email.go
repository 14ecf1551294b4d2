package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"studentresults_backend/internals/features/imports/pipeline"
	studentModel "studentresults_backend/internals/features/students/model"
)

// score bands for the circle and the encouragement banner
const (
	colorGreen  = "#27ae60"
	colorOrange = "#f39c12"
	colorRed    = "#e74c3c"
	colorAccent = "#667eea"
)

func scoreColor(score float64) string {
	switch {
	case score >= 80:
		return colorGreen
	case score >= 60:
		return colorOrange
	default:
		return colorRed
	}
}

func encouragement(score float64) (string, string) {
	switch {
	case score >= 90:
		return "Excellent work! Keep up the great performance!", colorGreen
	case score >= 80:
		return "Great job! You're doing very well!", colorGreen
	case score >= 70:
		return "Good work! Keep pushing forward!", colorOrange
	case score >= 60:
		return "Keep working hard! You're making progress!", colorOrange
	default:
		return "Don't give up! Every effort counts towards improvement!", colorRed
	}
}

// Subject builds the mail subject line.
func Subject(s *studentModel.StudentModel) string {
	subject := "Assessment"
	if s.StudentSubject != nil && strings.TrimSpace(*s.StudentSubject) != "" {
		subject = strings.TrimSpace(*s.StudentSubject)
	}
	return "Your Academic Result - " + subject
}

// BuildResultEmail renders one student's result summary as a standalone
// HTML document. Field order comes from SelectFields; everything uploaded
// is escaped before it reaches markup.
func BuildResultEmail(s *studentModel.StudentModel, now time.Time) string {
	fields := SelectFields(s)
	score := s.StudentScore
	circleColor := scoreColor(score)
	message, messageColor := encouragement(score)

	name := strings.TrimSpace(s.StudentName)
	if name == "" {
		name = pipeline.DefaultName
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Your Academic Result</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f7fa;">
<div style="max-width: 600px; margin: 40px auto; padding: 20px;">
<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 12px 12px 0 0; padding: 30px; text-align: center;">
<h1 style="margin: 0; color: white; font-size: 24px; font-weight: 600;">Academic Results</h1>
<p style="margin: 8px 0 0 0; color: rgba(255,255,255,0.9); font-size: 14px;">Your performance summary is ready</p>
</div>
<div style="background: linear-gradient(135deg, #e8eaf6 0%, #c5cae9 100%); border-radius: 0 0 16px 16px; padding: 40px;">
`)

	fmt.Fprintf(&b, `<div style="text-align: center; margin-bottom: 30px;">
<h2 style="margin: 0; font-size: 22px; color: #202124; font-weight: 500;">Hello %s!</h2>
<p style="margin: 8px 0 0 0; font-size: 14px; color: #5f6368;">We're excited to share your academic results with you. Here's how you performed!</p>
</div>
`, html.EscapeString(strings.ToUpper(name)))

	fmt.Fprintf(&b, `<div style="text-align: center; margin-bottom: 30px;">
<div style="background-color: %s; color: white; font-size: 52px; font-weight: bold; border-radius: 50%%; width: 160px; height: 160px; margin: 0 auto; display: table;">
<span style="display: table-cell; vertical-align: middle; text-align: center;">%s</span>
</div>
<p style="margin: 20px 0 0 0; font-size: 20px; color: #5f6368; font-weight: 500;">Your Score</p>
</div>
`, circleColor, html.EscapeString(pipeline.Stringify(pipeline.FoldNumber(score))))

	// results table: headers then one data row, in SelectFields order
	b.WriteString(`<div style="background-color: white; border-radius: 12px; padding: 20px; overflow-x: auto;">
<table style="width: 100%; border-collapse: collapse;">
<thead>
<tr style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);">
`)
	for _, f := range fields {
		fmt.Fprintf(&b, `<th style="padding: 14px 12px; text-align: left; color: white; font-size: 11px; font-weight: 700; letter-spacing: 0.5px; white-space: nowrap;">%s</th>
`, html.EscapeString(f.Label))
	}
	b.WriteString(`</tr>
</thead>
<tbody>
<tr style="background-color: #f8f9fa;">
`)
	for _, f := range fields {
		style := "padding: 14px 12px; font-size: 14px; font-weight: 500; color: #495057; border-right: 1px solid #dee2e6;"
		if f.Highlight {
			style = "padding: 14px 12px; font-size: 15px; font-weight: 700; color: #202124; border-bottom: 2px solid #667eea; background-color: #fff3cd;"
		}
		fmt.Fprintf(&b, `<td style="%s">%s</td>
`, style, html.EscapeString(f.Value))
	}
	b.WriteString(`</tr>
</tbody>
</table>
</div>
`)

	fmt.Fprintf(&b, `<div style="background-color: %s; color: white; border-radius: 8px; padding: 16px 24px; margin-top: 24px; text-align: center;">
<p style="margin: 0; font-size: 15px; font-weight: 500; line-height: 1.5;">%s</p>
</div>
</div>
`, messageColor, html.EscapeString(message))

	fmt.Fprintf(&b, `<div style="text-align: center; margin-top: 30px; padding: 20px;">
<p style="color: #80868b; font-size: 13px; margin: 0; line-height: 1.6;">This is an automated email from the Student Results System.<br>Please do not reply to this message.</p>
<p style="color: #9aa0a6; font-size: 12px; margin: 12px 0 0 0;">Generated on %s</p>
</div>
</div>
</body>
</html>
`, now.Format("January 2, 2006 at 3:04 PM"))

	return b.String()
}
