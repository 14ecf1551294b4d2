package render

import (
	"strconv"
	"strings"
)

// commentLadder maps score bands (inclusive lower bound, highest first) to
// the fallback remark used when no explicit comment exists.
var commentLadder = []struct {
	min  float64
	text string
}{
	{90, "Excellent work! Outstanding performance!"},
	{85, "Great job! Keep up the excellent work!"},
	{80, "Very good! You're doing great!"},
	{75, "Good work! Keep pushing forward!"},
	{70, "Nice effort! Keep improving!"},
	{65, "Good try! You can do better!"},
	{60, "Keep working! You're making progress!"},
}

const (
	commentFloor   = "Try more! Don't give up!"
	commentGeneric = "Keep learning and growing!"
)

// AutoComment picks the remark for a numeric score.
func AutoComment(score float64) string {
	for _, band := range commentLadder {
		if score >= band.min {
			return band.text
		}
	}
	return commentFloor
}

// AutoCommentOf accepts the raw score value; anything non-numeric gets the
// generic remark instead of a band.
func AutoCommentOf(v any) string {
	switch t := v.(type) {
	case float64:
		return AutoComment(t)
	case int64:
		return AutoComment(float64(t))
	case int:
		return AutoComment(float64(t))
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return AutoComment(0)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return commentGeneric
		}
		return AutoComment(f)
	case nil:
		return AutoComment(0)
	}
	return commentGeneric
}
