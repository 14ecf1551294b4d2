package render

import (
	"strings"

	"studentresults_backend/internals/features/imports/pipeline"
	studentModel "studentresults_backend/internals/features/students/model"
)

// Field is one (label, value) pair of the rendered result table.
type Field struct {
	Label     string
	Value     string
	Highlight bool
}

// comment-like extension keys feed comment resolution instead of the table.
var commentKeys = map[string]struct{}{
	"comment":  {},
	"comments": {},
}

// pinned keys have fixed positions after the file-order replay: TOTAL is
// authoritative from the canonical score, GRADE follows it.
var pinnedKeys = map[string]struct{}{
	"total": {},
	"grade": {},
}

// SelectFields produces exactly what the result table must show, in order:
// extension fields replayed in original file order, then TOTAL, then GRADE
// (if any), then one COMMENT. Pure; calling it twice yields identical
// output.
func SelectFields(s *studentModel.StudentModel) []Field {
	extra := s.ExtraMap()
	bag := pipeline.BagFromMap(extra)

	fields := make([]Field, 0, len(bag.Fields)+3)
	for _, f := range bag.Fields {
		key := strings.ToLower(f.Key)
		if _, pinned := pinnedKeys[key]; pinned {
			continue
		}
		if _, isComment := commentKeys[key]; isComment {
			continue
		}
		if pipeline.IsAbsentValue(f.Value) {
			continue
		}
		fields = append(fields, Field{
			Label:     labelize(f.Key),
			Value:     pipeline.Stringify(f.Value),
			Highlight: IsHighlight(f.Key),
		})
	}

	// TOTAL always reflects the canonical score, exactly once, even when an
	// uploaded "total" column disagrees.
	fields = append(fields, Field{
		Label:     "TOTAL",
		Value:     pipeline.Stringify(pipeline.FoldNumber(s.StudentScore)),
		Highlight: true,
	})

	if grade, ok := extra["grade"]; ok && !pipeline.IsAbsentValue(grade) {
		fields = append(fields, Field{
			Label:     "GRADE",
			Value:     pipeline.Stringify(grade),
			Highlight: true,
		})
	}

	fields = append(fields, Field{
		Label: "COMMENT",
		Value: resolveComment(s, extra),
	})
	return fields
}

// resolveComment: stored comment → bag comment → score-derived fallback.
func resolveComment(s *studentModel.StudentModel, extra map[string]any) string {
	if s.StudentComment != nil && !pipeline.IsAbsentValue(*s.StudentComment) {
		return strings.TrimSpace(*s.StudentComment)
	}
	for _, key := range []string{"comment", "comments"} {
		if v, ok := extra[key]; ok && !pipeline.IsAbsentValue(v) {
			return pipeline.Stringify(v)
		}
	}
	return AutoComment(s.StudentScore)
}

// IsHighlight marks the presentation-emphasis keys.
func IsHighlight(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "total", "grade", "score":
		return true
	}
	return false
}

// labelize turns an uploaded column key into a table header: underscores
// and dashes become spaces, everything upper-cased.
func labelize(key string) string {
	label := strings.ReplaceAll(key, "_", " ")
	label = strings.ReplaceAll(label, "-", " ")
	return strings.ToUpper(strings.TrimSpace(label))
}
