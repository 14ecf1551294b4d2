package dto

import (
	"strings"
	"time"

	"studentresults_backend/internals/features/imports/pipeline"
	"studentresults_backend/internals/features/students/model"
)

// =======================
// Request DTO
// =======================

// IncomingStudent is one reviewed record from the preview screen. Email is
// the only hard requirement; score tolerates both JSON numbers and strings.
type IncomingStudent struct {
	StudentID *string        `json:"student_id"`
	Name      *string        `json:"name"`
	Email     string         `json:"email"`
	Score     any            `json:"score"`
	Subject   *string        `json:"subject"`
	Batch     *string        `json:"batch"`
	Comment   *string        `json:"comment"`
	ExtraData map[string]any `json:"extra_data"`
}

type SaveStudentsRequest struct {
	Students []IncomingStudent `json:"students" validate:"required,min=1"`
}

type UpdateStudentRequest struct {
	StudentID *string `json:"student_id"`
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Score     any     `json:"score"`
	Subject   *string `json:"subject"`
	Batch     *string `json:"batch"`
	Comment   *string `json:"comment"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment"`
}

// =======================
// Response DTO
// =======================

type StudentResponseDTO struct {
	ID        string         `json:"id"`
	StudentID *string        `json:"student_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Score     any            `json:"score"`
	Subject   *string        `json:"subject"`
	Batch     *string        `json:"batch"`
	Comment   *string        `json:"comment"`
	ExtraData map[string]any `json:"extra_data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func FromModel(m *model.StudentModel) StudentResponseDTO {
	return StudentResponseDTO{
		ID:        m.StudentID.String(),
		StudentID: m.StudentCode,
		Name:      m.StudentName,
		Email:     m.StudentEmail,
		Score:     pipeline.FoldNumber(m.StudentScore),
		Subject:   m.StudentSubject,
		Batch:     m.StudentBatch,
		Comment:   m.StudentComment,
		ExtraData: m.ExtraMap(),
		CreatedAt: m.StudentCreatedAt,
		UpdatedAt: m.StudentUpdatedAt,
	}
}

func FromModels(models []model.StudentModel) []StudentResponseDTO {
	out := make([]StudentResponseDTO, 0, len(models))
	for i := range models {
		out = append(out, FromModel(&models[i]))
	}
	return out
}

// ScoreValue parses the incoming score leniently: absent or unparsable is 0.
func (s *IncomingStudent) ScoreValue() float64 {
	return scoreOf(s.Score)
}

func scoreOf(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case string:
		return pipeline.CoerceScore(t)
	}
	return 0
}

// ApplyTo overwrites the persisted record with this upload's values,
// canonical fields and extension bag alike. Last writer wins.
func (s *IncomingStudent) ApplyTo(m *model.StudentModel) {
	m.StudentCode = trimPtr(s.StudentID)
	m.StudentName = derefTrim(s.Name)
	m.StudentEmail = strings.TrimSpace(s.Email)
	m.StudentScore = s.ScoreValue()
	m.StudentSubject = trimPtr(s.Subject)
	m.StudentBatch = trimPtr(s.Batch)
	m.StudentComment = trimPtr(s.Comment)
	m.SetExtraMap(s.ExtraData)
	m.SyncCommentToExtra()
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func derefTrim(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
