package dto

import (
	"studentresults_backend/internals/features/imports/pipeline"
)

// UploadRecordDTO is one reviewable row produced by the pipeline, before
// anything is persisted.
type UploadRecordDTO struct {
	StudentID any            `json:"student_id,omitempty"`
	Name      any            `json:"name"`
	Email     string         `json:"email"`
	Score     float64        `json:"score"`
	Subject   any            `json:"subject,omitempty"`
	Batch     any            `json:"batch,omitempty"`
	Comment   any            `json:"comment,omitempty"`
	ExtraData map[string]any `json:"extra_data,omitempty"`
}

func RecordToDTO(r *pipeline.Record) UploadRecordDTO {
	return UploadRecordDTO{
		StudentID: r.StudentID,
		Name:      r.Name,
		Email:     r.Email,
		Score:     r.Score,
		Subject:   r.Subject,
		Batch:     r.Batch,
		Comment:   r.Comment,
		ExtraData: r.Extra.ToMap(),
	}
}

func RecordsToDTO(records []pipeline.Record) []UploadRecordDTO {
	out := make([]UploadRecordDTO, 0, len(records))
	for i := range records {
		out = append(out, RecordToDTO(&records[i]))
	}
	return out
}

// MapColumnsRequest carries the frontend's manual column assignment after a
// failed upload: row maps plus {source column -> canonical field}. The
// optional ColumnOrder list restores file order lost in JSON maps.
type MapColumnsRequest struct {
	Data        []map[string]any  `json:"data" validate:"required,min=1"`
	Mapping     map[string]string `json:"mapping" validate:"required,min=1"`
	ColumnOrder []string          `json:"column_order"`
}
