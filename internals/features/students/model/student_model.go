package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentModel struct {
	// ============ PK ============
	StudentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`

	// ============ Canonical fields ============
	// External id carried in the uploaded file's "student_id" column.
	StudentCode  *string `gorm:"type:varchar(50);column:student_code" json:"student_code,omitempty"`
	StudentName  string  `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentEmail string  `gorm:"type:varchar(120);not null;uniqueIndex;column:student_email" json:"student_email"`
	StudentScore float64 `gorm:"not null;default:0;column:student_score" json:"student_score"`

	StudentSubject *string `gorm:"type:varchar(120);column:student_subject" json:"student_subject,omitempty"`
	StudentBatch   *string `gorm:"type:varchar(50);column:student_batch" json:"student_batch,omitempty"`
	StudentComment *string `gorm:"type:text;column:student_comment" json:"student_comment,omitempty"`

	// Every non-canonical upload column, keyed as uploaded, with the display
	// order under "_column_order".
	StudentExtraData datatypes.JSON `gorm:"type:jsonb;column:student_extra_data" json:"student_extra_data,omitempty"`

	// ============ Audit ============
	StudentCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"type:timestamptz;not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

// ============ Hooks: validation & light normalization ============

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentName = strings.TrimSpace(m.StudentName)
	m.StudentEmail = strings.TrimSpace(m.StudentEmail)
	if m.StudentEmail == "" {
		return errors.New("student_email must not be empty")
	}
	return nil
}

// ExtraMap decodes the JSONB bag; nil when empty.
func (m *StudentModel) ExtraMap() map[string]any {
	if len(m.StudentExtraData) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(m.StudentExtraData, &out); err != nil {
		return nil
	}
	return out
}

// SetExtraMap re-encodes the bag; nil/empty clears the column.
func (m *StudentModel) SetExtraMap(extra map[string]any) {
	if len(extra) == 0 {
		m.StudentExtraData = nil
		return
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return
	}
	m.StudentExtraData = datatypes.JSON(raw)
}

// SyncCommentToExtra mirrors the comment field into the bag's "comment" key
// so re-rendering picks edits up without a re-upload.
func (m *StudentModel) SyncCommentToExtra() {
	extra := m.ExtraMap()
	comment := ""
	if m.StudentComment != nil {
		comment = strings.TrimSpace(*m.StudentComment)
	}
	if comment != "" {
		if extra == nil {
			extra = map[string]any{}
		}
		extra["comment"] = comment
	} else {
		delete(extra, "comment")
	}
	m.SetExtraMap(extra)
}
