package model

import (
	"time"

	"github.com/google/uuid"
)

// SharedResultModel is one tokenized share link. The token is the whole
// secret; resolving it requires no login.
type SharedResultModel struct {
	SharedResultID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:shared_result_id" json:"shared_result_id"`

	SharedResultToken string `gorm:"type:varchar(100);not null;uniqueIndex;column:shared_result_token" json:"shared_result_token"`

	SharedResultSharedWith *string `gorm:"type:varchar(120);column:shared_result_shared_with_email" json:"shared_result_shared_with_email,omitempty"`
	SharedResultSharedBy   *string `gorm:"type:varchar(120);column:shared_result_shared_by" json:"shared_result_shared_by,omitempty"`

	SharedResultExpiresAt time.Time `gorm:"type:timestamptz;not null;column:shared_result_expires_at" json:"shared_result_expires_at"`
	SharedResultIsActive  bool      `gorm:"not null;default:true;column:shared_result_is_active" json:"shared_result_is_active"`

	SharedResultViewCount    int        `gorm:"not null;default:0;column:shared_result_view_count" json:"shared_result_view_count"`
	SharedResultLastViewedAt *time.Time `gorm:"type:timestamptz;column:shared_result_last_viewed_at" json:"shared_result_last_viewed_at,omitempty"`

	SharedResultCreatedAt time.Time `gorm:"type:timestamptz;not null;autoCreateTime;column:shared_result_created_at" json:"shared_result_created_at"`
}

func (SharedResultModel) TableName() string { return "shared_results" }

// Expired reports whether the link has passed its deadline, independent of
// the stored is_active flag.
func (m *SharedResultModel) Expired(now time.Time) bool {
	return now.After(m.SharedResultExpiresAt)
}

// ShareAccess is the resolve-time verdict for a link.
type ShareAccess int

const (
	ShareAccessible ShareAccess = iota
	ShareDeactivated
	ShareExpired
)

// Access checks the deactivation flag before the deadline, so a revoked
// link reports revoked even after it also expires.
func (m *SharedResultModel) Access(now time.Time) ShareAccess {
	if !m.SharedResultIsActive {
		return ShareDeactivated
	}
	if m.Expired(now) {
		return ShareExpired
	}
	return ShareAccessible
}

// RecordView bumps the counters for one successful resolution.
func (m *SharedResultModel) RecordView(now time.Time) {
	m.SharedResultViewCount++
	m.SharedResultLastViewedAt = &now
}

// SharedResultStudentModel pins the exact students a share covers. The
// snapshot is taken at creation; later uploads never leak into old links.
type SharedResultStudentModel struct {
	SharedResultStudentShareID   uuid.UUID `gorm:"type:uuid;primaryKey;column:shared_result_student_share_id" json:"shared_result_student_share_id"`
	SharedResultStudentStudentID uuid.UUID `gorm:"type:uuid;primaryKey;column:shared_result_student_student_id" json:"shared_result_student_student_id"`
}

func (SharedResultStudentModel) TableName() string { return "shared_result_students" }
