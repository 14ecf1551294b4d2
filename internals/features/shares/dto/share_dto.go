package dto

import (
	"time"

	"studentresults_backend/internals/features/shares/model"
)

// CreateShareRequest builds a new link. StudentIDs empty means share every
// stored student; ExpiresInDays zero falls back to the 30 day default.
type CreateShareRequest struct {
	StudentIDs      []string `json:"student_ids" validate:"omitempty,dive,uuid4"`
	SharedWithEmail *string  `json:"shared_with_email" validate:"omitempty,email"`
	SharedBy        *string  `json:"shared_by" validate:"omitempty,max=120"`
	ExpiresInDays   int      `json:"expires_in_days" validate:"omitempty,min=1,max=365"`
}

// ShareResponseDTO describes one link for the management endpoints.
type ShareResponseDTO struct {
	ID           string     `json:"id"`
	Token        string     `json:"token"`
	ShareURL     string     `json:"share_url"`
	SharedWith   *string    `json:"shared_with_email,omitempty"`
	SharedBy     *string    `json:"shared_by,omitempty"`
	ExpiresAt    time.Time  `json:"expires_at"`
	IsActive     bool       `json:"is_active"`
	ViewCount    int        `json:"view_count"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StudentCount int        `json:"student_count"`
}

func ShareFromModel(m *model.SharedResultModel, shareURL string, studentCount int) ShareResponseDTO {
	return ShareResponseDTO{
		ID:           m.SharedResultID.String(),
		Token:        m.SharedResultToken,
		ShareURL:     shareURL,
		SharedWith:   m.SharedResultSharedWith,
		SharedBy:     m.SharedResultSharedBy,
		ExpiresAt:    m.SharedResultExpiresAt,
		IsActive:     m.SharedResultIsActive,
		ViewCount:    m.SharedResultViewCount,
		LastViewedAt: m.SharedResultLastViewedAt,
		CreatedAt:    m.SharedResultCreatedAt,
		StudentCount: studentCount,
	}
}
