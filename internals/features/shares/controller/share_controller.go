package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentresults_backend/internals/configs"
	"studentresults_backend/internals/features/shares/dto"
	"studentresults_backend/internals/features/shares/model"
	studentDTO "studentresults_backend/internals/features/students/dto"
	studentModel "studentresults_backend/internals/features/students/model"
	helper "studentresults_backend/internals/helpers"
)

const defaultShareExpiryDays = 30

type ShareController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewShareController(db *gorm.DB, v *validator.Validate) *ShareController {
	if v == nil {
		v = validator.New()
	}
	return &ShareController{DB: db, Validator: v}
}

func shareURLFor(token string) string {
	return fmt.Sprintf("%s/share/%s", strings.TrimRight(configs.BaseURL(), "/"), token)
}

/* ============================================
   CREATE
   POST /api/share/create
============================================ */

func (ctl *ShareController) CreateShare(c *fiber.Ctx) error {
	var p dto.CreateShareRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var students []studentModel.StudentModel
	q := ctl.DB.Select("student_id")
	if len(p.StudentIDs) > 0 {
		q = q.Where("student_id IN ?", p.StudentIDs)
	}
	if err := q.Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	if len(students) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No students found to share")
	}
	if len(p.StudentIDs) > 0 && len(students) != len(p.StudentIDs) {
		return helper.JsonError(c, fiber.StatusNotFound, "Some requested students do not exist")
	}

	days := p.ExpiresInDays
	if days <= 0 {
		days = defaultShareExpiryDays
	}

	share := model.SharedResultModel{
		SharedResultToken:      uuid.NewString(),
		SharedResultSharedWith: trimPtr(p.SharedWithEmail),
		SharedResultSharedBy:   trimPtr(p.SharedBy),
		SharedResultExpiresAt:  time.Now().AddDate(0, 0, days),
		SharedResultIsActive:   true,
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&share).Error; err != nil {
			return err
		}
		joins := make([]model.SharedResultStudentModel, 0, len(students))
		for _, s := range students {
			joins = append(joins, model.SharedResultStudentModel{
				SharedResultStudentShareID:   share.SharedResultID,
				SharedResultStudentStudentID: s.StudentID,
			})
		}
		return tx.Create(&joins).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create share link")
	}

	resp := dto.ShareFromModel(&share, shareURLFor(share.SharedResultToken), len(students))
	return helper.JsonCreated(c, "Share link created", resp)
}

/* ============================================
   RESOLVE
   GET /api/share/:token
============================================ */

func (ctl *ShareController) ResolveShare(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Share token required")
	}

	var share model.SharedResultModel
	if err := ctl.DB.Where("shared_result_token = ?", token).First(&share).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Share link not found")
	}
	now := time.Now()
	switch share.Access(now) {
	case model.ShareDeactivated:
		return helper.JsonError(c, fiber.StatusGone, "This share link has been deactivated")
	case model.ShareExpired:
		// expiry is detected lazily; flip the flag on first access past the
		// deadline
		_ = ctl.DB.Model(&share).Update("shared_result_is_active", false).Error
		return helper.JsonError(c, fiber.StatusGone, "This share link has expired")
	}

	var joins []model.SharedResultStudentModel
	if err := ctl.DB.Where("shared_result_student_share_id = ?", share.SharedResultID).Find(&joins).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve share link")
	}
	ids := make([]uuid.UUID, 0, len(joins))
	for _, j := range joins {
		ids = append(ids, j.SharedResultStudentStudentID)
	}

	var students []studentModel.StudentModel
	if len(ids) > 0 {
		if err := ctl.DB.Where("student_id IN ?", ids).Order("student_created_at ASC").Find(&students).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load shared students")
		}
	}

	share.RecordView(now)
	updates := map[string]any{
		"shared_result_view_count":     share.SharedResultViewCount,
		"shared_result_last_viewed_at": share.SharedResultLastViewedAt,
	}
	if err := ctl.DB.Model(&share).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record share view")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"students":    studentDTO.FromModels(students),
		"shared_by":   share.SharedResultSharedBy,
		"shared_with": share.SharedResultSharedWith,
		"expires_at":  share.SharedResultExpiresAt,
		"view_count":  share.SharedResultViewCount,
	})
}

/* ============================================
   DEACTIVATE
   POST /api/share/:token/deactivate
============================================ */

func (ctl *ShareController) DeactivateShare(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))

	var share model.SharedResultModel
	if err := ctl.DB.Where("shared_result_token = ?", token).First(&share).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Share link not found")
	}

	if share.SharedResultIsActive {
		if err := ctl.DB.Model(&share).Update("shared_result_is_active", false).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate share link")
		}
	}
	return helper.JsonUpdated(c, "Share link deactivated", fiber.Map{"token": token})
}

/* ============================================
   LIST ACTIVE
   GET /api/shares
============================================ */

func (ctl *ShareController) ListShares(c *fiber.Ctx) error {
	var shares []model.SharedResultModel
	if err := ctl.DB.
		Where("shared_result_is_active = ?", true).
		Order("shared_result_created_at DESC").
		Find(&shares).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load share links")
	}

	out := make([]dto.ShareResponseDTO, 0, len(shares))
	now := time.Now()
	for i := range shares {
		s := &shares[i]
		if s.Expired(now) {
			continue
		}
		var count int64
		ctl.DB.Model(&model.SharedResultStudentModel{}).
			Where("shared_result_student_share_id = ?", s.SharedResultID).
			Count(&count)
		out = append(out, dto.ShareFromModel(s, shareURLFor(s.SharedResultToken), int(count)))
	}
	return helper.JsonOK(c, "OK", fiber.Map{"shares": out, "total": len(out)})
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}
