package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationModel "studentresults_backend/internals/features/notifications/model"
	shareModel "studentresults_backend/internals/features/shares/model"
	"studentresults_backend/internals/features/students/dto"
	"studentresults_backend/internals/features/students/model"
	helper "studentresults_backend/internals/helpers"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	if v == nil {
		v = validator.New()
	}
	return &StudentController{DB: db, Validator: v}
}

/* ============================================
   SAVE (upsert by email)
   POST /api/save-students
============================================ */

type saveFailure struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (ctl *StudentController) SaveStudents(c *fiber.Ctx) error {
	var p dto.SaveStudentsRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	saved, updated := 0, 0
	failures := make([]saveFailure, 0)

	for i := range p.Students {
		in := &p.Students[i]
		email := strings.TrimSpace(in.Email)
		if email == "" {
			continue
		}

		// One transaction per record: a conflict rolls back this record
		// only, earlier commits stay.
		err := ctl.DB.Transaction(func(tx *gorm.DB) error {
			var existing model.StudentModel
			found := tx.Where("student_email = ?", email).First(&existing)
			if found.Error != nil && !errors.Is(found.Error, gorm.ErrRecordNotFound) {
				return found.Error
			}

			if found.Error == nil {
				in.ApplyTo(&existing)
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				updated++
				return nil
			}

			var fresh model.StudentModel
			in.ApplyTo(&fresh)
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
			saved++
			return nil
		})
		if err != nil {
			msg := err.Error()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				msg = "email already exists"
			}
			failures = append(failures, saveFailure{
				Email:   email,
				Name:    derefOr(in.Name, ""),
				Message: msg,
			})
		}
	}

	data := fiber.Map{
		"saved":   saved,
		"updated": updated,
	}
	if len(failures) > 0 {
		data["failed"] = failures
	}
	return helper.JsonOK(c,
		fmt.Sprintf("Successfully saved %d and updated %d students to the database", saved, updated),
		data)
}

/* ============================================
   LIST
   GET /api/students
============================================ */

func (ctl *StudentController) GetStudents(c *fiber.Ctx) error {
	var students []model.StudentModel
	if err := ctl.DB.Order("student_created_at ASC").Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}
	return helper.JsonOK(c, "OK", dto.FromModels(students))
}

/* ============================================
   UPDATE (editable fields)
   PUT /api/students/:id
============================================ */

func (ctl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var p dto.UpdateStudentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	if p.Score != nil {
		score, ok := parseScoreStrict(p.Score)
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid score value")
		}
		student.StudentScore = score
	}
	if p.StudentID != nil {
		student.StudentCode = nilIfEmpty(*p.StudentID)
	}
	if p.Name != nil {
		student.StudentName = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		student.StudentEmail = strings.TrimSpace(*p.Email)
	}
	if p.Subject != nil {
		student.StudentSubject = nilIfEmpty(*p.Subject)
	}
	if p.Batch != nil {
		student.StudentBatch = nilIfEmpty(*p.Batch)
	}
	if p.Comment != nil {
		student.StudentComment = nilIfEmpty(*p.Comment)
		student.SyncCommentToExtra()
	}

	if err := ctl.DB.Save(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "A student with that email already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated successfully", dto.FromModel(&student))
}

/* ============================================
   UPDATE COMMENT
   PUT /api/students/:id/comment
============================================ */

func (ctl *StudentController) UpdateComment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var p dto.UpdateCommentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var student model.StudentModel
	if err := ctl.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load student")
	}

	student.StudentComment = nilIfEmpty(p.Comment)
	student.SyncCommentToExtra()

	if err := ctl.DB.Save(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update comment")
	}
	return helper.JsonUpdated(c, "Comment updated successfully", dto.FromModel(&student))
}

/* ============================================
   CLEAR (bulk delete, cascades to email logs)
   DELETE /api/clear-students
============================================ */

func (ctl *StudentController) ClearStudents(c *fiber.Ctx) error {
	var studentsCount, logsCount int64
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		// Logs and share links reference students, so they go first.
		logs := tx.Where("1 = 1").Delete(&notificationModel.EmailLogModel{})
		if logs.Error != nil {
			return logs.Error
		}
		logsCount = logs.RowsAffected

		if err := tx.Where("1 = 1").Delete(&shareModel.SharedResultStudentModel{}).Error; err != nil {
			return err
		}
		// Links whose students are gone must stop resolving.
		if err := tx.Model(&shareModel.SharedResultModel{}).
			Where("shared_result_is_active = ?", true).
			Update("shared_result_is_active", false).Error; err != nil {
			return err
		}

		students := tx.Where("1 = 1").Delete(&model.StudentModel{})
		if students.Error != nil {
			return students.Error
		}
		studentsCount = students.RowsAffected
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to clear students")
	}
	return helper.JsonDeleted(c,
		fmt.Sprintf("Successfully deleted %d students and %d email logs", studentsCount, logsCount),
		fiber.Map{"students_deleted": studentsCount, "email_logs_deleted": logsCount})
}

/* ============================================
   small helpers
============================================ */

func parseScoreStrict(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case int:
		return float64(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func nilIfEmpty(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}
