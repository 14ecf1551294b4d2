package controller

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentresults_backend/internals/features/imports/dto"
	"studentresults_backend/internals/features/imports/parser"
	"studentresults_backend/internals/features/imports/pipeline"
	helper "studentresults_backend/internals/helpers"
)

type ImportController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewImportController(db *gorm.DB, v *validator.Validate) *ImportController {
	if v == nil {
		v = validator.New()
	}
	return &ImportController{DB: db, Validator: v}
}

/* ============================================
   UPLOAD
   POST /api/upload
============================================ */

func (ctl *ImportController) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file provided")
	}
	if strings.TrimSpace(fh.Filename) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file selected")
	}
	if !parser.AllowedFile(fh.Filename) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid file format. Only CSV and Excel files are allowed")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded file")
	}

	grid, err := parser.Decode(fh.Filename, data)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to parse file. Please check the file format.")
	}

	records, normErr := runPipeline(grid)
	if normErr != nil {
		return normalizationError(c, normErr)
	}

	msg := fmt.Sprintf("File uploaded successfully. Found %d students.", len(records))
	return helper.JsonOK(c, msg, fiber.Map{
		"students": dto.RecordsToDTO(records),
		"total":    len(records),
	})
}

func runPipeline(grid [][]string) ([]pipeline.Record, error) {
	n, err := pipeline.NormalizeHeader(grid)
	if err != nil {
		return nil, err
	}
	return pipeline.Partition(n), nil
}

// normalizationError maps pipeline failures to 400s, carrying the found
// columns so the frontend can offer manual mapping.
func normalizationError(c *fiber.Ctx, err error) error {
	var noHeader *pipeline.NoHeaderError
	if errors.As(err, &noHeader) {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest,
			"Could not detect a header row in the file",
			fiber.Map{"found_columns": noHeader.Attempted})
	}
	var missingEmail *pipeline.MissingEmailError
	if errors.As(err, &missingEmail) {
		return helper.JsonErrorWithDetails(c, fiber.StatusBadRequest,
			`File must have an "email" column`,
			fiber.Map{"found_columns": missingEmail.Found})
	}
	var dup *pipeline.DuplicateColumnError
	if errors.As(err, &dup) {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Duplicate column in file: %q", dup.Column))
	}
	if errors.Is(err, pipeline.ErrEmptyFile) {
		return helper.JsonError(c, fiber.StatusBadRequest, "The file is empty")
	}
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}

/* ============================================
   MAP COLUMNS
   POST /api/map-columns
============================================ */

func (ctl *ImportController) MapColumns(c *fiber.Ctx) error {
	var p dto.MapColumnsRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &p); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	columns := columnOrderOf(&p)
	if len(columns) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "No data provided")
	}

	// Both name parts mapped to "name" means concatenate instead of rename.
	nameParts := make([]string, 0, 2)
	for _, src := range columns {
		if p.Mapping[src] == "name" {
			nameParts = append(nameParts, src)
		}
	}
	concatName := len(nameParts) == 2

	renamed := make([]string, len(columns))
	for i, src := range columns {
		if target, ok := p.Mapping[src]; ok && !(concatName && target == "name") {
			renamed[i] = strings.ToLower(strings.TrimSpace(target))
		} else {
			renamed[i] = strings.ToLower(strings.TrimSpace(src))
		}
	}

	grid := make([][]string, 0, len(p.Data)+1)
	grid = append(grid, renamed)
	for _, row := range p.Data {
		cells := make([]string, len(columns))
		for i, src := range columns {
			cells[i] = cellString(row[src])
		}
		if concatName {
			cells = append(cells, strings.TrimSpace(cellString(row[nameParts[0]])+" "+cellString(row[nameParts[1]])))
		}
		grid = append(grid, cells)
	}
	if concatName {
		grid[0] = append(grid[0], "name")
	}

	n, err := pipeline.NormalizeHeader(grid)
	if err != nil {
		var missingEmail *pipeline.MissingEmailError
		if errors.As(err, &missingEmail) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Mapping incomplete. Still missing: email")
		}
		return normalizationError(c, err)
	}

	// Email is the only mapping that can still be missing here; name and
	// score fall back to their defaults like the upload path.
	records := pipeline.Partition(n)
	msg := fmt.Sprintf("Column mapping successful. Found %d students.", len(records))
	return helper.JsonOK(c, msg, fiber.Map{
		"students": dto.RecordsToDTO(records),
		"total":    len(records),
	})
}

// columnOrderOf picks the column sequence: the explicit order list filtered
// to present keys, then any stragglers alphabetically.
func columnOrderOf(p *dto.MapColumnsRequest) []string {
	present := make(map[string]struct{})
	for _, row := range p.Data {
		for k := range row {
			present[k] = struct{}{}
		}
	}

	cols := make([]string, 0, len(present))
	seen := make(map[string]struct{}, len(present))
	for _, k := range p.ColumnOrder {
		if _, ok := present[k]; !ok {
			continue
		}
		if _, done := seen[k]; done {
			continue
		}
		cols = append(cols, k)
		seen[k] = struct{}{}
	}

	var rest []string
	for k := range present {
		if _, done := seen[k]; !done {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

// cellString renders a JSON value back into a pipeline cell. Whole floats
// drop the decimal part JSON decoding added.
func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return pipeline.Stringify(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%v", v)
}

/* ============================================
   SAMPLE FILE
   GET /api/download-sample
============================================ */

const sampleCSV = `name,email,score,student_id,subject,batch,comment
John Doe,john.doe@example.com,85,STU001,Mathematics,2025A,Great improvement this term
Jane Smith,jane.smith@example.com,92,STU002,Mathematics,2025A,
Sam Lee,sam.lee@example.com,74,STU003,Mathematics,2025B,Needs to review chapter 4
`

func (ctl *ImportController) DownloadSample(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sample_students.csv"`)
	return c.SendString(sampleCSV)
}
