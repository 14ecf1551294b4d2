package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Decode turns an uploaded CSV/Excel file into a raw cell grid. The first
// row may or may not be a header; that decision belongs to the pipeline.
func Decode(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return decodeCSV(data)
	case ".xlsx", ".xls":
		return decodeExcel(data)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filename)
	}
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls":
		return true
	}
	return false
}
