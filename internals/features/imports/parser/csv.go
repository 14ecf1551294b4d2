package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

func decodeCSV(data []byte) ([][]string, error) {
	// Strip a UTF-8 BOM; Excel exports love to prepend one.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are reconciled downstream
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return rows, nil
}
