package fixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// NotFoundError indicates a missing fixture file, sheet or test case key.
// It is fatal at setup time and must never enter the retry policy.
type NotFoundError struct {
	File  string
	Sheet string
	Case  string
}

func (e *NotFoundError) Error() string {
	switch {
	case e.Case != "":
		return fmt.Sprintf("fixture case %q not found in %s", e.Case, e.File)
	case e.Sheet != "":
		return fmt.Sprintf("fixture sheet %q not found in %s", e.Sheet, e.File)
	default:
		return fmt.Sprintf("fixture file not found: %s", e.File)
	}
}

// JSONCase loads the named test case from a JSON fixture document into v.
//
// The document maps test case keys to a single record or an array of
// records; v decides which shape is expected.
func JSONCase(path, caseName string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{File: path}
		}

		return fmt.Errorf("reading fixture file %s: %w", path, err)
	}

	var cases map[string]json.RawMessage
	if err := json.Unmarshal(raw, &cases); err != nil {
		return fmt.Errorf("parsing fixture file %s: %w", path, err)
	}

	caseRaw, ok := cases[caseName]
	if !ok {
		return &NotFoundError{File: path, Case: caseName}
	}

	if err := json.Unmarshal(caseRaw, v); err != nil {
		return fmt.Errorf("decoding fixture case %q from %s: %w", caseName, path, err)
	}

	return nil
}

// SheetRows loads a sheet from a spreadsheet fixture as field-keyed records.
//
// The first row supplies the field names; each following row becomes one
// record. Cells missing from short rows decode as empty strings.
func SheetRows(path, sheet string) ([]map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &NotFoundError{File: path}
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet %s: %w", path, err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, &NotFoundError{File: path, Sheet: sheet}
	}

	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)

	for _, row := range rows[1:] {
		record := make(map[string]string, len(headers))

		for i, header := range headers {
			if i < len(row) {
				record[header] = row[i]
			} else {
				record[header] = ""
			}
		}

		records = append(records, record)
	}

	return records, nil
}
