package spreadsheet

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Daskott/addressbook/server/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	SHEET_NAME   = "Contacts"
	FILE_NAME    = "contacts.xlsx"
	CONTENT_TYPE = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	NAME_COLUMN            = "Name"
	IS_FAVORITE_COLUMN     = "Is Favorite"
	CONTACT_METHODS_COLUMN = "Contact Methods"

	METHOD_SEPARATOR = ";"
	TYPE_SEPARATOR   = ":"
)

var header = []interface{}{NAME_COLUMN, IS_FAVORITE_COLUMN, CONTACT_METHODS_COLUMN}

// FormatMethods flattens 'methods' into "type:value; type:value"
func FormatMethods(methods []models.ContactMethod) string {
	pairs := make([]string, 0, len(methods))
	for _, method := range methods {
		pairs = append(pairs, method.Type+TYPE_SEPARATOR+method.Value)
	}

	return strings.Join(pairs, METHOD_SEPARATOR+" ")
}

// ParseMethods reverses FormatMethods. Segments without a ':' are skipped.
func ParseMethods(raw string) []models.ContactMethod {
	methods := []models.ContactMethod{}

	for _, segment := range strings.Split(raw, METHOD_SEPARATOR) {
		methodType, value, found := strings.Cut(strings.TrimSpace(segment), TYPE_SEPARATOR)
		if !found {
			continue
		}

		methods = append(methods, models.ContactMethod{
			Type:  strings.TrimSpace(methodType),
			Value: strings.TrimSpace(value),
		})
	}

	return methods
}

// Export writes 'contacts' to 'w' as an xlsx workbook, one row per contact
func Export(contacts []models.Contact, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SHEET_NAME); err != nil {
		return errors.Wrap(err, "spreadsheet: rename sheet")
	}

	if err := f.SetSheetRow(SHEET_NAME, "A1", &header); err != nil {
		return errors.Wrap(err, "spreadsheet: write header")
	}

	for i, contact := range contacts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "spreadsheet: cell name")
		}

		methods := FormatMethods(contact.Methods)

		// excelize silently truncates longer cells
		if utf8.RuneCountInString(contact.Name) > excelize.TotalCellChars ||
			utf8.RuneCountInString(methods) > excelize.TotalCellChars {
			return errors.Errorf(
				"spreadsheet: contact %v (%q) exceeds the %v characters allowed in a cell",
				contact.ID, truncate(contact.Name, 40), excelize.TotalCellChars,
			)
		}

		row := []interface{}{contact.Name, yesOrNo(contact.IsFavorite), methods}
		if err := f.SetSheetRow(SHEET_NAME, cell, &row); err != nil {
			return errors.Wrapf(err, "spreadsheet: write row for contact %v", contact.ID)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "spreadsheet: write workbook")
	}

	return nil
}

// Import reads contacts from the first sheet of the xlsx workbook in 'r'.
// Columns are located by their header, only the Name column is required.
func Import(r io.Reader) ([]models.Contact, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "spreadsheet: open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "spreadsheet: read sheet %q", sheets[0])
	}

	contacts := []models.Contact{}
	if len(rows) == 0 {
		return contacts, nil
	}

	columns := columnIndexes(rows[0])
	if _, ok := columns[NAME_COLUMN]; !ok {
		return nil, errors.Errorf("spreadsheet: missing %q column", NAME_COLUMN)
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		// Names are kept as written, only blank ones are rejected
		name := rawCellValue(row, columns, NAME_COLUMN)
		if strings.TrimSpace(name) == "" {
			// +2 accounts for the header & 1-based row numbers
			return nil, errors.Errorf("row %v: name is required", i+2)
		}

		contacts = append(contacts, models.Contact{
			Name:       name,
			IsFavorite: cellValue(row, columns, IS_FAVORITE_COLUMN) == "Yes",
			Methods:    ParseMethods(cellValue(row, columns, CONTACT_METHODS_COLUMN)),
		})
	}

	return contacts, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func yesOrNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func columnIndexes(headerRow []string) map[string]int {
	columns := map[string]int{}
	for i, title := range headerRow {
		title = strings.TrimSpace(title)
		if _, seen := columns[title]; !seen {
			columns[title] = i
		}
	}
	return columns
}

// cellValue returns the trimmed value of 'column' in 'row'. Rows returned
// by excelize drop trailing empty cells, so the index may be out of range.
func cellValue(row []string, columns map[string]int, column string) string {
	return strings.TrimSpace(rawCellValue(row, columns, column))
}

func rawCellValue(row []string, columns map[string]int, column string) string {
	idx, ok := columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max]) + "..."
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
