// Package spreadsheet moves records in and out of spreadsheet-friendly
// formats: CSV keyed by the definition's field labels, and JSONL for
// lossless backups. Import is tolerant of what real spreadsheets produce,
// including UTF-8 BOMs and Windows-1252 exports.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/lupapyme/registro/pkg/types"
)

// utf8BOM keeps Excel from misreading accented characters in exports.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the records as CSV, one column per definition field in
// display order, headed by the field labels.
func WriteCSV(w io.Writer, def *types.ModelDefinition, records []types.FlatRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	campos := def.CamposInOrder()
	header := make([]string, len(campos))
	for i, c := range campos {
		header[i] = headerLabel(c)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := make([]string, len(campos))
		for i, c := range campos {
			if v, ok := rec.Field(c.Name); ok && v != nil {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a spreadsheet export into object-form record data, one map
// per data row. Columns map to definition fields by header; columns that
// match no field are dropped. Values are coerced to the field's type.
func ReadCSV(r io.Reader, def *types.ModelDefinition) ([]map[string]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	raw = decodeToUTF8(raw)

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	fields := matchHeader(header, def.Campos)

	records := []map[string]any{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		data := map[string]any{}
		for col, field := range fields {
			if col >= len(row) {
				continue
			}
			data[field.Name] = coerceValue(row[col], field.Type)
		}
		if len(data) > 0 {
			records = append(records, data)
		}
	}
	return records, nil
}

// matchHeader resolves each column to a definition field. Candidates are
// tried in order of confidence: exact label, exact name, lowercased label,
// lowercased name, then substring containment either way. First match wins
// and a field can back several columns, matching how spreadsheets with
// duplicated headers have always imported.
func matchHeader(header []string, campos []types.FieldDef) map[int]types.FieldDef {
	fields := map[int]types.FieldDef{}
	for col, cell := range header {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if f, ok := matchColumn(cell, campos); ok && !types.ReservedFieldNames[f.Name] {
			fields[col] = f
		}
	}
	return fields
}

func matchColumn(cell string, campos []types.FieldDef) (types.FieldDef, bool) {
	lower := strings.ToLower(cell)
	for _, c := range campos {
		if cell == c.Label || cell == c.Name {
			return c, true
		}
	}
	for _, c := range campos {
		if lower == strings.ToLower(c.Label) || lower == strings.ToLower(c.Name) {
			return c, true
		}
	}
	for _, c := range campos {
		label := strings.ToLower(c.Label)
		name := strings.ToLower(c.Name)
		if label != "" && (strings.Contains(lower, label) || strings.Contains(label, lower)) {
			return c, true
		}
		if strings.Contains(lower, name) || strings.Contains(name, lower) {
			return c, true
		}
	}
	return types.FieldDef{}, false
}

// coerceValue converts a cell to the field's value type. Unparseable
// numbers become zero rather than failing the row.
func coerceValue(cell, fieldType string) any {
	cell = strings.TrimSpace(cell)
	switch fieldType {
	case types.FieldTypeNumber:
		n, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
		if err != nil {
			return 0.0
		}
		return n
	case types.FieldTypeBoolean:
		switch strings.ToLower(cell) {
		case "true", "1", "sí", "si", "yes":
			return true
		default:
			return false
		}
	default:
		return cell
	}
}

// decodeToUTF8 strips a UTF-8 BOM and, when the bytes are not valid UTF-8,
// reinterprets them as Windows-1252, the encoding desktop spreadsheet
// exports still ship with.
func decodeToUTF8(raw []byte) []byte {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return raw
	}
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return raw
	}
	return decoded
}

func headerLabel(c types.FieldDef) string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}
