package domain

import "strings"

// DefaultDelimiter separates fields in the source payload.
const DefaultDelimiter = ","

// utf8BOM is stripped from the header line if present.
const utf8BOM = "\uFEFF"

// ParseRows splits a flat delimited payload into rows keyed by header name.
// The first non-blank line is the header. Fields are not quoted or escaped,
// so a value containing the delimiter is split like any other. Blank lines
// are skipped and empty input yields no rows.
func ParseRows(text, delimiter string) []RawRow {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	lines := strings.Split(text, "\n")
	var header []string
	var rows []RawRow

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if header == nil {
			header = splitTrimmed(strings.TrimPrefix(line, utf8BOM), delimiter)
			continue
		}

		values := splitTrimmed(line, delimiter)
		row := make(RawRow, len(header))
		for i, key := range header {
			if i < len(values) {
				row[key] = values[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows
}

func splitTrimmed(line, delimiter string) []string {
	fields := strings.Split(line, delimiter)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
