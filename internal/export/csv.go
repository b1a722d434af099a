// Package export serializes full result sets to CSV for download.
//
// The output contract is byte-exact: a UTF-8 BOM, one header line, one line
// per record, every field double-quote-wrapped with embedded quotes doubled.
// encoding/csv is deliberately not used here, it quotes conditionally and
// would change the bytes for fields without special characters.
package export

import (
	"strings"
	"time"
)

// BOM lets spreadsheet tools detect UTF-8 and render Cyrillic correctly.
const BOM = "\uFEFF"

// CSV builds the export payload from a header and records. Every record is
// expected to have the same arity as the header.
func CSV(header []string, records [][]string) []byte {
	var b strings.Builder
	b.WriteString(BOM)
	writeLine(&b, header, false)
	for _, record := range records {
		writeLine(&b, record, true)
	}
	return []byte(b.String())
}

// Timestamp renders a time the way exports always have: UTC ISO-8601 with
// millisecond precision and a Z suffix.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func writeLine(b *strings.Builder, fields []string, quote bool) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if quote {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(field)
		}
	}
	b.WriteByte('\n')
}
