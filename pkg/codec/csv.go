package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ypbank/txfile/pkg/record"
)

const (
	csvSeparator = ','
	csvQuote     = '"'
	csvHeader    = "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION\n"
)

// CSVCodec reads and writes one record per comma-separated line. The file
// carries a fixed header line before the first record.
type CSVCodec struct{}

// ReadPrologue consumes the header line and rejects anything but the exact
// expected header, before any record is parsed.
func (CSVCodec) ReadPrologue(r *bufio.Reader) error {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return record.WrapIOError(err)
	}
	if line != csvHeader {
		return record.ParseError{Kind: record.KindInvalidCSVHeader, Value: line}
	}
	return nil
}

// WritePrologue emits the header line.
func (CSVCodec) WritePrologue(w io.Writer) error {
	if _, err := io.WriteString(w, csvHeader); err != nil {
		return record.WrapIOError(err)
	}
	return nil
}

// ReadRecord consumes one line. An empty line or a clean end of stream
// means no record; otherwise the line must split into exactly eight fields.
func (CSVCodec) ReadRecord(r *bufio.Reader) (*record.Record, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, record.WrapIOError(err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	fields := splitFields(line)
	if len(fields) != 8 {
		return nil, record.ParseError{
			Kind:  record.KindInvalidRow,
			Value: fmt.Sprintf("expected 8 fields, got %d", len(fields)),
		}
	}

	var vals [8]string
	copy(vals[:], fields)
	return recordFromStrings(&vals)
}

// WriteRecord emits one record as a comma-joined line. The description is
// written verbatim, embedded separators and quotes included.
func (CSVCodec) WriteRecord(w io.Writer, rec *record.Record) error {
	_, err := fmt.Fprintf(w, "%d,%s,%d,%d,%d,%d,%s,%s\n",
		rec.ID, rec.Type, rec.FromUserID, rec.ToUserID,
		rec.Amount, rec.Timestamp, rec.Status, rec.Description)
	if err != nil {
		return record.WrapIOError(err)
	}
	return nil
}

// splitFields splits a line on the separator, except inside a quoted span.
// Every quote character toggles the quoted state for the rest of the line,
// there is no escape mechanism, and quotes stay part of the field content.
// A separator at the very end of the line does not open a trailing empty
// field.
func splitFields(line string) []string {
	if line == "" {
		return nil
	}

	var fields []string
	inQuotes := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case csvSeparator:
			if !inQuotes {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		case csvQuote:
			inQuotes = !inQuotes
		}
	}
	if start < len(line) {
		fields = append(fields, line[start:])
	}
	return fields
}
