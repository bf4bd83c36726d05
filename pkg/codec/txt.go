package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ypbank/txfile/pkg/record"
)

const (
	txtSeparator     = ":"
	txtCommentPrefix = "#"
)

// TXTCodec reads and writes records as groups of eight "KEY: VALUE" lines.
// Keys may arrive in any order; records are separated by one blank line and
// comment lines are skipped anywhere. The format has no file header.
type TXTCodec struct{}

// ReadRecord accumulates key/value lines until eight fields have been
// collected. Reaching end of stream before the first field is a clean end;
// a blank line or end of stream after 1-7 fields leaves a half-read record
// behind and is reported as an inconsistent record, not a plain EOF.
func (TXTCodec) ReadRecord(r *bufio.Reader) (*record.Record, error) {
	raw := make(map[string]string, len(fieldNames))

	parsed := 0
	for parsed < len(fieldNames) {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, record.WrapIOError(err)
		}

		if line == "" {
			if parsed == 0 {
				return nil, nil
			}
			return nil, record.ParseError{
				Kind:  record.KindInconsistentRecord,
				Value: "unexpected end of file while parsing",
			}
		}

		if strings.HasPrefix(line, txtCommentPrefix) {
			continue
		}

		if line == "\n" {
			if parsed == 0 {
				continue
			}
			return nil, record.ParseError{
				Kind:  record.KindInconsistentRecord,
				Value: "unexpected new line while parsing",
			}
		}

		key, val, err := splitKeyValue(line)
		if err != nil {
			return nil, err
		}
		raw[key] = val
		parsed++
	}

	var vals [8]string
	for i, name := range fieldNames {
		val, ok := raw[name]
		if !ok {
			return nil, record.ParseError{Kind: record.KindFieldNotFound, Value: name}
		}
		vals[i] = val
	}

	return recordFromStrings(&vals)
}

// WriteRecord emits the eight fields in canonical order, one per line,
// followed by a blank separator line.
func (TXTCodec) WriteRecord(w io.Writer, rec *record.Record) error {
	values := [8]string{
		fmt.Sprintf("%d", rec.ID),
		rec.Type.String(),
		fmt.Sprintf("%d", rec.FromUserID),
		fmt.Sprintf("%d", rec.ToUserID),
		fmt.Sprintf("%d", rec.Amount),
		fmt.Sprintf("%d", rec.Timestamp),
		rec.Status.String(),
		rec.Description,
	}

	var b strings.Builder
	for i, name := range fieldNames {
		fmt.Fprintf(&b, "%s: %s\n", name, values[i])
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return record.WrapIOError(err)
	}
	return nil
}

// splitKeyValue splits a field line on the first separator and trims
// surrounding whitespace from both halves.
func splitKeyValue(line string) (key, val string, err error) {
	parts := strings.SplitN(line, txtSeparator, 2)
	if len(parts) != 2 {
		return "", "", record.ParseError{Kind: record.KindInvalidRow, Value: line}
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}
