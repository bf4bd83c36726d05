package record

import "strings"

// Format selects one of the three on-disk encodings.
type Format uint8

const (
	FormatCSV Format = iota
	FormatTXT
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatTXT:
		return "txt"
	default:
		return "binary"
	}
}

// ParseFormat resolves a configuration string to a Format. Matching is
// case-insensitive; anything outside csv/txt/binary is rejected.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return FormatCSV, nil
	case "txt":
		return FormatTXT, nil
	case "binary":
		return FormatBinary, nil
	default:
		return 0, ParseError{Kind: KindInvalidFormat, Value: s}
	}
}
