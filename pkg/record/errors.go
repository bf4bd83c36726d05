package record

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind identifies one member of the closed set of parse failures. Every
// codec reports failures through the same set, so callers see one error
// surface no matter which format they read.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindInvalidTransactionType
	KindInvalidStatus
	KindInvalidUserID
	KindInvalidRawValue
	KindInvalidRow
	KindInvalidCSVHeader
	KindUnexpectedEOF
	KindFieldNotFound
	KindInconsistentRecord
	KindInvalidMagic
	KindInvalidFormat
)

// ParseError is the single error type returned by the record codecs. It is a
// comparable value: two errors reporting the same defect compare equal,
// which the tests rely on. TxType is only set for KindInvalidUserID.
type ParseError struct {
	Kind   ErrorKind
	Value  string
	TxType TransactionType
}

func (e ParseError) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("read error: %s", e.Value)
	case KindInvalidTransactionType:
		return fmt.Sprintf("invalid transaction type value found: %s", e.Value)
	case KindInvalidStatus:
		return fmt.Sprintf("invalid status value found: %s", e.Value)
	case KindInvalidUserID:
		return fmt.Sprintf("invalid user id %s for transaction type %s", e.Value, e.TxType)
	case KindInvalidRawValue:
		return fmt.Sprintf("invalid raw value found: %s", e.Value)
	case KindInvalidRow:
		return fmt.Sprintf("invalid row found: %s", e.Value)
	case KindInvalidCSVHeader:
		return fmt.Sprintf("invalid CSV header: %s", e.Value)
	case KindUnexpectedEOF:
		return "unexpected EOF"
	case KindFieldNotFound:
		return fmt.Sprintf("value is not set for field: %s", e.Value)
	case KindInconsistentRecord:
		return fmt.Sprintf("inconsistent record found: %s", e.Value)
	case KindInvalidMagic:
		return fmt.Sprintf("invalid magic found: %s", e.Value)
	case KindInvalidFormat:
		return fmt.Sprintf("invalid file format found: %s", e.Value)
	default:
		return fmt.Sprintf("parse error: %s", e.Value)
	}
}

// WrapIOError converts an I/O failure from the underlying source or sink
// into a ParseError so the caller sees a single error type.
func WrapIOError(err error) error {
	return ParseError{Kind: KindIO, Value: err.Error()}
}

func newInvalidUserIDError(id uint64, t TransactionType) error {
	return ParseError{Kind: KindInvalidUserID, Value: strconv.FormatUint(id, 10), TxType: t}
}

// IsKind reports whether err is, or wraps, a ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}
