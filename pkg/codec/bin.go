package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ypbank/txfile/pkg/record"
)

// binMagic marks the start of every binary record frame ("YPBN").
var binMagic = [4]byte{0x59, 0x50, 0x42, 0x4E}

// binFixedSize is the byte count of the fixed fields from TX_ID through
// DESC_LEN inclusive; RECORD_SIZE is this plus the description length.
const binFixedSize = 46

// BinaryCodec reads and writes the length-prefixed binary frame. Each
// record is self-delimiting via its magic and size prefix, so the stream
// has no header.
type BinaryCodec struct{}

// ReadRecord reads one frame. End of stream exactly at a record boundary
// (no magic bytes at all) or a zero RECORD_SIZE means no record; a partial
// magic is a truncated stream and therefore an error.
func (BinaryCodec) ReadRecord(r *bufio.Reader) (*record.Record, error) {
	if done, err := readMagic(r); done || err != nil {
		return nil, err
	}

	size, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	id, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	typeCode, err := readUint8(r)
	if err != nil {
		return nil, err
	}
	txType, err := record.TransactionTypeFromCode(typeCode)
	if err != nil {
		return nil, err
	}
	from, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	if err := record.ValidateFromUserID(from, txType); err != nil {
		return nil, err
	}
	to, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	if err := record.ValidateToUserID(to, txType); err != nil {
		return nil, err
	}
	amount, err := readInt64(r)
	if err != nil {
		return nil, err
	}
	ts, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	statusCode, err := readUint8(r)
	if err != nil {
		return nil, err
	}
	status, err := record.TransactionStatusFromCode(statusCode)
	if err != nil {
		return nil, err
	}
	desc, err := readDescription(r)
	if err != nil {
		return nil, err
	}

	return &record.Record{
		ID:          id,
		Type:        txType,
		FromUserID:  from,
		ToUserID:    to,
		Amount:      amount,
		Timestamp:   ts,
		Status:      status,
		Description: desc,
	}, nil
}

// WriteRecord emits one frame for the record.
func (BinaryCodec) WriteRecord(w io.Writer, rec *record.Record) error {
	desc := []byte(rec.Description)
	buf := make([]byte, 0, 8+binFixedSize+len(desc))

	buf = append(buf, binMagic[:]...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(binFixedSize+len(desc)))
	buf = binary.BigEndian.AppendUint64(buf, rec.ID)
	buf = append(buf, rec.Type.Code())
	buf = binary.BigEndian.AppendUint64(buf, rec.FromUserID)
	buf = binary.BigEndian.AppendUint64(buf, rec.ToUserID)
	buf = binary.BigEndian.AppendUint64(buf, uint64(rec.Amount))
	buf = binary.BigEndian.AppendUint64(buf, rec.Timestamp)
	buf = append(buf, rec.Status.Code())
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(desc)))
	buf = append(buf, desc...)

	if _, err := w.Write(buf); err != nil {
		return record.WrapIOError(err)
	}
	return nil
}

// readMagic consumes and checks the 4 magic bytes. done is true when the
// stream ended cleanly before any magic byte was read.
func readMagic(r *bufio.Reader) (done bool, err error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if err == io.EOF {
			return true, nil
		}
		if err == io.ErrUnexpectedEOF {
			return false, record.ParseError{Kind: record.KindUnexpectedEOF}
		}
		return false, record.WrapIOError(err)
	}

	if magic != binMagic {
		hex := make([]string, len(magic))
		for i, b := range magic {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		return false, record.ParseError{
			Kind:  record.KindInvalidMagic,
			Value: strings.Join(hex, " "),
		}
	}

	return false, nil
}

// readDescription reads the length-prefixed description and verifies it is
// valid UTF-8. DESC_LEN alone bounds the read.
func readDescription(r *bufio.Reader) (string, error) {
	length, err := readUint32(r)
	if err != nil {
		return "", err
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", record.WrapIOError(err)
	}

	if !utf8.Valid(buf) {
		return "", record.ParseError{
			Kind:  record.KindInvalidRawValue,
			Value: "description is not valid UTF-8",
		}
	}
	return string(buf), nil
}
