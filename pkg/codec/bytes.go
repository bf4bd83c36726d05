package codec

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/ypbank/txfile/pkg/record"
)

// Fixed-width big-endian read helpers for the binary format. Shortfalls in
// the middle of a record are I/O failures here; only the magic read at a
// record boundary treats end of stream specially, and the binary codec
// handles that itself.

func readUint8(r *bufio.Reader) (uint8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, record.WrapIOError(err)
	}
	return b, nil
}

func readUint32(r *bufio.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, record.WrapIOError(err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func readUint64(r *bufio.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, record.WrapIOError(err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func readInt64(r *bufio.Reader) (int64, error) {
	v, err := readUint64(r)
	return int64(v), err
}
