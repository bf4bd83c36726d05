package codec

import (
	"bufio"
	"io"

	"github.com/ypbank/txfile/pkg/record"
)

// RecordCodec reads and writes exactly one record. ReadRecord returns
// (nil, nil) when the stream ends cleanly at a record boundary; any other
// shortfall is an error.
type RecordCodec interface {
	ReadRecord(r *bufio.Reader) (*record.Record, error)
	WriteRecord(w io.Writer, rec *record.Record) error
}

// streamPrologue is implemented by codecs whose file format carries a
// fixed prologue before the first record. Only the csv codec does.
type streamPrologue interface {
	ReadPrologue(r *bufio.Reader) error
	WritePrologue(w io.Writer) error
}

// ForFormat returns the per-record codec for a format.
func ForFormat(f record.Format) RecordCodec {
	switch f {
	case record.FormatCSV:
		return CSVCodec{}
	case record.FormatTXT:
		return TXTCodec{}
	default:
		return BinaryCodec{}
	}
}

// ReadAll decodes every record from r in the given format. The whole
// sequence is materialized before returning; the first malformed record or
// I/O failure aborts the read with no partial result.
func ReadAll(r io.Reader, f record.Format) ([]record.Record, error) {
	return readStream(bufio.NewReader(r), ForFormat(f))
}

// WriteAll encodes records to w in the given format, prologue first,
// stopping at the first write failure.
func WriteAll(w io.Writer, f record.Format, records []record.Record) error {
	return writeStream(w, ForFormat(f), records)
}

func readStream(br *bufio.Reader, c RecordCodec) ([]record.Record, error) {
	if p, ok := c.(streamPrologue); ok {
		if err := p.ReadPrologue(br); err != nil {
			return nil, err
		}
	}

	records := []record.Record{}
	for {
		rec, err := c.ReadRecord(br)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return records, nil
		}
		records = append(records, *rec)
	}
}

func writeStream(w io.Writer, c RecordCodec, records []record.Record) error {
	if p, ok := c.(streamPrologue); ok {
		if err := p.WritePrologue(w); err != nil {
			return err
		}
	}

	for i := range records {
		if err := c.WriteRecord(w, &records[i]); err != nil {
			return err
		}
	}

	return nil
}
