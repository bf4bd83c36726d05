// Package codec reads and writes bank transaction records in the three
// supported on-disk encodings: comma-separated text (csv), labeled
// key/value text (txt), and a length-prefixed binary format.
//
// Each encoding is a RecordCodec, responsible for exactly one record at a
// time. Whole-file concerns — the csv header line, looping until the codec
// reports a clean end of stream, aborting on the first error — live in the
// stream driver behind ReadAll and WriteAll, so they are written once and
// shared by all three formats.
//
// # Binary record format
//
// Records are framed as, all integers big-endian:
//
//	[MAGIC "YPBN"(4)][RECORD_SIZE(u32)][TX_ID(u64)][TX_TYPE(u8)]
//	[FROM_USER_ID(u64)][TO_USER_ID(u64)][AMOUNT(i64)][TIMESTAMP(u64)]
//	[STATUS(u8)][DESC_LEN(u32)][DESCRIPTION(DESC_LEN bytes, UTF-8)]
//
// RECORD_SIZE counts every byte from TX_ID through DESCRIPTION inclusive
// (46 + DESC_LEN). A RECORD_SIZE of zero is a terminator convention and
// ends the stream cleanly.
//
// # Error handling
//
// All failures, including I/O errors from the underlying source or sink,
// are reported as record.ParseError values so callers deal with a single
// error surface regardless of encoding. Reads are all-or-nothing: the first
// malformed record aborts the whole read.
package codec
