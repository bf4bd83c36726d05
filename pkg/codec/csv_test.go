package codec

import (
	"bufio"
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/ypbank/txfile/pkg/record"
)

func TestSplitFields(t *testing.T) {
	testCases := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "regular fields",
			line: "val1,val 2, val 3 ",
			want: []string{"val1", "val 2", " val 3 "},
		},
		{
			name: "quoted separators not split",
			line: "val1,val 2, \" val,,,3 \" ",
			want: []string{"val1", "val 2", " \" val,,,3 \" "},
		},
		{
			name: "empty line",
			line: "",
			want: nil,
		},
		{
			name: "empty field in the middle",
			line: "val1,,val3",
			want: []string{"val1", "", "val3"},
		},
		{
			name: "quote state persists across the line",
			line: "a\"b,c\"d,e",
			want: []string{"a\"b,c\"d", "e"},
		},
		{
			name: "trailing separator opens no field",
			line: "val1,",
			want: []string{"val1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitFields(tc.line)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("splitFields(%q) = %q, want %q", tc.line, got, tc.want)
			}
		})
	}
}

func TestCSVCodec_ReadRecord(t *testing.T) {
	line := "1000000000000000,DEPOSIT,1,9223372036854775807,100,1633036860000,FAILURE,\"Record number 1\"\n"

	want := record.Record{
		ID:          1000000000000000,
		Type:        record.Deposit,
		FromUserID:  1,
		ToUserID:    9223372036854775807,
		Amount:      100,
		Timestamp:   1633036860000,
		Status:      record.Failure,
		Description: "\"Record number 1\"",
	}

	rec, err := CSVCodec{}.ReadRecord(bufio.NewReader(strings.NewReader(line)))
	if err != nil {
		t.Fatalf("ReadRecord failed: %v", err)
	}
	if rec == nil {
		t.Fatal("ReadRecord returned no record")
	}
	if *rec != want {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", *rec, want)
	}
}

func TestCSVCodec_ReadRecord_DescriptionKeepsDelimiters(t *testing.T) {
	line := "1,TRANSFER,2,3,100,1633036860000,SUCCESS,\"a,b,c\" and more\n"

	rec, err := CSVCodec{}.ReadRecord(bufio.NewReader(strings.NewReader(line)))
	if err != nil {
		t.Fatalf("ReadRecord failed: %v", err)
	}
	if got, want := rec.Description, "\"a,b,c\" and more"; got != want {
		t.Errorf("Description = %q, want %q", got, want)
	}
}

func TestCSVCodec_ReadRecord_EndOfStream(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n"} {
		rec, err := CSVCodec{}.ReadRecord(bufio.NewReader(strings.NewReader(input)))
		if err != nil {
			t.Fatalf("input %q: unexpected error %v", input, err)
		}
		if rec != nil {
			t.Errorf("input %q: expected no record, got %+v", input, rec)
		}
	}
}

func TestCSVCodec_ReadRecord_Errors(t *testing.T) {
	testCases := []struct {
		name string
		line string
		want error
	}{
		{
			name: "wrong field count",
			line: "1,DEPOSIT,1,2,100\n",
			want: record.ParseError{Kind: record.KindInvalidRow, Value: "expected 8 fields, got 5"},
		},
		{
			name: "zero from-user on a transfer",
			line: "1,TRANSFER,0,9223372036854775807,100,1633036860000,FAILURE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidUserID, Value: "0", TxType: record.Transfer},
		},
		{
			name: "zero to-user on a transfer",
			line: "1,TRANSFER,1,0,100,1633036860000,FAILURE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidUserID, Value: "0", TxType: record.Transfer},
		},
		{
			name: "zero to-user on a deposit",
			line: "1,DEPOSIT,0,0,100,1633036860000,FAILURE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidUserID, Value: "0", TxType: record.Deposit},
		},
		{
			name: "unknown transaction type",
			line: "1,REFUND,1,2,100,1633036860000,FAILURE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidTransactionType, Value: "REFUND"},
		},
		{
			name: "unknown status",
			line: "1,DEPOSIT,0,2,100,1633036860000,MAYBE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidStatus, Value: "MAYBE"},
		},
		{
			name: "non-numeric id",
			line: "abc,DEPOSIT,0,2,100,1633036860000,FAILURE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidRawValue, Value: "abc"},
		},
		{
			name: "non-numeric amount",
			line: "1,DEPOSIT,0,2,ten,1633036860000,FAILURE,\"x\"\n",
			want: record.ParseError{Kind: record.KindInvalidRawValue, Value: "ten"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CSVCodec{}.ReadRecord(bufio.NewReader(strings.NewReader(tc.line)))
			if err != tc.want {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCSVCodec_WriteRecord(t *testing.T) {
	rec := record.Record{
		ID:          1000000000000000,
		Type:        record.Deposit,
		FromUserID:  1,
		ToUserID:    9223372036854775807,
		Amount:      100,
		Timestamp:   1633036860000,
		Status:      record.Failure,
		Description: "\"Record number 1\"",
	}

	var buf bytes.Buffer
	if err := (CSVCodec{}).WriteRecord(&buf, &rec); err != nil {
		t.Fatalf("WriteRecord failed: %v", err)
	}

	want := "1000000000000000,DEPOSIT,1,9223372036854775807,100,1633036860000,FAILURE,\"Record number 1\"\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestCSVCodec_Prologue(t *testing.T) {
	t.Run("valid header accepted", func(t *testing.T) {
		r := bufio.NewReader(strings.NewReader(csvHeader))
		if err := (CSVCodec{}).ReadPrologue(r); err != nil {
			t.Fatalf("ReadPrologue failed: %v", err)
		}
	})

	t.Run("wrong header rejected before any record", func(t *testing.T) {
		bad := "TX_ID,TX_TYPE\n1,DEPOSIT,0,2,100,1633036860000,FAILURE,x\n"
		_, err := ReadAll(strings.NewReader(bad), record.FormatCSV)
		want := record.ParseError{Kind: record.KindInvalidCSVHeader, Value: "TX_ID,TX_TYPE\n"}
		if err != want {
			t.Errorf("error = %v, want %v", err, want)
		}
	})

	t.Run("write emits header", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteAll(&buf, record.FormatCSV, nil); err != nil {
			t.Fatalf("WriteAll failed: %v", err)
		}
		if got := buf.String(); got != csvHeader {
			t.Errorf("output = %q, want %q", got, csvHeader)
		}
	})
}
