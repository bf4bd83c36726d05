package codec

import "github.com/ypbank/txfile/pkg/record"

// fieldNames is the canonical field order shared by both text formats: the
// csv column order and the key order the txt codec writes.
var fieldNames = [8]string{
	"TX_ID",
	"TX_TYPE",
	"FROM_USER_ID",
	"TO_USER_ID",
	"AMOUNT",
	"TIMESTAMP",
	"STATUS",
	"DESCRIPTION",
}

// recordFromStrings maps the eight raw field values, in canonical order,
// onto a validated record. The transaction type is resolved first because
// the two user-id checks depend on it. The description is taken verbatim.
func recordFromStrings(vals *[8]string) (*record.Record, error) {
	txType, err := record.ParseTransactionType(vals[1])
	if err != nil {
		return nil, err
	}

	id, err := record.ParseUint(vals[0])
	if err != nil {
		return nil, err
	}

	from, err := record.ParseUint(vals[2])
	if err != nil {
		return nil, err
	}
	if err := record.ValidateFromUserID(from, txType); err != nil {
		return nil, err
	}

	to, err := record.ParseUint(vals[3])
	if err != nil {
		return nil, err
	}
	if err := record.ValidateToUserID(to, txType); err != nil {
		return nil, err
	}

	amount, err := record.ParseInt(vals[4])
	if err != nil {
		return nil, err
	}

	ts, err := record.ParseUint(vals[5])
	if err != nil {
		return nil, err
	}

	status, err := record.ParseTransactionStatus(vals[6])
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
		Description: vals[7],
	}, nil
}
