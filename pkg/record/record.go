// Package record defines the bank transaction record model shared by every
// file format: the record itself, the closed transaction type and status
// enumerations with their string and byte encodings, and the cross-field
// validation rules applied at parse time.
package record

import (
	"strconv"
	"strings"
)

// Transaction type tokens as they appear in the text formats.
const (
	tokenDeposit    = "DEPOSIT"
	tokenTransfer   = "TRANSFER"
	tokenWithdrawal = "WITHDRAWAL"

	tokenSuccess = "SUCCESS"
	tokenFailure = "FAILURE"
	tokenPending = "PENDING"
)

// TransactionType is the kind of a bank transaction. The numeric values
// double as the single-byte codes used by the binary format.
type TransactionType uint8

const (
	Deposit TransactionType = iota
	Transfer
	Withdrawal
)

// String returns the uppercase token used by the text formats.
func (t TransactionType) String() string {
	switch t {
	case Deposit:
		return tokenDeposit
	case Transfer:
		return tokenTransfer
	default:
		return tokenWithdrawal
	}
}

// Code returns the single-byte code used by the binary format.
func (t TransactionType) Code() byte {
	return byte(t)
}

// ParseTransactionType matches a token case-insensitively against the three
// known transaction types.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(s) {
	case tokenDeposit:
		return Deposit, nil
	case tokenTransfer:
		return Transfer, nil
	case tokenWithdrawal:
		return Withdrawal, nil
	default:
		return 0, ParseError{Kind: KindInvalidTransactionType, Value: s}
	}
}

// TransactionTypeFromCode maps a binary code back to a transaction type.
func TransactionTypeFromCode(b byte) (TransactionType, error) {
	if b > byte(Withdrawal) {
		return 0, ParseError{Kind: KindInvalidTransactionType, Value: strconv.Itoa(int(b))}
	}
	return TransactionType(b), nil
}

// TransactionStatus is the settlement state of a transaction. As with
// TransactionType, the numeric values are the binary byte codes.
type TransactionStatus uint8

const (
	Success TransactionStatus = iota
	Failure
	Pending
)

func (s TransactionStatus) String() string {
	switch s {
	case Success:
		return tokenSuccess
	case Failure:
		return tokenFailure
	default:
		return tokenPending
	}
}

// Code returns the single-byte code used by the binary format.
func (s TransactionStatus) Code() byte {
	return byte(s)
}

// ParseTransactionStatus matches a token case-insensitively against the
// three known statuses.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch strings.ToUpper(s) {
	case tokenSuccess:
		return Success, nil
	case tokenFailure:
		return Failure, nil
	case tokenPending:
		return Pending, nil
	default:
		return 0, ParseError{Kind: KindInvalidStatus, Value: s}
	}
}

// TransactionStatusFromCode maps a binary code back to a status.
func TransactionStatusFromCode(b byte) (TransactionStatus, error) {
	if b > byte(Pending) {
		return 0, ParseError{Kind: KindInvalidStatus, Value: strconv.Itoa(int(b))}
	}
	return TransactionStatus(b), nil
}

// Record is one bank transaction. Records are plain values: two records
// decoded from different files compare equal with == when every field,
// including the description bytes, matches.
type Record struct {
	ID          uint64
	Type        TransactionType
	FromUserID  uint64
	ToUserID    uint64
	Amount      int64
	Timestamp   uint64
	Status      TransactionStatus
	Description string
}

// ValidateFromUserID enforces the zero-id rule: a zero sender is only
// meaningful for deposits, where the money enters from outside.
func ValidateFromUserID(id uint64, t TransactionType) error {
	if id == 0 && t != Deposit {
		return newInvalidUserIDError(id, t)
	}
	return nil
}

// ValidateToUserID enforces the zero-id rule for the receiving side: a zero
// recipient is only meaningful for withdrawals.
func ValidateToUserID(id uint64, t TransactionType) error {
	if id == 0 && t != Withdrawal {
		return newInvalidUserIDError(id, t)
	}
	return nil
}

// ParseUint parses a decimal unsigned field from the text formats.
func ParseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ParseError{Kind: KindInvalidRawValue, Value: s}
	}
	return v, nil
}

// ParseInt parses a decimal signed field, such as the amount.
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ParseError{Kind: KindInvalidRawValue, Value: s}
	}
	return v, nil
}
