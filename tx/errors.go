// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"errors"
	"fmt"
)

// ValidationKind names a recoverable validation failure. Callers inspect
// the kind and reject the transaction or block; validation failures
// never crash the node.
type ValidationKind int

const (
	// InvalidAddress the recipient address is malformed.
	InvalidAddress ValidationKind = iota + 1
	// NegativeAmount the amount is zero or negative.
	NegativeAmount
	// InsufficientFee the fee is zero or negative.
	InsufficientFee
	// Overflow amount+fee exceeds the signed 64-bit range.
	Overflow
	// InvalidSignature the signature does not verify.
	InvalidSignature
	// InsufficientFunds the sender cannot cover amount+fee.
	InsufficientFunds
	// InvalidOpcode a contract instruction failed its preconditions.
	InvalidOpcode
	// InvalidStateVariable a data entry's type disagrees with the
	// declared state variable type.
	InvalidStateVariable
	// InvalidContract the referenced contract is unknown or inactive.
	InvalidContract
	// InvalidDataEntry a data stack payload could not be decoded.
	InvalidDataEntry
)

func (k ValidationKind) String() string {
	switch k {
	case InvalidAddress:
		return "invalid address"
	case NegativeAmount:
		return "negative amount"
	case InsufficientFee:
		return "insufficient fee"
	case Overflow:
		return "amount overflow"
	case InvalidSignature:
		return "invalid signature"
	case InsufficientFunds:
		return "insufficient funds"
	case InvalidOpcode:
		return "invalid opcode"
	case InvalidStateVariable:
		return "invalid state variable"
	case InvalidContract:
		return "invalid contract"
	case InvalidDataEntry:
		return "invalid data entry"
	default:
		return fmt.Sprintf("validation failure %d", int(k))
	}
}

// ValidationError is a recoverable validation outcome.
type ValidationError struct {
	Kind ValidationKind
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

func validationError(kind ValidationKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure of the given kind.
func IsValidation(err error, kind ValidationKind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// DecodeError is a structural decode failure: truncated buffer or wrong
// leading type tag. It carries the offending byte or length for
// diagnostics and is distinct from validation outcomes.
type DecodeError struct {
	Reason string
	Tag    byte
	Length int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s (tag %d, length %d)", e.Reason, e.Tag, e.Length)
}

func badTag(expected Type, got byte) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf("type tag mismatch, want %d", byte(expected)), Tag: got}
}

func tooShort(tag Type, minLen, gotLen int) *DecodeError {
	return &DecodeError{
		Reason: fmt.Sprintf("buffer shorter than fixed minimum %d", minLen),
		Tag:    byte(tag),
		Length: gotLen,
	}
}

// IsDecode reports whether err is a structural decode failure.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
