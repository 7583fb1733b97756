// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/dengjinhmm/v-systems/cry"
	"github.com/dengjinhmm/v-systems/vsys"
)

// Type is the 1-byte transaction type tag leading every serialized
// transaction.
type Type byte

const (
	// TypeGenesis genesis issuance.
	TypeGenesis Type = 1
	// TypePayment payment transfer.
	TypePayment Type = 2
)

// Transaction is the contract every transaction variant satisfies.
// Implementations are immutable; Bytes() reproduces the exact wire
// encoding bit for bit, since signatures are computed over a prefix of
// that layout.
type Transaction interface {
	Type() Type
	// Timestamp in milliseconds since epoch.
	Timestamp() int64
	Signature() vsys.Signature
	// ID of a transaction is exactly its signature.
	ID() vsys.Signature
	// Bytes is the deterministic wire encoding.
	Bytes() []byte
	// SigningData is the prefix of the wire layout the signature covers.
	SigningData() []byte
	// Validate runs the ordered validation checks; first failure wins.
	// Failures are *ValidationError values.
	Validate() error
	// BalanceChanges lists the balance deltas applying this transaction
	// causes. Call only on a validated transaction.
	BalanceChanges() []BalanceChange
}

// FromBytes decodes a transaction of any supported variant, dispatching
// on the leading type tag.
func FromBytes(data []byte) (Transaction, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Reason: "empty buffer"}
	}
	switch Type(data[0]) {
	case TypeGenesis:
		return ParseGenesis(data)
	case TypePayment:
		return ParsePayment(data)
	default:
		return nil, &DecodeError{Reason: "unknown type tag", Tag: data[0], Length: len(data)}
	}
}

// Deadline is the moment a transaction expires, 24 hours past its
// timestamp.
func Deadline(t Transaction) int64 {
	return t.Timestamp() + vsys.MaxTxValidity
}

// Expired reports whether the transaction's validity window had closed
// at the given time (milliseconds since epoch).
func Expired(t Transaction, nowMs int64) bool {
	return nowMs > Deadline(t)
}

// Hash digests the identity of a transaction: variant, signature and
// timestamp. Structurally identical transactions differing only in
// timestamp hash differently.
func Hash(t Transaction) [cry.HashLength]byte {
	var head [9]byte
	head[0] = byte(t.Type())
	putInt64(head[1:], t.Timestamp())
	sig := t.Signature()
	return cry.Blake2b256(head[:], sig[:])
}

// Equal reports identity equality: same variant, signature and timestamp.
func Equal(a, b Transaction) bool {
	return a.Type() == b.Type() &&
		a.Timestamp() == b.Timestamp() &&
		a.Signature().Equal(b.Signature())
}

// BalanceChange is a signed delta to one account's balance in one
// asset. A nil Asset means the network's native asset.
type BalanceChange struct {
	Account vsys.Account
	Asset   *vsys.AssetID
	Delta   int64
}
