// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vsys

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// PublicKeyLength length of an account public key in bytes.
	PublicKeyLength = 32
	// SignatureLength length of a transaction signature in bytes.
	SignatureLength = 64
	// ContractIDLength length of a contract id in bytes.
	ContractIDLength = 32
)

// PublicKey is a raw account public key.
type PublicKey [PublicKeyLength]byte

// Bytes returns byte slice form of the public key.
func (p PublicKey) Bytes() []byte {
	return p[:]
}

// String implements the stringer interface.
func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

// BytesToPublicKey converts a byte slice into a public key.
func BytesToPublicKey(b []byte) (PublicKey, error) {
	var p PublicKey
	if len(b) != PublicKeyLength {
		return p, errors.Errorf("public key must be %d bytes, got %d", PublicKeyLength, len(b))
	}
	copy(p[:], b)
	return p, nil
}

// ParsePublicKey converts a base58 string into a public key.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, errors.Wrap(err, "parse public key")
	}
	return BytesToPublicKey(b)
}

// Signature is a transaction signature. For non-genesis transactions it
// is a real ed25519 signature; genesis transactions carry a deterministic
// double hash instead. A transaction's id is exactly its signature.
type Signature [SignatureLength]byte

// Bytes returns byte slice form of the signature.
func (s Signature) Bytes() []byte {
	return s[:]
}

// String implements the stringer interface.
func (s Signature) String() string {
	return base58.Encode(s[:])
}

// IsZero returns whether all signature bytes are zero.
func (s Signature) IsZero() bool {
	return s == Signature{}
}

// Equal compares two signatures byte-wise.
func (s Signature) Equal(o Signature) bool {
	return bytes.Equal(s[:], o[:])
}

// BytesToSignature converts a byte slice into a signature.
func BytesToSignature(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureLength {
		return s, errors.Errorf("signature must be %d bytes, got %d", SignatureLength, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// ContractID identifies a deployed contract.
type ContractID [ContractIDLength]byte

// Bytes returns byte slice form of the contract id.
func (c ContractID) Bytes() []byte {
	return c[:]
}

// String implements the stringer interface.
func (c ContractID) String() string {
	return base58.Encode(c[:])
}

// BytesToContractID converts a byte slice into a contract id.
func BytesToContractID(b []byte) (ContractID, error) {
	var c ContractID
	if len(b) != ContractIDLength {
		return c, errors.Errorf("contract id must be %d bytes, got %d", ContractIDLength, len(b))
	}
	copy(c[:], b)
	return c, nil
}

// AssetID identifies an issued asset. The native asset has no id and is
// represented by a nil *AssetID.
type AssetID [32]byte

// Bytes returns byte slice form of the asset id.
func (a AssetID) Bytes() []byte {
	return a[:]
}

// String implements the stringer interface.
func (a AssetID) String() string {
	return base58.Encode(a[:])
}
