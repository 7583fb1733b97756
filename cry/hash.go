// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// HashLength length of hash in bytes.
	HashLength = 32
)

// Blake2b256 computes the Blake2b-256 digest of the concatenation of data.
// This is the chain's fast hash, used for genesis signatures among others.
func Blake2b256(data ...[]byte) [HashLength]byte {
	h, _ := blake2b.New256(nil)
	for _, b := range data {
		h.Write(b)
	}
	var out [HashLength]byte
	h.Sum(out[:0])
	return out
}

// Keccak256 computes the legacy Keccak-256 digest of the concatenation of data.
func Keccak256(data ...[]byte) [HashLength]byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	var out [HashLength]byte
	h.Sum(out[:0])
	return out
}

// SecureHash chains the two hash primitives, Keccak256(Blake2b256(data)).
// Address derivation and checksums are built on it.
func SecureHash(data ...[]byte) [HashLength]byte {
	inner := Blake2b256(data...)
	return Keccak256(inner[:])
}
