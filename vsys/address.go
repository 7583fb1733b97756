// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vsys

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/cry"
)

const (
	// AddressLength length of address in bytes.
	AddressLength = 26
	// AddressVersion leading version byte of every address.
	AddressVersion byte = 5

	addressHashLength     = 20
	addressChecksumLength = 4
)

// Address is a binary account address:
// [version 1B][chain id 1B][pubkey hash 20B][checksum 4B].
// The string form is the base58 encoding of those 26 bytes.
type Address [AddressLength]byte

// Bytes returns byte slice form of the address.
func (a Address) Bytes() []byte {
	return a[:]
}

// String implements the stringer interface.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// ChainID returns the chain id byte embedded in the address.
func (a Address) ChainID() ChainID {
	return ChainID(a[1])
}

// Valid reports whether version, chain id and checksum are all intact.
func (a Address) Valid() bool {
	if a[0] != AddressVersion {
		return false
	}
	if !a.ChainID().Known() {
		return false
	}
	sum := addressChecksum(a[:AddressLength-addressChecksumLength])
	for i, b := range sum {
		if a[AddressLength-addressChecksumLength+i] != b {
			return false
		}
	}
	return true
}

// AddressFromPublicKey derives the address of a public key on the given chain.
func AddressFromPublicKey(chain ChainID, pub PublicKey) Address {
	var a Address
	a[0] = AddressVersion
	a[1] = byte(chain)
	h := cry.SecureHash(pub[:])
	copy(a[2:], h[:addressHashLength])
	sum := addressChecksum(a[:AddressLength-addressChecksumLength])
	copy(a[AddressLength-addressChecksumLength:], sum)
	return a
}

// BytesToAddress converts a byte slice into an address.
// The bytes must be exactly AddressLength long and carry a valid
// version and checksum.
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, errors.Errorf("address must be %d bytes, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	if !a.Valid() {
		return a, errors.New("malformed address")
	}
	return a, nil
}

// ParseAddress converts a base58 string into an address.
func ParseAddress(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "parse address")
	}
	return BytesToAddress(b)
}

func addressChecksum(payload []byte) []byte {
	h := cry.SecureHash(payload)
	return h[:addressChecksumLength]
}
