// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vsys

import (
	"bytes"

	"github.com/pkg/errors"
)

// Account references an account either by address or by raw public key.
// Two accounts are equal iff their canonical byte encodings are equal.
type Account struct {
	raw []byte
}

// AccountFromAddress wraps an address into an account reference.
func AccountFromAddress(a Address) Account {
	return Account{raw: append([]byte(nil), a[:]...)}
}

// AccountFromPublicKey wraps a raw public key into an account reference.
func AccountFromPublicKey(p PublicKey) Account {
	return Account{raw: append([]byte(nil), p[:]...)}
}

// Bytes returns the canonical byte encoding of the reference.
func (a Account) Bytes() []byte {
	return append([]byte(nil), a.raw...)
}

// Equal compares two account references by canonical encoding.
func (a Account) Equal(o Account) bool {
	return bytes.Equal(a.raw, o.raw)
}

// Address resolves the reference to an address on the given chain,
// deriving it when the reference is a public key.
func (a Account) Address(chain ChainID) (Address, error) {
	switch len(a.raw) {
	case AddressLength:
		return BytesToAddress(a.raw)
	case PublicKeyLength:
		pub, err := BytesToPublicKey(a.raw)
		if err != nil {
			return Address{}, err
		}
		return AddressFromPublicKey(chain, pub), nil
	default:
		return Address{}, errors.Errorf("account reference of unexpected length %d", len(a.raw))
	}
}
