// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/dengjinhmm/v-systems/cry"
	"github.com/dengjinhmm/v-systems/vsys"
)

// Genesis wire layout, 107 bytes, the signature embedded after the tag:
//
//	[type 1][signature 64][timestamp 8][recipient 26][amount 8]
//
// Genesis issuance carries no fee and is not signed by any account: its
// "signature" is the deterministic double hash h ++ h where
// h = Blake2b256(type ++ timestamp ++ recipient ++ amount). Bootstrap
// transactions need no signer; this is preserved deliberately, not a
// defect to fix.
const genesisLength = 1 + vsys.SignatureLength + 8 + vsys.AddressLength + 8

// Genesis issues the initial balance of an address.
type Genesis struct {
	body genesisBody

	cache struct {
		bytes []byte
	}
}

type genesisBody struct {
	Timestamp int64
	Recipient vsys.Address
	Amount    int64
	Signature vsys.Signature
}

var _ Transaction = (*Genesis)(nil)

// GenerateSignature derives the deterministic genesis signature for the
// given payload. Pure: identical inputs always yield identical bytes.
func GenerateSignature(recipient vsys.Address, amount, timestamp int64) vsys.Signature {
	payload := make([]byte, 0, 1+8+vsys.AddressLength+8)
	payload = append(payload, byte(TypeGenesis))
	payload = appendInt64(payload, timestamp)
	payload = append(payload, recipient[:]...)
	payload = appendInt64(payload, amount)

	h := cry.Blake2b256(payload)
	var sig vsys.Signature
	copy(sig[:cry.HashLength], h[:])
	copy(sig[cry.HashLength:], h[:])
	return sig
}

// NewGenesis builds a genesis issuance with its derived signature.
func NewGenesis(recipient vsys.Address, amount, timestamp int64) *Genesis {
	return &Genesis{body: genesisBody{
		Timestamp: timestamp,
		Recipient: recipient,
		Amount:    amount,
		Signature: GenerateSignature(recipient, amount, timestamp),
	}}
}

// ParseGenesis decodes a genesis issuance from its exact wire encoding.
func ParseGenesis(data []byte) (*Genesis, error) {
	if len(data) < genesisLength {
		return nil, tooShort(TypeGenesis, genesisLength, len(data))
	}
	if Type(data[0]) != TypeGenesis {
		return nil, badTag(TypeGenesis, data[0])
	}

	c := cursor{data: data, off: 1}
	var g Genesis
	copy(g.body.Signature[:], c.next(vsys.SignatureLength))
	g.body.Timestamp = c.nextInt64()
	copy(g.body.Recipient[:], c.next(vsys.AddressLength))
	g.body.Amount = c.nextInt64()
	return &g, nil
}

// Type returns TypeGenesis.
func (g *Genesis) Type() Type { return TypeGenesis }

// Timestamp in milliseconds since epoch.
func (g *Genesis) Timestamp() int64 { return g.body.Timestamp }

// Recipient is the issued address.
func (g *Genesis) Recipient() vsys.Address { return g.body.Recipient }

// Amount issued to the recipient.
func (g *Genesis) Amount() int64 { return g.body.Amount }

// Fee of a genesis issuance is fixed at zero.
func (g *Genesis) Fee() int64 { return 0 }

// Signature returns the stored deterministic signature.
func (g *Genesis) Signature() vsys.Signature { return g.body.Signature }

// ID of a genesis transaction is its signature.
func (g *Genesis) ID() vsys.Signature { return g.body.Signature }

// SigningData is the payload the deterministic signature is derived from.
func (g *Genesis) SigningData() []byte {
	b := make([]byte, 0, 1+8+vsys.AddressLength+8)
	b = append(b, byte(TypeGenesis))
	b = appendInt64(b, g.body.Timestamp)
	b = append(b, g.body.Recipient[:]...)
	b = appendInt64(b, g.body.Amount)
	return b
}

// Bytes is the deterministic wire encoding.
func (g *Genesis) Bytes() []byte {
	return append([]byte(nil), g.encode()...)
}

func (g *Genesis) encode() []byte {
	if g.cache.bytes != nil {
		return g.cache.bytes
	}
	b := make([]byte, 0, genesisLength)
	b = append(b, byte(TypeGenesis))
	b = append(b, g.body.Signature[:]...)
	b = appendInt64(b, g.body.Timestamp)
	b = append(b, g.body.Recipient[:]...)
	b = appendInt64(b, g.body.Amount)
	g.cache.bytes = b
	return b
}

// SignatureValid recomputes the double hash and compares it with the
// stored signature. No key is involved.
func (g *Genesis) SignatureValid() bool {
	return g.body.Signature.Equal(GenerateSignature(g.body.Recipient, g.body.Amount, g.body.Timestamp))
}

// Validate runs the ordered checks; the order is an observable contract.
func (g *Genesis) Validate() error {
	if !g.body.Recipient.Valid() {
		return validationError(InvalidAddress, "recipient %s", g.body.Recipient)
	}
	if g.body.Amount <= 0 {
		return validationError(NegativeAmount, "amount %d", g.body.Amount)
	}
	if !g.SignatureValid() {
		return validationError(InvalidSignature, "genesis %s", g.body.Signature)
	}
	return nil
}

// BalanceChanges: a single credit to the recipient.
func (g *Genesis) BalanceChanges() []BalanceChange {
	return []BalanceChange{
		{Account: vsys.AccountFromAddress(g.body.Recipient), Delta: g.body.Amount},
	}
}
