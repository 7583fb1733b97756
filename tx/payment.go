// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math"

	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/cry"
	"github.com/dengjinhmm/v-systems/vsys"
)

// Payment wire layout, 147 bytes:
//
//	[type 1][timestamp 8][sender pubkey 32][recipient 26][amount 8][fee 8][signature 64]
//
// The signature covers everything before it.
const (
	paymentLength     = 1 + 8 + vsys.PublicKeyLength + vsys.AddressLength + 8 + 8 + vsys.SignatureLength
	paymentSigDataLen = paymentLength - vsys.SignatureLength
)

// Payment transfers amount from the sender to the recipient, burning fee.
type Payment struct {
	body paymentBody

	cache struct {
		bytes []byte
	}
}

type paymentBody struct {
	Timestamp int64
	Sender    vsys.PublicKey
	Recipient vsys.Address
	Amount    int64
	Fee       int64
	Signature vsys.Signature
}

var _ Transaction = (*Payment)(nil)

// NewPayment builds a payment and signs it with the sender's private key.
func NewPayment(senderPriv []byte, sender vsys.PublicKey, recipient vsys.Address, amount, fee, timestamp int64) (*Payment, error) {
	p := &Payment{body: paymentBody{
		Timestamp: timestamp,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Fee:       fee,
	}}
	sig, err := cry.Sign(senderPriv, p.SigningData())
	if err != nil {
		return nil, errors.Wrap(err, "sign payment")
	}
	s, err := vsys.BytesToSignature(sig)
	if err != nil {
		return nil, err
	}
	p.body.Signature = s
	// signing encoded the body with a zero signature; drop that cache
	p.cache.bytes = nil
	return p, nil
}

// ParsePayment decodes a payment from its exact wire encoding.
func ParsePayment(data []byte) (*Payment, error) {
	if len(data) < paymentLength {
		return nil, tooShort(TypePayment, paymentLength, len(data))
	}
	if Type(data[0]) != TypePayment {
		return nil, badTag(TypePayment, data[0])
	}

	c := cursor{data: data, off: 1}
	var p Payment
	p.body.Timestamp = c.nextInt64()
	copy(p.body.Sender[:], c.next(vsys.PublicKeyLength))
	copy(p.body.Recipient[:], c.next(vsys.AddressLength))
	p.body.Amount = c.nextInt64()
	p.body.Fee = c.nextInt64()
	copy(p.body.Signature[:], c.next(vsys.SignatureLength))
	return &p, nil
}

// Type returns TypePayment.
func (p *Payment) Type() Type { return TypePayment }

// Timestamp in milliseconds since epoch.
func (p *Payment) Timestamp() int64 { return p.body.Timestamp }

// Sender is the sender's public key.
func (p *Payment) Sender() vsys.PublicKey { return p.body.Sender }

// Recipient is the target address.
func (p *Payment) Recipient() vsys.Address { return p.body.Recipient }

// Amount transferred to the recipient.
func (p *Payment) Amount() int64 { return p.body.Amount }

// Fee burnt by the sender.
func (p *Payment) Fee() int64 { return p.body.Fee }

// Signature returns the payment's signature.
func (p *Payment) Signature() vsys.Signature { return p.body.Signature }

// ID of a payment is its signature.
func (p *Payment) ID() vsys.Signature { return p.body.Signature }

// SigningData is the wire prefix the signature is computed over:
// type ++ timestamp ++ sender ++ recipient ++ amount ++ fee.
func (p *Payment) SigningData() []byte {
	return p.encode()[:paymentSigDataLen]
}

// Bytes is the deterministic wire encoding.
func (p *Payment) Bytes() []byte {
	return append([]byte(nil), p.encode()...)
}

func (p *Payment) encode() []byte {
	if p.cache.bytes != nil {
		return p.cache.bytes
	}
	b := make([]byte, 0, paymentLength)
	b = append(b, byte(TypePayment))
	b = appendInt64(b, p.body.Timestamp)
	b = append(b, p.body.Sender[:]...)
	b = append(b, p.body.Recipient[:]...)
	b = appendInt64(b, p.body.Amount)
	b = appendInt64(b, p.body.Fee)
	b = append(b, p.body.Signature[:]...)
	p.cache.bytes = b
	return b
}

// Validate runs the ordered checks; the order is an observable contract.
func (p *Payment) Validate() error {
	if !p.body.Recipient.Valid() {
		return validationError(InvalidAddress, "recipient %s", p.body.Recipient)
	}
	if p.body.Amount <= 0 {
		return validationError(NegativeAmount, "amount %d", p.body.Amount)
	}
	if p.body.Fee <= 0 {
		return validationError(InsufficientFee, "fee %d", p.body.Fee)
	}
	if p.body.Amount > math.MaxInt64-p.body.Fee {
		return validationError(Overflow, "amount %d + fee %d", p.body.Amount, p.body.Fee)
	}
	if !cry.Verify(p.body.Signature[:], p.SigningData(), p.body.Sender[:]) {
		return validationError(InvalidSignature, "payment %s", p.body.Signature)
	}
	return nil
}

// BalanceChanges: sender debited amount+fee, recipient credited amount.
func (p *Payment) BalanceChanges() []BalanceChange {
	return []BalanceChange{
		{Account: vsys.AccountFromPublicKey(p.body.Sender), Delta: -(p.body.Amount + p.body.Fee)},
		{Account: vsys.AccountFromAddress(p.body.Recipient), Delta: p.body.Amount},
	}
}
