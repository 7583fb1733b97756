// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "encoding/json"

// The API layer renders validated transactions; the core only provides
// this one-way view. Binary stays the canonical encoding.

type paymentJSON struct {
	Type      byte   `json:"type"`
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
	Fee       int64  `json:"fee"`
	Signature string `json:"signature"`
}

// MarshalJSON implements json.Marshaler.
func (p *Payment) MarshalJSON() ([]byte, error) {
	return json.Marshal(&paymentJSON{
		Type:      byte(TypePayment),
		ID:        p.ID().String(),
		Timestamp: p.body.Timestamp,
		Sender:    p.body.Sender.String(),
		Recipient: p.body.Recipient.String(),
		Amount:    p.body.Amount,
		Fee:       p.body.Fee,
		Signature: p.body.Signature.String(),
	})
}

type genesisJSON struct {
	Type      byte   `json:"type"`
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
	Fee       int64  `json:"fee"`
	Signature string `json:"signature"`
}

// MarshalJSON implements json.Marshaler.
func (g *Genesis) MarshalJSON() ([]byte, error) {
	return json.Marshal(&genesisJSON{
		Type:      byte(TypeGenesis),
		ID:        g.ID().String(),
		Timestamp: g.body.Timestamp,
		Recipient: g.body.Recipient.String(),
		Amount:    g.body.Amount,
		Fee:       0,
		Signature: g.body.Signature.String(),
	})
}
