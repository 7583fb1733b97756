// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"github.com/mr-tron/base58"

	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

// InvocationRequest is what the API layer hands the core when a client
// invokes a contract function. The data stack arrives base58 encoded;
// the core decodes it into an ordered data entry list before running
// the opcode differ.
type InvocationRequest struct {
	Sender        vsys.PublicKey
	ContractID    vsys.ContractID
	FunctionIndex uint16
	DataStack     string
	Description   string
	Fee           int64
	FeeScale      int16
}

// DecodeDataStack decodes the base58 payload into the ordered data
// entry sequence the opcode differ consumes.
func (r *InvocationRequest) DecodeDataStack() ([]DataEntry, error) {
	raw, err := base58.Decode(r.DataStack)
	if err != nil {
		return nil, &tx.ValidationError{Kind: tx.InvalidDataEntry, Msg: "data stack is not base58"}
	}
	return ParseDataEntries(raw)
}
