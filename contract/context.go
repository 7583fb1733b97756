// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import "github.com/dengjinhmm/v-systems/vsys"

// StateVar is one declared contract state variable: its storage tag
// byte and the data type values written to it must carry.
type StateVar struct {
	Tag  byte
	Type DataType
}

// ExecutionContext is the context an opcode executes under: the invoked
// contract, its ordered declared state variables (addressable by opcode
// operand index) and the invocation height.
type ExecutionContext struct {
	ContractID vsys.ContractID
	StateVars  []StateVar
	Height     uint32
}

// StorageKey is the composite contract-variable key:
// contract id bytes ++ single state var tag byte.
func (c *ExecutionContext) StorageKey(tag byte) []byte {
	return append(c.ContractID.Bytes(), tag)
}
