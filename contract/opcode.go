// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"fmt"

	"github.com/dengjinhmm/v-systems/state"
	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

// Every opcode family shares the same pipeline: decode the fixed-width
// instruction, check operand bounds against the execution context,
// check types, emit a diff. New families add their own tag enumeration
// and checks on top.

const (
	// OpcodeSetStateVar writes a data entry into a declared state variable.
	OpcodeSetStateVar byte = 1

	// instructionLength is the exact width of a contract instruction:
	// [opcode tag][state var index][data entry index].
	instructionLength = 3
)

// OpcodeDiff interprets one instruction under ctx with the supplied
// data entries and produces the resulting state delta, or rejects the
// instruction. The snapshot-free checks run first; nothing is
// interpreted before all preconditions hold.
func OpcodeDiff(ctx *ExecutionContext, instruction []byte, entries []DataEntry) (*state.OpcDiff, error) {
	if len(instruction) != instructionLength {
		return nil, &tx.ValidationError{Kind: tx.InvalidOpcode, Msg: fmt.Sprintf("instruction length %d", len(instruction))}
	}
	if instruction[0] != OpcodeSetStateVar {
		return nil, &tx.ValidationError{Kind: tx.InvalidOpcode, Msg: fmt.Sprintf("unknown opcode %d", instruction[0])}
	}

	// index bytes are signed; negative values are out of bounds
	svIndex := int8(instruction[1])
	deIndex := int8(instruction[2])
	if svIndex < 0 || int(svIndex) >= len(ctx.StateVars) {
		return nil, &tx.ValidationError{Kind: tx.InvalidOpcode, Msg: fmt.Sprintf("state var index %d", svIndex)}
	}
	if deIndex < 0 || int(deIndex) >= len(entries) {
		return nil, &tx.ValidationError{Kind: tx.InvalidOpcode, Msg: fmt.Sprintf("data entry index %d", deIndex)}
	}

	stateVar := ctx.StateVars[svIndex]
	entry := entries[deIndex]
	if entry.Type != stateVar.Type {
		return nil, &tx.ValidationError{
			Kind: tx.InvalidStateVariable,
			Msg:  fmt.Sprintf("declared type %d, entry type %d", stateVar.Type, entry.Type),
		}
	}

	diff := state.NewOpcDiff()
	if entry.Type == DataTypeAddress {
		// validation already guaranteed well-formed address bytes; a
		// failure here is a defect, not a recoverable outcome
		addr, err := vsys.BytesToAddress(entry.Data)
		if err != nil {
			panic(fmt.Sprintf("opcode differ: address entry failed to decode: %v", err))
		}
		diff.MarkAddress(addr)
	}
	diff.SetContractData(ctx.StorageKey(stateVar.Tag), entry.Bytes())
	return diff, nil
}
