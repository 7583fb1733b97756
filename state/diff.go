// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

// Diffs are values, not commands: a diff is a delta, not a set-to, so
// the store must apply each diff exactly once per block.

// BalanceKey addresses one (account, asset) balance. An empty Asset
// string means the native asset; otherwise it holds the raw asset id
// bytes.
type BalanceKey struct {
	Address vsys.Address
	Asset   string
}

// NewBalanceKey builds a key; nil asset means the native asset.
func NewBalanceKey(addr vsys.Address, asset *vsys.AssetID) BalanceKey {
	k := BalanceKey{Address: addr}
	if asset != nil {
		k.Asset = string(asset.Bytes())
	}
	return k
}

// OpcDiff is the mergeable delta a contract opcode produces.
type OpcDiff struct {
	// ContractDB maps composite key (contract id ++ state var tag) to
	// raw value bytes.
	ContractDB map[string][]byte
	// RelatedAddress is the set of addresses newly touched.
	RelatedAddress map[vsys.Address]struct{}
}

// NewOpcDiff creates an empty opcode diff.
func NewOpcDiff() *OpcDiff {
	return &OpcDiff{
		ContractDB:     make(map[string][]byte),
		RelatedAddress: make(map[vsys.Address]struct{}),
	}
}

// SetContractData records a contract db write.
func (d *OpcDiff) SetContractData(key, value []byte) {
	d.ContractDB[string(key)] = value
}

// MarkAddress records a touched address.
func (d *OpcDiff) MarkAddress(a vsys.Address) {
	d.RelatedAddress[a] = struct{}{}
}

// Merge combines o into d: union on RelatedAddress, overwrite-last on
// ContractDB. For disjoint keys the operation is associative and
// commutative, which is what allows per-transaction diffs to be
// computed in parallel and then combined in block order.
func (d *OpcDiff) Merge(o *OpcDiff) {
	for k, v := range o.ContractDB {
		d.ContractDB[k] = v
	}
	for a := range o.RelatedAddress {
		d.RelatedAddress[a] = struct{}{}
	}
}

// Diff is the state delta of one transaction (or a merged run of them):
// additive balance deltas plus an opcode diff plus the ids of the
// transactions that produced it.
type Diff struct {
	Balances map[BalanceKey]int64
	Opc      *OpcDiff
	TxIDs    []vsys.Signature
}

// NewDiff creates an empty diff.
func NewDiff() *Diff {
	return &Diff{
		Balances: make(map[BalanceKey]int64),
		Opc:      NewOpcDiff(),
	}
}

// AddBalance accumulates a delta for one balance key.
func (d *Diff) AddBalance(k BalanceKey, delta int64) {
	d.Balances[k] += delta
}

// Merge folds o into d in block order: balance deltas for the same
// account accumulate additively, contract db writes to the same key
// resolve later-wins, related addresses union.
func (d *Diff) Merge(o *Diff) {
	for k, delta := range o.Balances {
		d.Balances[k] += delta
	}
	d.Opc.Merge(o.Opc)
	d.TxIDs = append(d.TxIDs, o.TxIDs...)
}

// BlockDiff aggregates all per-transaction diffs of one block; the
// store applies it atomically in a single commit.
type BlockDiff struct {
	Aggregate *Diff
	Txs       []tx.Transaction
}
