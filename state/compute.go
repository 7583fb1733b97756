// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/co"
	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

// OfTransaction interprets one transaction against a snapshot and
// yields its diff. The snapshot is never mutated. The transaction is
// assumed already validated; what is checked here is only what needs
// the snapshot, namely that debits stay covered.
func OfTransaction(r Reader, t tx.Transaction, chain vsys.ChainID) (*Diff, error) {
	d := NewDiff()
	for _, change := range t.BalanceChanges() {
		addr, err := change.Account.Address(chain)
		if err != nil {
			return nil, errors.Wrap(err, "resolve account")
		}
		d.AddBalance(NewBalanceKey(addr, change.Asset), change.Delta)
		d.Opc.MarkAddress(addr)
	}
	if err := checkCovered(r, d.Balances); err != nil {
		return nil, err
	}
	d.TxIDs = append(d.TxIDs, t.ID())
	return d, nil
}

// OfBlock computes per-transaction diffs in parallel against the same
// snapshot, then folds them strictly in block order into one aggregate
// diff. The fold re-checks cumulative balances, so a block can never
// overdraw an account even when its transactions individually could not.
func OfBlock(r Reader, txs []tx.Transaction, chain vsys.ChainID) (*BlockDiff, error) {
	diffs := make([]*Diff, len(txs))
	errs := make([]error, len(txs))

	co.Parallel(func(enqueue co.Enqueue) {
		for i, t := range txs {
			i, t := i, t
			enqueue(func() {
				diffs[i], errs[i] = OfTransaction(r, t, chain)
			})
		}
	})

	agg := NewDiff()
	for i := range txs {
		if errs[i] != nil {
			return nil, errs[i]
		}
		agg.Merge(diffs[i])
		if err := checkCovered(r, agg.Balances); err != nil {
			return nil, err
		}
	}
	return &BlockDiff{Aggregate: agg, Txs: txs}, nil
}

func checkCovered(r Reader, balances map[BalanceKey]int64) error {
	for k, delta := range balances {
		if delta >= 0 {
			continue
		}
		var asset *vsys.AssetID
		if k.Asset != "" {
			var id vsys.AssetID
			copy(id[:], k.Asset)
			asset = &id
		}
		balance, err := r.Balance(k.Address, asset)
		if err != nil {
			return errors.Wrap(err, "read balance")
		}
		if balance+delta < 0 {
			return &tx.ValidationError{
				Kind: tx.InsufficientFunds,
				Msg:  k.Address.String(),
			}
		}
	}
	return nil
}
