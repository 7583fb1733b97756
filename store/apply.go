// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/state"
	"github.com/dengjinhmm/v-systems/vsys"
)

// ApplyBlockDiff applies one block's aggregate diff to the store in a
// single atomic commit: balance deltas, contract db writes, slot
// assignment for newly related addresses, the transaction index, the
// per-account history rows and balance snapshots, and the height
// increment. A diff is a delta, not a set-to; callers apply each block
// diff exactly once.
func (s *Store) ApplyBlockDiff(bd *state.BlockDiff) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	height, err := s.heightLocked()
	if err != nil {
		return err
	}
	newHeight := height + 1

	for key, delta := range bd.Aggregate.Balances {
		var asset *vsys.AssetID
		if key.Asset != "" {
			var id vsys.AssetID
			copy(id[:], key.Asset)
			asset = &id
		}
		portfolio, err := s.applyBalanceLocked(key.Address, asset, delta)
		if err != nil {
			return errors.Wrap(err, "apply balance change")
		}
		if asset == nil {
			if err := s.writeSnapshotLocked(key.Address, newHeight, portfolio); err != nil {
				return err
			}
		}
		metricBalanceChanges().Add(1)
	}

	for key, value := range bd.Aggregate.Opc.ContractDB {
		if err := s.putContractDataLocked([]byte(key), value); err != nil {
			return errors.Wrap(err, "apply contract write")
		}
	}

	for addr := range bd.Aggregate.Opc.RelatedAddress {
		if _, err := s.assignSlotLocked(addr); err != nil {
			return errors.Wrap(err, "assign related address slot")
		}
	}

	for _, t := range bd.Txs {
		id := t.ID()
		if err := s.putTransactionLocked(id, &TxInfo{Height: newHeight, Raw: t.Bytes()}); err != nil {
			return errors.Wrap(err, "index transaction")
		}
		touched := make(map[vsys.Address]struct{})
		for _, change := range t.BalanceChanges() {
			addr, err := change.Account.Address(s.chain)
			if err != nil {
				return errors.Wrap(err, "resolve history account")
			}
			if _, ok := touched[addr]; ok {
				continue
			}
			touched[addr] = struct{}{}
			if err := s.appendAccountTxLocked(addr, id); err != nil {
				return errors.Wrap(err, "append account history")
			}
		}
		metricAppliedTxs().Add(1)
	}

	if err := s.putVariable(keyHeight, newHeight); err != nil {
		return err
	}
	if err := s.commitLocked(); err != nil {
		return err
	}
	logger.Debug("applied block diff",
		"height", newHeight, "txs", len(bd.Txs), "balances", len(bd.Aggregate.Balances))
	return nil
}
