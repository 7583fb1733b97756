// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/vsys"
)

// Account transaction history: per-address append-only rows keyed
// address ++ 4-byte BE sequence number, plus a row count, so the API
// layer can page through an account's transactions newest first.

// AccountTxCount is the number of indexed transactions of an address.
func (s *Store) AccountTxCount(addr vsys.Address) (uint32, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.accountTxCountLocked(addr)
}

func (s *Store) accountTxCountLocked(addr vsys.Address) (uint32, error) {
	val, err := s.get(bucketAccountTxCounts, addr[:])
	if err != nil {
		if s.isNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "read account tx count")
	}
	return binary.BigEndian.Uint32(val), nil
}

// appendAccountTxLocked reads the row count through the staged values,
// so several transactions touching one account in the same batch get
// consecutive sequence numbers instead of overwriting each other.
func (s *Store) appendAccountTxLocked(addr vsys.Address, id vsys.Signature) error {
	count, ok := s.stagedTxCounts[addr]
	if !ok {
		var err error
		count, err = s.accountTxCountLocked(addr)
		if err != nil {
			return err
		}
	}
	if err := s.put(bucketAccountTxIDs, indexedKey(addr, count), id[:]); err != nil {
		return err
	}
	var next [4]byte
	binary.BigEndian.PutUint32(next[:], count+1)
	if count > 0 {
		s.noteStale(4)
	}
	s.stagedTxCounts[addr] = count + 1
	return s.put(bucketAccountTxCounts, addr[:], next[:])
}

// AccountTransactions pages through an account's transaction ids,
// newest first. offset skips that many newest rows; limit bounds the
// page size.
func (s *Store) AccountTransactions(addr vsys.Address, offset, limit uint32) ([]vsys.Signature, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	count, err := s.accountTxCountLocked(addr)
	if err != nil {
		return nil, err
	}
	if offset >= count || limit == 0 {
		return nil, nil
	}

	ids := make([]vsys.Signature, 0, limit)
	for seq := count - offset; seq > 0 && uint32(len(ids)) < limit; seq-- {
		val, err := s.get(bucketAccountTxIDs, indexedKey(addr, seq-1))
		if err != nil {
			return nil, errors.Wrap(err, "read account tx row")
		}
		id, err := vsys.BytesToSignature(val)
		if err != nil {
			return nil, errors.Wrap(err, "decode account tx row")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// BalanceSnapshot is one height-stamped balance record of an address,
// linked to the previous snapshot for cheap backwards walks.
type BalanceSnapshot struct {
	PrevHeight       uint32
	Balance          uint64
	EffectiveBalance uint64
}

// BalanceSnapshotAt reads the snapshot written at exactly the given
// height; ok is false when that height wrote none.
func (s *Store) BalanceSnapshotAt(addr vsys.Address, height uint32) (*BalanceSnapshot, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snapshotAtLocked(addr, height)
}

func (s *Store) snapshotAtLocked(addr vsys.Address, height uint32) (*BalanceSnapshot, bool, error) {
	val, err := s.get(bucketSnapshots, indexedKey(addr, height))
	if err != nil {
		if s.isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read balance snapshot")
	}
	var snap BalanceSnapshot
	if err := rlp.DecodeBytes(val, &snap); err != nil {
		return nil, false, errors.Wrap(err, "decode balance snapshot")
	}
	return &snap, true, nil
}

func (s *Store) lastSnapshotHeightLocked(addr vsys.Address) (uint32, bool, error) {
	val, err := s.get(bucketSnapshotHeads, addr[:])
	if err != nil {
		if s.isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "read snapshot head")
	}
	return binary.BigEndian.Uint32(val), true, nil
}

func (s *Store) writeSnapshotLocked(addr vsys.Address, height uint32, p *Portfolio) error {
	prev, hasPrev, err := s.lastSnapshotHeightLocked(addr)
	if err != nil {
		return err
	}
	snap := BalanceSnapshot{
		Balance:          p.Balance,
		EffectiveBalance: p.EffectiveBalance(),
	}
	if hasPrev && prev != height {
		snap.PrevHeight = prev
	} else if hasPrev {
		// same-height rewrite keeps the older link
		old, ok, err := s.snapshotAtLocked(addr, height)
		if err != nil {
			return err
		}
		if ok {
			snap.PrevHeight = old.PrevHeight
			s.noteStale(4)
		}
	}
	val, err := rlp.EncodeToBytes(&snap)
	if err != nil {
		return errors.Wrap(err, "encode balance snapshot")
	}
	if err := s.put(bucketSnapshots, indexedKey(addr, height), val); err != nil {
		return err
	}
	var head [4]byte
	binary.BigEndian.PutUint32(head[:], height)
	return s.put(bucketSnapshotHeads, addr[:], head[:])
}

// MinEffectiveBalance walks the snapshot chain and returns the minimum
// effective balance the address held over heights [from, to]. Weighted
// balance history is computed from it.
func (s *Store) MinEffectiveBalance(addr vsys.Address, from, to uint32) (uint64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	height, ok, err := s.lastSnapshotHeightLocked(addr)
	if err != nil || !ok {
		return 0, err
	}

	var (
		minimum uint64
		seen    bool
	)
	for {
		snap, ok, err := s.snapshotAtLocked(addr, height)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		if height <= to && (!seen || snap.EffectiveBalance < minimum) {
			// the newest snapshot at or below `to` is the balance the
			// whole tail of the range held
			minimum = snap.EffectiveBalance
			seen = true
		}
		if height <= from || snap.PrevHeight == height || snap.PrevHeight == 0 && height == 0 {
			break
		}
		if snap.PrevHeight == 0 {
			break
		}
		height = snap.PrevHeight
	}
	return minimum, nil
}
