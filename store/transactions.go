// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/vsys"
)

// TxInfo is what the transaction index stores per id: the height the
// transaction was included at and its exact wire bytes.
type TxInfo struct {
	Height uint32
	Raw    []byte
}

// Transaction looks a transaction up by id. Reads go through an LRU
// cache; ok is false when the id is unknown.
func (s *Store) Transaction(id vsys.Signature) (*TxInfo, bool, error) {
	if cached, ok := s.txCache.Get(id); ok {
		return cached.(*TxInfo), true, nil
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	val, err := s.get(bucketTransactions, id[:])
	if err != nil {
		if s.isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read transaction")
	}
	var info TxInfo
	if err := rlp.DecodeBytes(val, &info); err != nil {
		return nil, false, errors.Wrap(err, "decode transaction info")
	}
	s.txCache.Add(id, &info)
	return &info, true, nil
}

// ContainsTransaction reports whether an id is already indexed.
func (s *Store) ContainsTransaction(id vsys.Signature) (bool, error) {
	if s.txCache.Contains(id) {
		return true, nil
	}
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.has(bucketTransactions, id[:])
}

func (s *Store) putTransactionLocked(id vsys.Signature, info *TxInfo) error {
	val, err := rlp.EncodeToBytes(info)
	if err != nil {
		return errors.Wrap(err, "encode transaction info")
	}
	return s.put(bucketTransactions, id[:], val)
}
