// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/vsys"
)

// ContractInfo is the contract table row: whether the contract is
// active, who created it, and its opaque metadata (the declared state
// variable list among it).
type ContractInfo struct {
	Active   bool
	Creator  vsys.Address
	Metadata []byte
}

// RegisterContract stages a contract table row.
func (s *Store) RegisterContract(id vsys.ContractID, info *ContractInfo) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	val, err := rlp.EncodeToBytes(info)
	if err != nil {
		return errors.Wrap(err, "encode contract info")
	}
	return s.put(bucketContracts, id[:], val)
}

// ContractInfo reads a contract table row; ok is false for unknown ids.
func (s *Store) ContractInfo(id vsys.ContractID) (*ContractInfo, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	val, err := s.get(bucketContracts, id[:])
	if err != nil {
		if s.isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read contract info")
	}
	var info ContractInfo
	if err := rlp.DecodeBytes(val, &info); err != nil {
		return nil, false, errors.Wrap(err, "decode contract info")
	}
	return &info, true, nil
}

// ContractData implements state.Reader over the generic contract db.
func (s *Store) ContractData(key []byte) ([]byte, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.contractDataLocked(key)
}

func (s *Store) contractDataLocked(key []byte) ([]byte, bool, error) {
	val, err := s.get(bucketDBEntries, key)
	if err != nil {
		if s.isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read contract data")
	}
	return val, true, nil
}

func (s *Store) putContractDataLocked(key, value []byte) error {
	if old, ok, err := s.contractDataLocked(key); err != nil {
		return err
	} else if ok {
		s.noteStale(len(old))
	}
	return s.put(bucketDBEntries, key, value)
}
