// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/vsys"
)

// AssetInfo is the assets table row.
type AssetInfo struct {
	Reissuable bool
	Quantity   uint64
}

// SetAsset stages an assets table row.
func (s *Store) SetAsset(id vsys.AssetID, info *AssetInfo) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	val, err := rlp.EncodeToBytes(info)
	if err != nil {
		return errors.Wrap(err, "encode asset info")
	}
	return s.put(bucketAssets, id[:], val)
}

// Asset reads an assets table row; ok is false for unknown ids.
func (s *Store) Asset(id vsys.AssetID) (*AssetInfo, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	val, err := s.get(bucketAssets, id[:])
	if err != nil {
		if s.isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read asset info")
	}
	var info AssetInfo
	if err := rlp.DecodeBytes(val, &info); err != nil {
		return nil, false, errors.Wrap(err, "decode asset info")
	}
	return &info, true, nil
}

// SetAlias stages an alias → address mapping.
func (s *Store) SetAlias(alias string, addr vsys.Address) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.put(bucketAliases, []byte(alias), addr[:])
}

// AddressOfAlias resolves an alias; ok is false for unknown aliases.
func (s *Store) AddressOfAlias(alias string) (vsys.Address, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	val, err := s.get(bucketAliases, []byte(alias))
	if err != nil {
		if s.isNotFound(err) {
			return vsys.Address{}, false, nil
		}
		return vsys.Address{}, false, errors.Wrap(err, "read alias")
	}
	addr, err := vsys.BytesToAddress(val)
	if err != nil {
		return vsys.Address{}, false, errors.Wrap(err, "decode alias target")
	}
	return addr, true, nil
}

// OrderFill is the accumulated fill of one order.
type OrderFill struct {
	Volume uint64
	Fee    uint64
}

// FillOrder accumulates volume and fee into an order's fill row.
func (s *Store) FillOrder(orderID vsys.Signature, volume, fee uint64) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	fill, staleLen, _, err := s.orderFillLocked(orderID)
	if err != nil {
		return err
	}
	fill.Volume += volume
	fill.Fee += fee
	s.noteStale(staleLen)
	val, err := rlp.EncodeToBytes(fill)
	if err != nil {
		return errors.Wrap(err, "encode order fill")
	}
	return s.put(bucketOrderFills, orderID[:], val)
}

// OrderFill reads an order's accumulated fill; unknown orders read as
// zero fill.
func (s *Store) OrderFill(orderID vsys.Signature) (*OrderFill, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	fill, _, ok, err := s.orderFillLocked(orderID)
	return fill, ok, err
}

// orderFillLocked also reports the stored size of the previous value,
// which the compaction accounting uses on overwrite.
func (s *Store) orderFillLocked(orderID vsys.Signature) (*OrderFill, int, bool, error) {
	val, err := s.get(bucketOrderFills, orderID[:])
	if err != nil {
		if s.isNotFound(err) {
			return &OrderFill{}, 0, false, nil
		}
		return nil, 0, false, errors.Wrap(err, "read order fill")
	}
	var fill OrderFill
	if err := rlp.DecodeBytes(val, &fill); err != nil {
		return nil, 0, false, errors.Wrap(err, "decode order fill")
	}
	return &fill, len(val), true, nil
}

// LeaseInfo is the lease state row, keyed by the lease transaction id.
type LeaseInfo struct {
	Active    bool
	Sender    vsys.Address
	Recipient vsys.Address
	Amount    uint64
}

// SetLeaseState stages a lease state row.
func (s *Store) SetLeaseState(leaseID vsys.Signature, info *LeaseInfo) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	val, err := rlp.EncodeToBytes(info)
	if err != nil {
		return errors.Wrap(err, "encode lease state")
	}
	return s.put(bucketLeaseState, leaseID[:], val)
}

// LeaseState reads a lease state row; ok is false for unknown leases.
func (s *Store) LeaseState(leaseID vsys.Signature) (*LeaseInfo, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	val, err := s.get(bucketLeaseState, leaseID[:])
	if err != nil {
		if s.isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read lease state")
	}
	var info LeaseInfo
	if err := rlp.DecodeBytes(val, &info); err != nil {
		return nil, false, errors.Wrap(err, "decode lease state")
	}
	return &info, true, nil
}
