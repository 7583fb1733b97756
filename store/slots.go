// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/vsys"
)

// Slots give every known address a compact 4-byte index so other maps
// can key on the slot instead of the 26-byte address. Assignment and
// release are explicit operations; nothing is garbage collected.

// AssignSlot returns the slot of an address, assigning the next free
// one on first sight. The write is staged until Commit.
func (s *Store) AssignSlot(addr vsys.Address) (uint32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.assignSlotLocked(addr)
}

// assignSlotLocked reads through the staged assignments, so addresses
// first seen in the same batch still get distinct slots.
func (s *Store) assignSlotLocked(addr vsys.Address) (uint32, error) {
	if slot, ok := s.stagedSlots[addr]; ok {
		return slot, nil
	}
	if slot, ok, err := s.slotOfLocked(addr); err != nil || ok {
		return slot, err
	}

	next := s.stagedNextSlot
	if !s.hasStagedNextSlot {
		committed, err := s.variable(keyNextSlot)
		if err != nil {
			return 0, err
		}
		next = committed
	}
	if err := s.put(bucketAddressToID, addr[:], slotKey(next)); err != nil {
		return 0, err
	}
	if err := s.put(bucketAddressList, slotKey(next), addr[:]); err != nil {
		return 0, err
	}
	if err := s.putVariable(keyNextSlot, next+1); err != nil {
		return 0, err
	}
	s.stagedSlots[addr] = next
	s.stagedNextSlot = next + 1
	s.hasStagedNextSlot = true
	return next, nil
}

// SlotOf returns the slot assigned to an address; ok is false when the
// address has none.
func (s *Store) SlotOf(addr vsys.Address) (uint32, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.slotOfLocked(addr)
}

func (s *Store) slotOfLocked(addr vsys.Address) (uint32, bool, error) {
	val, err := s.get(bucketAddressToID, addr[:])
	if err != nil {
		if s.isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "read address slot")
	}
	if len(val) != 4 {
		return 0, false, errors.Errorf("slot value of unexpected length %d", len(val))
	}
	return binary.BigEndian.Uint32(val), true, nil
}

// AddressBySlot resolves a slot back to its address; ok is false for
// unassigned slots.
func (s *Store) AddressBySlot(slot uint32) (vsys.Address, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	val, err := s.get(bucketAddressList, slotKey(slot))
	if err != nil {
		if s.isNotFound(err) {
			return vsys.Address{}, false, nil
		}
		return vsys.Address{}, false, errors.Wrap(err, "read slot address")
	}
	addr, err := vsys.BytesToAddress(val)
	if err != nil {
		return vsys.Address{}, false, errors.Wrap(err, "decode slot address")
	}
	return addr, true, nil
}

// ReleaseSlot removes the bidirectional mapping of an address. The slot
// number is not reused.
func (s *Store) ReleaseSlot(addr vsys.Address) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	slot, ok := s.stagedSlots[addr]
	if ok {
		delete(s.stagedSlots, addr)
	} else {
		var err error
		slot, ok, err = s.slotOfLocked(addr)
		if err != nil || !ok {
			return err
		}
	}
	s.noteStale(vsys.AddressLength + 4)
	if err := s.delete(bucketAddressToID, addr[:]); err != nil {
		return err
	}
	return s.delete(bucketAddressList, slotKey(slot))
}
