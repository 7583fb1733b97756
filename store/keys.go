// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"encoding/binary"

	"github.com/dengjinhmm/v-systems/kv"
	"github.com/dengjinhmm/v-systems/vsys"
)

// Named maps of the store, each a prefix bucket inside one engine.
// Created empty on first touch, mutated only through diff application
// and the explicit operations, deleted only by Reset.
const (
	bucketVariables       kv.Bucket = "va:"
	bucketAddressList     kv.Bucket = "al:"
	bucketAddressToID     kv.Bucket = "ai:"
	bucketTransactions    kv.Bucket = "tx:"
	bucketPortfolios      kv.Bucket = "pf:"
	bucketAssets          kv.Bucket = "as:"
	bucketAccountTxIDs    kv.Bucket = "at:"
	bucketAccountTxCounts kv.Bucket = "an:"
	bucketSnapshots       kv.Bucket = "bs:"
	bucketSnapshotHeads   kv.Bucket = "bh:"
	bucketAliases         kv.Bucket = "aa:"
	bucketOrderFills      kv.Bucket = "of:"
	bucketLeaseState      kv.Bucket = "ls:"
	bucketContracts       kv.Bucket = "ct:"
	bucketDBEntries       kv.Bucket = "db:"
)

// Keys inside bucketVariables.
var (
	keyStateVersion = []byte("stateVersion")
	keyHeight       = []byte("height")
	keyNextSlot     = []byte("nextSlot")
)

// indexedKey is the account index key shape: address bytes ++ 4-byte
// big-endian index (slot, sequence number or height).
func indexedKey(addr vsys.Address, index uint32) []byte {
	k := make([]byte, vsys.AddressLength+4)
	copy(k, addr[:])
	binary.BigEndian.PutUint32(k[vsys.AddressLength:], index)
	return k
}

func slotKey(slot uint32) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], slot)
	return k[:]
}
