// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/dengjinhmm/v-systems/vsys"

// Reader is a read-only snapshot of ledger state. Diff computation only
// ever reads through it and never mutates it; concurrent readers over
// the same snapshot are safe.
type Reader interface {
	// Balance of an address in one asset; nil asset means the native
	// asset. Unknown addresses hold zero.
	Balance(addr vsys.Address, asset *vsys.AssetID) (int64, error)
	// ContractData reads a contract db value by composite key.
	// ok is false when the key is absent.
	ContractData(key []byte) (value []byte, ok bool, err error)
	// Height is the chain height of the snapshot.
	Height() (uint32, error)
}
