// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dengjinhmm/v-systems/state"
	"github.com/dengjinhmm/v-systems/vsys"
)

func addrOf(b byte) vsys.Address {
	var a vsys.Address
	a[2] = b
	return a
}

func TestOpcDiffMergeDisjointCommutes(t *testing.T) {
	build := func(first, second *state.OpcDiff) *state.OpcDiff {
		merged := state.NewOpcDiff()
		merged.Merge(first)
		merged.Merge(second)
		return merged
	}

	a := state.NewOpcDiff()
	a.SetContractData([]byte("k1"), []byte("v1"))
	a.MarkAddress(addrOf(1))

	b := state.NewOpcDiff()
	b.SetContractData([]byte("k2"), []byte("v2"))
	b.MarkAddress(addrOf(2))

	ab := build(a, b)
	ba := build(b, a)

	assert.Equal(t, ab.ContractDB, ba.ContractDB)
	assert.Equal(t, ab.RelatedAddress, ba.RelatedAddress)
	assert.Len(t, ab.ContractDB, 2)
	assert.Len(t, ab.RelatedAddress, 2)
}

func TestOpcDiffMergeLaterWins(t *testing.T) {
	a := state.NewOpcDiff()
	a.SetContractData([]byte("k"), []byte("old"))

	b := state.NewOpcDiff()
	b.SetContractData([]byte("k"), []byte("new"))

	merged := state.NewOpcDiff()
	merged.Merge(a)
	merged.Merge(b)
	assert.Equal(t, []byte("new"), merged.ContractDB["k"])

	merged = state.NewOpcDiff()
	merged.Merge(b)
	merged.Merge(a)
	assert.Equal(t, []byte("old"), merged.ContractDB["k"])
}

func TestDiffMergeBalancesAccumulate(t *testing.T) {
	key := state.NewBalanceKey(addrOf(1), nil)

	a := state.NewDiff()
	a.AddBalance(key, 100)

	b := state.NewDiff()
	b.AddBalance(key, -30)

	a.Merge(b)
	assert.Equal(t, int64(70), a.Balances[key])
}

func TestBalanceKeyAssets(t *testing.T) {
	addr := addrOf(7)
	native := state.NewBalanceKey(addr, nil)

	var asset vsys.AssetID
	asset[0] = 0xaa
	issued := state.NewBalanceKey(addr, &asset)

	assert.NotEqual(t, native, issued)
	assert.Equal(t, "", native.Asset)
	assert.Equal(t, string(asset.Bytes()), issued.Asset)
}
