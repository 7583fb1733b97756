// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dengjinhmm/v-systems/cry"
	"github.com/dengjinhmm/v-systems/state"
	"github.com/dengjinhmm/v-systems/store"
	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

type keypair struct {
	pub     vsys.PublicKey
	priv    []byte
	address vsys.Address
}

func newKeypair(t *testing.T) keypair {
	t.Helper()
	pub, priv, err := cry.GenerateKey()
	require.NoError(t, err)
	p, err := vsys.BytesToPublicKey(pub)
	require.NoError(t, err)
	return keypair{pub: p, priv: priv, address: vsys.AddressFromPublicKey(vsys.Testnet, p)}
}

func applyBlock(t *testing.T, s *store.Store, txs ...tx.Transaction) {
	t.Helper()
	bd, err := state.OfBlock(s, txs, vsys.Testnet)
	require.NoError(t, err)
	require.NoError(t, s.ApplyBlockDiff(bd))
}

func TestApplyGenesisThenPayment(t *testing.T) {
	s, _ := openStore(t)
	alice := newKeypair(t)
	bob := newKeypair(t)

	applyBlock(t, s, tx.NewGenesis(alice.address, 1000, 1))

	balance, err := s.Balance(alice.address, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	h, err := s.Height()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h)

	payment, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 100, 1, 2)
	require.NoError(t, err)
	applyBlock(t, s, payment)

	balance, err = s.Balance(alice.address, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(899), balance)

	balance, err = s.Balance(bob.address, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	h, err = s.Height()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), h)
}

func TestApplyIndexesTransactions(t *testing.T) {
	s, _ := openStore(t)
	alice := newKeypair(t)
	bob := newKeypair(t)

	genesis := tx.NewGenesis(alice.address, 1000, 1)
	applyBlock(t, s, genesis)

	payment, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 100, 1, 2)
	require.NoError(t, err)
	applyBlock(t, s, payment)

	info, ok, err := s.Transaction(payment.ID())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(2), info.Height)
	assert.Equal(t, payment.Bytes(), info.Raw)

	// the raw bytes round-trip back into the same transaction
	decoded, err := tx.FromBytes(info.Raw)
	require.NoError(t, err)
	assert.True(t, tx.Equal(payment, decoded))

	ok, err = s.ContainsTransaction(genesis.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	var unknown vsys.Signature
	unknown[0] = 0xff
	ok, err = s.ContainsTransaction(unknown)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountHistoryPagination(t *testing.T) {
	s, _ := openStore(t)
	alice := newKeypair(t)
	bob := newKeypair(t)

	applyBlock(t, s, tx.NewGenesis(alice.address, 1000, 1))

	var payments []tx.Transaction
	for i := int64(0); i < 3; i++ {
		p, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 10, 1, 2+i)
		require.NoError(t, err)
		payments = append(payments, p)
		applyBlock(t, s, p)
	}

	count, err := s.AccountTxCount(alice.address)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), count) // genesis plus three payments

	count, err = s.AccountTxCount(bob.address)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), count)

	// newest first
	ids, err := s.AccountTransactions(bob.address, 0, 2)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, payments[2].ID(), ids[0])
	assert.Equal(t, payments[1].ID(), ids[1])

	ids, err = s.AccountTransactions(bob.address, 2, 10)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, payments[0].ID(), ids[0])

	ids, err = s.AccountTransactions(bob.address, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBalanceSnapshots(t *testing.T) {
	s, _ := openStore(t)
	alice := newKeypair(t)
	bob := newKeypair(t)

	applyBlock(t, s, tx.NewGenesis(alice.address, 1000, 1)) // height 1

	p1, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 500, 1, 2)
	require.NoError(t, err)
	applyBlock(t, s, p1) // height 2, alice 499

	p2, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 99, 1, 3)
	require.NoError(t, err)
	applyBlock(t, s, p2) // height 3, alice 399

	snap, ok, err := s.BalanceSnapshotAt(alice.address, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(499), snap.Balance)
	assert.Equal(t, uint32(1), snap.PrevHeight)

	_, ok, err = s.BalanceSnapshotAt(alice.address, 99)
	require.NoError(t, err)
	assert.False(t, ok)

	min, err := s.MinEffectiveBalance(alice.address, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(399), min)

	min, err = s.MinEffectiveBalance(alice.address, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(499), min)

	// an address with no snapshots reads as zero
	min, err = s.MinEffectiveBalance(newKeypair(t).address, 1, 3)
	require.NoError(t, err)
	assert.Zero(t, min)
}

func TestApplyAssignsDistinctSlots(t *testing.T) {
	s, _ := openStore(t)
	a := newKeypair(t)
	b := newKeypair(t)

	// both addresses are first seen inside one block
	applyBlock(t, s,
		tx.NewGenesis(a.address, 100, 1),
		tx.NewGenesis(b.address, 100, 2),
	)

	slotA, ok, err := s.SlotOf(a.address)
	require.NoError(t, err)
	require.True(t, ok)
	slotB, ok, err := s.SlotOf(b.address)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, slotA, slotB)

	backA, ok, err := s.AddressBySlot(slotA)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.address, backA)

	backB, ok, err := s.AddressBySlot(slotB)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, b.address, backB)
}

func TestAccountHistorySameBlock(t *testing.T) {
	s, _ := openStore(t)
	alice := newKeypair(t)
	bob := newKeypair(t)

	genesis := tx.NewGenesis(alice.address, 1000, 1)
	applyBlock(t, s, genesis)

	p1, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 10, 1, 2)
	require.NoError(t, err)
	p2, err := tx.NewPayment(alice.priv, alice.pub, bob.address, 20, 1, 3)
	require.NoError(t, err)
	applyBlock(t, s, p1, p2)

	count, err := s.AccountTxCount(alice.address)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), count)

	ids, err := s.AccountTransactions(alice.address, 0, 10)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Equal(t, p2.ID(), ids[0])
	assert.Equal(t, p1.ID(), ids[1])
	assert.Equal(t, genesis.ID(), ids[2])

	count, err = s.AccountTxCount(bob.address)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count)
}

func TestApplyContractWrites(t *testing.T) {
	s, _ := openStore(t)
	related := newKeypair(t).address

	diff := state.NewDiff()
	diff.Opc.SetContractData([]byte("ck"), []byte("cv"))
	diff.Opc.MarkAddress(related)

	require.NoError(t, s.ApplyBlockDiff(&state.BlockDiff{Aggregate: diff}))

	val, ok, err := s.ContractData([]byte("ck"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("cv"), val)

	// related addresses got a slot
	_, ok, err = s.SlotOf(related)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestApplyRejectsOverdraft(t *testing.T) {
	s, _ := openStore(t)
	alice := newKeypair(t)

	diff := state.NewDiff()
	key := state.NewBalanceKey(alice.address, nil)
	diff.Balances[key] = -1

	err := s.ApplyBlockDiff(&state.BlockDiff{Aggregate: diff})
	require.Error(t, err)
}
