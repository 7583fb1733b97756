// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dengjinhmm/v-systems/cry"
	"github.com/dengjinhmm/v-systems/state"
	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

// memReader is a fixed in-memory snapshot.
type memReader struct {
	balances map[state.BalanceKey]int64
	height   uint32
}

func (r *memReader) Balance(addr vsys.Address, asset *vsys.AssetID) (int64, error) {
	return r.balances[state.NewBalanceKey(addr, asset)], nil
}

func (r *memReader) ContractData([]byte) ([]byte, bool, error) { return nil, false, nil }

func (r *memReader) Height() (uint32, error) { return r.height, nil }

type testAccount struct {
	priv []byte
	pub  vsys.PublicKey
	addr vsys.Address
}

func newTestAccount(t *testing.T) testAccount {
	t.Helper()
	pub, priv, err := cry.GenerateKey()
	require.NoError(t, err)
	p, err := vsys.BytesToPublicKey(pub)
	require.NoError(t, err)
	return testAccount{priv: priv, pub: p, addr: vsys.AddressFromPublicKey(vsys.Testnet, p)}
}

func TestOfTransactionPayment(t *testing.T) {
	sender := newTestAccount(t)
	recipient := newTestAccount(t)
	reader := &memReader{balances: map[state.BalanceKey]int64{
		state.NewBalanceKey(sender.addr, nil): 1000,
	}}

	p, err := tx.NewPayment(sender.priv, sender.pub, recipient.addr, 100, 1, 1000)
	require.NoError(t, err)

	diff, err := state.OfTransaction(reader, p, vsys.Testnet)
	require.NoError(t, err)

	assert.Equal(t, int64(-101), diff.Balances[state.NewBalanceKey(sender.addr, nil)])
	assert.Equal(t, int64(100), diff.Balances[state.NewBalanceKey(recipient.addr, nil)])
	assert.Contains(t, diff.Opc.RelatedAddress, sender.addr)
	assert.Contains(t, diff.Opc.RelatedAddress, recipient.addr)
	assert.Equal(t, []vsys.Signature{p.ID()}, diff.TxIDs)
}

func TestOfTransactionInsufficientFunds(t *testing.T) {
	sender := newTestAccount(t)
	recipient := newTestAccount(t)
	reader := &memReader{balances: map[state.BalanceKey]int64{
		state.NewBalanceKey(sender.addr, nil): 100,
	}}

	p, err := tx.NewPayment(sender.priv, sender.pub, recipient.addr, 100, 1, 1000)
	require.NoError(t, err)

	_, err = state.OfTransaction(reader, p, vsys.Testnet)
	assert.True(t, tx.IsValidation(err, tx.InsufficientFunds))
}

func TestOfTransactionGenesis(t *testing.T) {
	recipient := newTestAccount(t)
	reader := &memReader{balances: map[state.BalanceKey]int64{}}

	g := tx.NewGenesis(recipient.addr, 1_000_000, 1000)
	diff, err := state.OfTransaction(reader, g, vsys.Testnet)
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000), diff.Balances[state.NewBalanceKey(recipient.addr, nil)])
	assert.Len(t, diff.Balances, 1)
}

func TestOfBlockParallelAndOrdered(t *testing.T) {
	accounts := make([]testAccount, 8)
	balances := make(map[state.BalanceKey]int64)
	for i := range accounts {
		accounts[i] = newTestAccount(t)
		balances[state.NewBalanceKey(accounts[i].addr, nil)] = 1000
	}
	reader := &memReader{balances: balances}

	var txs []tx.Transaction
	for i := range accounts {
		to := accounts[(i+1)%len(accounts)]
		p, err := tx.NewPayment(accounts[i].priv, accounts[i].pub, to.addr, 10, 1, int64(1000+i))
		require.NoError(t, err)
		txs = append(txs, p)
	}

	bd, err := state.OfBlock(reader, txs, vsys.Testnet)
	require.NoError(t, err)
	require.Len(t, bd.Txs, len(txs))
	assert.Len(t, bd.Aggregate.TxIDs, len(txs))

	// everyone sent 11 (10 + fee) and received 10
	for i := range accounts {
		key := state.NewBalanceKey(accounts[i].addr, nil)
		assert.Equal(t, int64(-1), bd.Aggregate.Balances[key])
	}
	// tx ids keep block order
	for i, tr := range txs {
		assert.Equal(t, tr.ID(), bd.Aggregate.TxIDs[i])
	}
}

func TestOfBlockCumulativeOverdraft(t *testing.T) {
	sender := newTestAccount(t)
	r1 := newTestAccount(t)
	r2 := newTestAccount(t)
	reader := &memReader{balances: map[state.BalanceKey]int64{
		state.NewBalanceKey(sender.addr, nil): 150,
	}}

	// each alone is covered, together they overdraw
	p1, err := tx.NewPayment(sender.priv, sender.pub, r1.addr, 100, 1, 1000)
	require.NoError(t, err)
	p2, err := tx.NewPayment(sender.priv, sender.pub, r2.addr, 100, 1, 2000)
	require.NoError(t, err)

	_, err = state.OfBlock(reader, []tx.Transaction{p1, p2}, vsys.Testnet)
	assert.True(t, tx.IsValidation(err, tx.InsufficientFunds))
}
