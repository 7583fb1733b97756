// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dengjinhmm/v-systems/tx"
)

func TestFromBytesDispatch(t *testing.T) {
	p, _, _ := newPayment(t, 100, 1)
	g := tx.NewGenesis(newAccount(t).addr, 42, 1)

	decoded, err := tx.FromBytes(p.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tx.TypePayment, decoded.Type())
	assert.True(t, tx.Equal(p, decoded))

	decoded, err = tx.FromBytes(g.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tx.TypeGenesis, decoded.Type())
	assert.True(t, tx.Equal(g, decoded))

	_, err = tx.FromBytes(nil)
	assert.True(t, tx.IsDecode(err))

	_, err = tx.FromBytes([]byte{0xee, 1, 2})
	assert.True(t, tx.IsDecode(err))
}

func TestTransactionIdentity(t *testing.T) {
	sender := newAccount(t)
	recipient := newAccount(t)

	p1, err := tx.NewPayment(sender.priv, sender.pub, recipient.addr, 100, 1, 1000)
	require.NoError(t, err)
	p2, err := tx.NewPayment(sender.priv, sender.pub, recipient.addr, 100, 1, 2000)
	require.NoError(t, err)

	// identical fields except timestamp: distinct transactions
	assert.False(t, tx.Equal(p1, p2))
	assert.NotEqual(t, tx.Hash(p1), tx.Hash(p2))

	same, err := tx.ParsePayment(p1.Bytes())
	require.NoError(t, err)
	assert.True(t, tx.Equal(p1, same))
	assert.Equal(t, tx.Hash(p1), tx.Hash(same))

	// different variants never compare equal
	g := tx.NewGenesis(recipient.addr, 100, 1000)
	assert.False(t, tx.Equal(p1, g))
}

func TestTransactionJSON(t *testing.T) {
	p, sender, recipient := newPayment(t, 100, 1)

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal(out, &view))
	assert.Equal(t, float64(tx.TypePayment), view["type"])
	assert.Equal(t, p.ID().String(), view["id"])
	assert.Equal(t, sender.pub.String(), view["sender"])
	assert.Equal(t, recipient.addr.String(), view["recipient"])
	assert.Equal(t, float64(100), view["amount"])
	assert.Equal(t, float64(1), view["fee"])
}
