// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dengjinhmm/v-systems/tx"
	"github.com/dengjinhmm/v-systems/vsys"
)

func TestGenesisSignatureDeterminism(t *testing.T) {
	recipient := newAccount(t).addr

	sig1 := tx.GenerateSignature(recipient, 1_000_000, 1547722056000)
	sig2 := tx.GenerateSignature(recipient, 1_000_000, 1547722056000)
	assert.Equal(t, sig1, sig2)

	// the signature is a double hash: both halves agree
	assert.Equal(t, sig1[:32], sig1[32:])

	// any input change moves it
	assert.NotEqual(t, sig1, tx.GenerateSignature(recipient, 1_000_001, 1547722056000))
	assert.NotEqual(t, sig1, tx.GenerateSignature(recipient, 1_000_000, 1547722056001))
}

func TestGenesisCreate(t *testing.T) {
	recipient := newAccount(t).addr
	g := tx.NewGenesis(recipient, 1_000_000, 1547722056000)

	assert.True(t, g.SignatureValid())
	assert.NoError(t, g.Validate())
	assert.Equal(t, g.Signature(), g.ID())
	assert.Equal(t, int64(0), g.Fee())
}

func TestGenesisRoundTrip(t *testing.T) {
	recipient := newAccount(t).addr
	g := tx.NewGenesis(recipient, 42, 1547722056000)

	parsed, err := tx.ParseGenesis(g.Bytes())
	require.NoError(t, err)
	assert.Equal(t, g.Bytes(), parsed.Bytes())
	assert.True(t, tx.Equal(g, parsed))
	assert.True(t, parsed.SignatureValid())
	assert.Equal(t, g.Recipient(), parsed.Recipient())
	assert.Equal(t, g.Amount(), parsed.Amount())
}

func TestGenesisValidate(t *testing.T) {
	recipient := newAccount(t).addr

	// zero amount
	g := tx.NewGenesis(recipient, 0, 1)
	assert.True(t, tx.IsValidation(g.Validate(), tx.NegativeAmount))

	// malformed recipient wins over amount
	g = tx.NewGenesis(vsys.Address{}, 0, 1)
	assert.True(t, tx.IsValidation(g.Validate(), tx.InvalidAddress))

	// corrupted signature
	raw := tx.NewGenesis(recipient, 42, 1).Bytes()
	raw[5] ^= 0x01
	parsed, err := tx.ParseGenesis(raw)
	require.NoError(t, err)
	assert.False(t, parsed.SignatureValid())
	assert.True(t, tx.IsValidation(parsed.Validate(), tx.InvalidSignature))
}

func TestGenesisDecodeErrors(t *testing.T) {
	recipient := newAccount(t).addr
	raw := tx.NewGenesis(recipient, 42, 1).Bytes()

	_, err := tx.ParseGenesis(raw[:20])
	assert.True(t, tx.IsDecode(err))

	mutated := append([]byte(nil), raw...)
	mutated[0] = byte(tx.TypePayment)
	_, err = tx.ParseGenesis(mutated)
	assert.True(t, tx.IsDecode(err))
}

func TestGenesisBalanceChanges(t *testing.T) {
	recipient := newAccount(t).addr
	g := tx.NewGenesis(recipient, 42, 1)

	changes := g.BalanceChanges()
	require.Len(t, changes, 1)
	assert.True(t, changes[0].Account.Equal(vsys.AccountFromAddress(recipient)))
	assert.Equal(t, int64(42), changes[0].Delta)
	assert.Nil(t, changes[0].Asset)
}
