// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dengjinhmm/v-systems/cry"
)

func TestSignVerify(t *testing.T) {
	pub, priv, err := cry.GenerateKey()
	require.NoError(t, err)

	msg := []byte("payment payload")
	sig, err := cry.Sign(priv, msg)
	require.NoError(t, err)

	assert.True(t, cry.Verify(sig, msg, pub))

	// determinism
	sig2, err := cry.Sign(priv, msg)
	require.NoError(t, err)
	assert.Equal(t, sig, sig2)

	// tampered message fails
	assert.False(t, cry.Verify(sig, append([]byte(nil), msg[1:]...), pub))

	// tampered signature fails
	bad := append([]byte(nil), sig...)
	bad[0] ^= 0x01
	assert.False(t, cry.Verify(bad, msg, pub))

	// wrong key fails
	otherPub, _, err := cry.GenerateKey()
	require.NoError(t, err)
	assert.False(t, cry.Verify(sig, msg, otherPub))
}

func TestSignBadKey(t *testing.T) {
	_, err := cry.Sign([]byte("short"), []byte("msg"))
	assert.Error(t, err)

	assert.False(t, cry.Verify(nil, []byte("msg"), nil))
}
