// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"
)

// Sign and Verify are pure and deterministic with respect to ledger
// state. Callers never cache verification results; every validation
// re-verifies.

// GenerateKey creates a fresh keypair.
func GenerateKey() (pub, priv []byte, err error) {
	pub, priv, err = ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate keypair")
	}
	return pub, priv, nil
}

// Sign signs msg with the given private key.
func Sign(priv, msg []byte) ([]byte, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(priv))
	}
	return ed25519.Sign(priv, msg), nil
}

// Verify reports whether sig is a valid signature of msg by pub.
func Verify(sig, msg, pub []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
