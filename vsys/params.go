// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vsys

// ChainID identifies the network a transaction or address belongs to.
// It is baked into every address, so addresses cannot cross networks.
type ChainID byte

const (
	// Mainnet chain id byte.
	Mainnet ChainID = 'M'
	// Testnet chain id byte.
	Testnet ChainID = 'T'
)

// Known returns whether the chain id denotes a known network.
func (c ChainID) Known() bool {
	return c == Mainnet || c == Testnet
}

const (
	// StateVersion is the schema version stamped into a freshly created
	// state store. A store carrying a different version cannot be opened.
	StateVersion uint32 = 1

	// MaxTxValidity is the window, in milliseconds, a transaction stays
	// valid after its timestamp.
	MaxTxValidity int64 = 24 * 60 * 60 * 1000
)
