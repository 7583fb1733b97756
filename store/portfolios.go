// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/vsys"
)

// Portfolio is everything one address holds: native balance, lease
// totals and per-asset balances.
type Portfolio struct {
	Balance  uint64
	LeaseIn  uint64
	LeaseOut uint64
	Assets   []AssetBalance
}

// AssetBalance is one issued-asset holding inside a portfolio.
type AssetBalance struct {
	ID      vsys.AssetID
	Balance uint64
}

// EffectiveBalance is the weighted balance the snapshot history tracks.
func (p *Portfolio) EffectiveBalance() uint64 {
	return p.Balance + p.LeaseIn - p.LeaseOut
}

func (p *Portfolio) assetBalance(id vsys.AssetID) uint64 {
	for _, a := range p.Assets {
		if a.ID == id {
			return a.Balance
		}
	}
	return 0
}

func (p *Portfolio) setAssetBalance(id vsys.AssetID, balance uint64) {
	for i, a := range p.Assets {
		if a.ID == id {
			p.Assets[i].Balance = balance
			return
		}
	}
	p.Assets = append(p.Assets, AssetBalance{ID: id, Balance: balance})
}

// Portfolio reads the committed portfolio of an address; unknown
// addresses hold an empty one.
func (s *Store) Portfolio(addr vsys.Address) (*Portfolio, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	p, _, err := s.portfolioLocked(addr)
	return p, err
}

// portfolioLocked also reports the stored size of the previous value,
// which the compaction accounting uses on overwrite.
func (s *Store) portfolioLocked(addr vsys.Address) (*Portfolio, int, error) {
	val, err := s.get(bucketPortfolios, addr[:])
	if err != nil {
		if s.isNotFound(err) {
			return &Portfolio{}, 0, nil
		}
		return nil, 0, errors.Wrap(err, "read portfolio")
	}
	var p Portfolio
	if err := rlp.DecodeBytes(val, &p); err != nil {
		return nil, 0, errors.Wrap(err, "decode portfolio")
	}
	return &p, len(val), nil
}

func (s *Store) putPortfolioLocked(addr vsys.Address, p *Portfolio) error {
	val, err := rlp.EncodeToBytes(p)
	if err != nil {
		return errors.Wrap(err, "encode portfolio")
	}
	return s.put(bucketPortfolios, addr[:], val)
}

// Balance implements state.Reader; nil asset means the native asset.
func (s *Store) Balance(addr vsys.Address, asset *vsys.AssetID) (int64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.balanceLocked(addr, asset)
}

func (s *Store) balanceLocked(addr vsys.Address, asset *vsys.AssetID) (int64, error) {
	p, _, err := s.portfolioLocked(addr)
	if err != nil {
		return 0, err
	}
	if asset == nil {
		return int64(p.Balance), nil
	}
	return int64(p.assetBalance(*asset)), nil
}

// applyBalanceLocked moves one balance by delta and writes the
// portfolio back. The diff engine guarantees deltas never drive a
// balance negative; if one would, the store treats it as corruption.
func (s *Store) applyBalanceLocked(addr vsys.Address, asset *vsys.AssetID, delta int64) (*Portfolio, error) {
	p, staleLen, err := s.portfolioLocked(addr)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		next := int64(p.Balance) + delta
		if next < 0 {
			return nil, errors.Errorf("balance of %s would become negative (%d%+d)", addr, p.Balance, delta)
		}
		p.Balance = uint64(next)
	} else {
		next := int64(p.assetBalance(*asset)) + delta
		if next < 0 {
			return nil, errors.Errorf("asset balance of %s would become negative (%+d)", addr, delta)
		}
		p.setAssetBalance(*asset, uint64(next))
	}
	s.noteStale(staleLen)
	if err := s.putPortfolioLocked(addr, p); err != nil {
		return nil, err
	}
	return p, nil
}
