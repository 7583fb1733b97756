// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"encoding/binary"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/dengjinhmm/v-systems/kv"
	"github.com/dengjinhmm/v-systems/log"
	"github.com/dengjinhmm/v-systems/state"
	"github.com/dengjinhmm/v-systems/vsys"
)

var logger = log.WithContext("pkg", "store")

// ErrVersionMismatch is returned when a store stamped with a different
// schema version is opened. There is no migration; the open fails.
var ErrVersionMismatch = errors.New("state version mismatch")

// Engine is the durable ordered kv store the state lives in, with the
// maintenance hooks the commit path uses.
type Engine interface {
	kv.GetPutCloser
	Compact(r kv.Range) error
	ApproximateSize(r kv.Range) (int64, error)
}

// Options tunes a state store.
type Options struct {
	// Chain the store belongs to; addresses are resolved on it.
	Chain vsys.ChainID
	// TxCacheSize bounds the transaction read cache.
	TxCacheSize int
	// MinReclaimFillRate is the share of the store's estimated on-disk
	// size that must be reclaimable before a post-commit compaction runs.
	MinReclaimFillRate float64
	// CompactionMemThreshold is how many bytes must have been written
	// since the last compaction before one is considered at all.
	CompactionMemThreshold int64
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Chain == 0 {
		out.Chain = vsys.Mainnet
	}
	if out.TxCacheSize <= 0 {
		out.TxCacheSize = 1024
	}
	if out.MinReclaimFillRate <= 0 {
		out.MinReclaimFillRate = 0.25
	}
	if out.CompactionMemThreshold <= 0 {
		out.CompactionMemThreshold = 4 * 1024 * 1024
	}
	return out
}

// Store is the durable, versioned collection of named ordered maps
// holding current ledger state. All mutation goes through staged writes
// flushed by Commit in one atomic batch; reads see committed state.
//
// One reader/writer lock guards the store and its history maps: diff
// computation holds it for reading, applying a diff holds it
// exclusively.
type Store struct {
	engine Engine
	lock   *sync.RWMutex
	chain  vsys.ChainID
	opts   Options

	batch   kv.Batch
	txCache *lru.Cache

	// staged values the engine only sees after Commit; later writes in
	// the same batch must read them, not the committed rows they shadow
	stagedSlots       map[vsys.Address]uint32
	stagedNextSlot    uint32
	hasStagedNextSlot bool
	stagedTxCounts    map[vsys.Address]uint32

	writtenBytes int64
	staleBytes   int64
}

var _ state.Reader = (*Store)(nil)

// Open opens (or creates) a state store over the given engine. The
// shared lock may be nil, in which case the store owns a private one.
// A fresh store is stamped with the current schema version and
// committed; a stamped store with a different version fails to open.
func Open(engine Engine, lock *sync.RWMutex, opts Options) (*Store, error) {
	if lock == nil {
		lock = new(sync.RWMutex)
	}
	o := opts.withDefaults()
	txCache, err := lru.New(o.TxCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}
	s := &Store{
		engine:  engine,
		lock:    lock,
		chain:   o.Chain,
		opts:    o,
		batch:   engine.NewBatch(),
		txCache: txCache,
	}
	s.dropStaged()

	stored, err := s.storedVersion()
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}
	switch stored {
	case 0:
		if err := s.stampVersion(); err != nil {
			return nil, errors.Wrap(err, "stamp state version")
		}
		logger.Info("created state store", "version", vsys.StateVersion)
	case vsys.StateVersion:
		logger.Info("opened state store", "version", stored)
	default:
		return nil, errors.Wrapf(ErrVersionMismatch, "stored %d, expected %d", stored, vsys.StateVersion)
	}
	return s, nil
}

// Close flushes pending writes and releases the engine.
func (s *Store) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.commitLocked(); err != nil {
		return err
	}
	return s.engine.Close()
}

// Commit makes all staged writes durable in one atomic batch, then runs
// maintenance compaction when the reclaimable-space fill rate and the
// memory threshold both say so. Compaction is periodic, never per-write.
func (s *Store) Commit() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.commitLocked()
}

func (s *Store) commitLocked() error {
	if s.batch.Len() > 0 {
		started := time.Now()
		if err := s.batch.Write(); err != nil {
			return errors.Wrap(err, "commit state store")
		}
		s.batch = s.engine.NewBatch()
		s.dropStaged()
		metricCommitCount().Add(1)
		metricCommitDuration().Observe(time.Since(started).Milliseconds())
	}
	return s.maybeCompactLocked()
}

// dropStaged resets the staged read-through values; the committed rows
// are authoritative again.
func (s *Store) dropStaged() {
	s.stagedSlots = make(map[vsys.Address]uint32)
	s.stagedTxCounts = make(map[vsys.Address]uint32)
	s.hasStagedNextSlot = false
}

func (s *Store) maybeCompactLocked() error {
	if s.writtenBytes < s.opts.CompactionMemThreshold {
		return nil
	}
	size, err := s.engine.ApproximateSize(kv.Range{})
	if err != nil {
		return errors.Wrap(err, "estimate store size")
	}
	if size > 0 && float64(s.staleBytes) < s.opts.MinReclaimFillRate*float64(size) {
		return nil
	}
	started := time.Now()
	if err := s.engine.Compact(kv.Range{}); err != nil {
		return errors.Wrap(err, "compact state store")
	}
	logger.Debug("compacted state store",
		"size", size, "stale", s.staleBytes,
		"elapsed", time.Since(started))
	s.writtenBytes = 0
	s.staleBytes = 0
	metricCompactionCount().Add(1)
	return nil
}

// Reset wipes every map and re-stamps the schema version. This is the
// only path that ever deletes a map.
func (s *Store) Reset() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	// pending staged writes are discarded, not flushed into the wipe
	s.batch = s.engine.NewBatch()
	s.dropStaged()

	it := s.engine.NewIterator(kv.Range{})
	defer it.Release()
	for it.Next() {
		if err := s.batch.Delete(append([]byte(nil), it.Key()...)); err != nil {
			return errors.Wrap(err, "reset state store")
		}
	}
	if err := it.Error(); err != nil {
		return errors.Wrap(err, "reset state store")
	}
	s.txCache.Purge()
	if err := s.putVariable(keyStateVersion, vsys.StateVersion); err != nil {
		return err
	}
	return s.commitLocked()
}

// Height is the current chain height.
func (s *Store) Height() (uint32, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.heightLocked()
}

func (s *Store) heightLocked() (uint32, error) {
	return s.variable(keyHeight)
}

// SetHeight stages a new chain height.
func (s *Store) SetHeight(h uint32) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.putVariable(keyHeight, h)
}

func (s *Store) storedVersion() (uint32, error) {
	return s.variable(keyStateVersion)
}

func (s *Store) stampVersion() error {
	if err := s.putVariable(keyStateVersion, vsys.StateVersion); err != nil {
		return err
	}
	return s.commitLocked()
}

// variable reads a 4-byte big-endian variable, zero when absent.
func (s *Store) variable(key []byte) (uint32, error) {
	getter := bucketVariables.ProxyGetter(s.engine)
	val, err := getter.Get(key)
	if err != nil {
		if getter.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "read variable")
	}
	if len(val) != 4 {
		return 0, errors.Errorf("variable %q of unexpected length %d", key, len(val))
	}
	return binary.BigEndian.Uint32(val), nil
}

func (s *Store) putVariable(key []byte, v uint32) error {
	var val [4]byte
	binary.BigEndian.PutUint32(val[:], v)
	return s.put(bucketVariables, key, val[:])
}

// get reads a committed value inside a bucket.
func (s *Store) get(b kv.Bucket, key []byte) ([]byte, error) {
	return b.ProxyGetter(s.engine).Get(key)
}

func (s *Store) has(b kv.Bucket, key []byte) (bool, error) {
	return b.ProxyGetter(s.engine).Has(key)
}

func (s *Store) isNotFound(err error) bool {
	return s.engine.IsNotFound(errors.Cause(err))
}

// put stages a write inside a bucket.
func (s *Store) put(b kv.Bucket, key, val []byte) error {
	s.writtenBytes += int64(len(b) + len(key) + len(val))
	return b.ProxyPutter(s.batch).Put(key, val)
}

// delete stages a delete inside a bucket.
func (s *Store) delete(b kv.Bucket, key []byte) error {
	return b.ProxyPutter(s.batch).Delete(key)
}

// noteStale records bytes made reclaimable by an overwrite or delete.
func (s *Store) noteStale(n int) {
	s.staleBytes += int64(n)
}
