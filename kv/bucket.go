// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket names a logical ordered collection inside one kv store, by
// prefixing every key with the bucket name.
type Bucket string

// ProxyGetter returns a getter operating inside the bucket.
func (b Bucket) ProxyGetter(src Getter) Getter {
	return &bucketGetter{string(b), src}
}

// ProxyPutter returns a putter operating inside the bucket.
func (b Bucket) ProxyPutter(src Putter) Putter {
	return &bucketPutter{string(b), src}
}

// NewRange builds the key range covering the whole bucket.
func (b Bucket) NewRange() Range {
	r := util.BytesPrefix([]byte(b))
	return Range{From: r.Start, To: r.Limit}
}

type bucketGetter struct {
	prefix string
	src    Getter
}

func (g *bucketGetter) Get(key []byte) ([]byte, error) {
	return g.src.Get(append([]byte(g.prefix), key...))
}

func (g *bucketGetter) Has(key []byte) (bool, error) {
	return g.src.Has(append([]byte(g.prefix), key...))
}

func (g *bucketGetter) IsNotFound(err error) bool {
	return g.src.IsNotFound(err)
}

func (g *bucketGetter) NewIterator(r Range) Iterator {
	from := append([]byte(g.prefix), r.From...)
	var to []byte
	if len(r.To) == 0 {
		to = util.BytesPrefix([]byte(g.prefix)).Limit
	} else {
		to = append([]byte(g.prefix), r.To...)
	}
	return &bucketIterator{len(g.prefix), g.src.NewIterator(Range{From: from, To: to})}
}

type bucketPutter struct {
	prefix string
	src    Putter
}

func (p *bucketPutter) Put(key, value []byte) error {
	return p.src.Put(append([]byte(p.prefix), key...), value)
}

func (p *bucketPutter) Delete(key []byte) error {
	return p.src.Delete(append([]byte(p.prefix), key...))
}

func (p *bucketPutter) NewBatch() Batch {
	return &bucketBatch{p.prefix, p.src.NewBatch()}
}

type bucketBatch struct {
	prefix string
	batch  Batch
}

func (b *bucketBatch) Put(key, value []byte) error {
	return b.batch.Put(append([]byte(b.prefix), key...), value)
}

func (b *bucketBatch) Delete(key []byte) error {
	return b.batch.Delete(append([]byte(b.prefix), key...))
}

func (b *bucketBatch) NewBatch() Batch {
	return &bucketBatch{b.prefix, b.batch.NewBatch()}
}

func (b *bucketBatch) Len() int { return b.batch.Len() }

func (b *bucketBatch) Write() error { return b.batch.Write() }

// bucketIterator strips the bucket prefix off iterated keys.
type bucketIterator struct {
	prefixLen int
	Iterator
}

func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}
