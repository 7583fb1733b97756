// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import "encoding/binary"

// Fixed-offset field readers/writers. All multi-byte integers on the
// wire are big-endian; amounts and timestamps occupy 8 bytes.

func putInt64(dst []byte, v int64) {
	binary.BigEndian.PutUint64(dst, uint64(v))
}

func appendInt64(dst []byte, v int64) []byte {
	var b [8]byte
	putInt64(b[:], v)
	return append(dst, b[:]...)
}

// cursor advances through a fixed-layout buffer. Length checks happen
// once, up front, against the variant's fixed minimum length; these two
// variants have no variable-length fields.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) next(n int) []byte {
	b := c.data[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) nextInt64() int64 {
	return int64(binary.BigEndian.Uint64(c.next(8)))
}
