// Copyright (c) 2019 The V Systems developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contract

import (
	"encoding/binary"

	"github.com/dengjinhmm/v-systems/tx"
)

// DataType tags the payload of a data entry.
type DataType byte

const (
	// DataTypePublicKey a 32-byte public key.
	DataTypePublicKey DataType = 1
	// DataTypeAddress a 26-byte address.
	DataTypeAddress DataType = 2
	// DataTypeAmount an 8-byte big-endian amount.
	DataTypeAmount DataType = 3
	// DataTypeInt32 a 4-byte big-endian integer.
	DataTypeInt32 DataType = 4
	// DataTypeShortText a 2-byte big-endian length prefix plus that many bytes.
	DataTypeShortText DataType = 5
)

// maxShortTextLength bounds a short text payload.
const maxShortTextLength = 140

// fixedWidth returns the payload width of fixed-width types, or -1 for
// length-prefixed ones, or 0 for unknown tags.
func (t DataType) fixedWidth() int {
	switch t {
	case DataTypePublicKey:
		return 32
	case DataTypeAddress:
		return 26
	case DataTypeAmount:
		return 8
	case DataTypeInt32:
		return 4
	case DataTypeShortText:
		return -1
	default:
		return 0
	}
}

// DataEntry is a typed, tagged byte payload exchanged with contract
// opcodes. Data holds the payload without the type tag.
type DataEntry struct {
	Type DataType
	Data []byte
}

// Bytes is the tagged wire form: [type][payload], with short text
// additionally carrying its 2-byte length prefix.
func (e DataEntry) Bytes() []byte {
	b := make([]byte, 0, 1+2+len(e.Data))
	b = append(b, byte(e.Type))
	if e.Type == DataTypeShortText {
		var l [2]byte
		binary.BigEndian.PutUint16(l[:], uint16(len(e.Data)))
		b = append(b, l[:]...)
	}
	return append(b, e.Data...)
}

// ParseDataEntries decodes an ordered data stack from its concatenated
// tagged encoding. The whole buffer must be consumed.
func ParseDataEntries(data []byte) ([]DataEntry, error) {
	var entries []DataEntry
	for off := 0; off < len(data); {
		t := DataType(data[off])
		off++

		width := t.fixedWidth()
		switch {
		case width == 0:
			return nil, &tx.ValidationError{Kind: tx.InvalidDataEntry, Msg: "unknown data type"}
		case width == -1:
			if off+2 > len(data) {
				return nil, &tx.ValidationError{Kind: tx.InvalidDataEntry, Msg: "truncated length prefix"}
			}
			width = int(binary.BigEndian.Uint16(data[off : off+2]))
			off += 2
			if width > maxShortTextLength {
				return nil, &tx.ValidationError{Kind: tx.InvalidDataEntry, Msg: "short text too long"}
			}
		}
		if off+width > len(data) {
			return nil, &tx.ValidationError{Kind: tx.InvalidDataEntry, Msg: "truncated payload"}
		}
		entries = append(entries, DataEntry{Type: t, Data: append([]byte(nil), data[off:off+width]...)})
		off += width
	}
	return entries, nil
}
