/*
 * nvshader: GPU shader cache manager
 * Copyright © 2026 Mario Finelli
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package scanner

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/mfinelli/nvshader"
)

// DXVKMagic is the fixed 4-byte magic shared by both dxvk and
// vkd3d-proton state cache files.
var DXVKMagic = [4]byte{'D', 'X', 'V', 'K'}

// dxvkHeaderSize is the fixed, explicit-layout header: 4 bytes magic, then
// two little-endian uint32 fields. No native struct padding is relied on.
const dxvkHeaderSize = 12

// DXVKHeader is the fixed-layout header shared by dxvk and vkd3d-proton
// state cache files.
type DXVKHeader struct {
	Magic     [4]byte
	Version   uint32
	EntrySize uint32
}

// Bytes serializes the header in its exact 12-byte little-endian wire form.
func (h DXVKHeader) Bytes() []byte {
	buf := make([]byte, dxvkHeaderSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.EntrySize)
	return buf
}

// ParseDXVKHeader validates and decodes the 12-byte header plus payload
// divisibility rule from raw file bytes: the file must be at least
// dxvkHeaderSize bytes, its magic must equal DXVKMagic, entry_size must be
// nonzero, and (len(data) - dxvkHeaderSize) must divide evenly by
// entry_size. On success it also returns the parsed entry count and the
// payload slice (a view into data, not a copy).
func ParseDXVKHeader(data []byte) (DXVKHeader, uint64, []byte, error) {
	if len(data) < dxvkHeaderSize {
		return DXVKHeader{}, 0, nil, fmt.Errorf("%w: file shorter than header (%d bytes)",
			nvshader.ErrInvalidCacheFile, len(data))
	}

	var h DXVKHeader
	copy(h.Magic[:], data[0:4])
	if h.Magic != DXVKMagic {
		return DXVKHeader{}, 0, nil, fmt.Errorf("%w: bad magic %q", nvshader.ErrInvalidCacheFile, h.Magic[:])
	}

	h.Version = binary.LittleEndian.Uint32(data[4:8])
	h.EntrySize = binary.LittleEndian.Uint32(data[8:12])
	if h.EntrySize == 0 {
		return DXVKHeader{}, 0, nil, fmt.Errorf("%w: entry_size is zero", nvshader.ErrInvalidCacheFile)
	}

	payload := data[dxvkHeaderSize:]
	if len(payload)%int(h.EntrySize) != 0 {
		return DXVKHeader{}, 0, nil, fmt.Errorf(
			"%w: payload length %d is not a multiple of entry_size %d",
			nvshader.ErrInvalidCacheFile, len(payload), h.EntrySize)
	}

	count := uint64(len(payload)) / uint64(h.EntrySize)
	return h, count, payload, nil
}

// ReadDXVKFile reads and validates a dxvk/vkd3d-proton state cache file
// from disk.
func ReadDXVKFile(path string) (DXVKHeader, uint64, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DXVKHeader{}, 0, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseDXVKHeader(data)
}

// WriteDXVKFile serializes header and payload back to path in the exact
// on-disk layout: header verbatim little-endian, then payload. Round-
// tripping ReadDXVKFile -> WriteDXVKFile must reproduce identical bytes.
func WriteDXVKFile(path string, h DXVKHeader, payload []byte) error {
	data := make([]byte, 0, dxvkHeaderSize+len(payload))
	data = append(data, h.Bytes()...)
	data = append(data, payload...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
