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
	"os"
	"path/filepath"
	"testing"

	"github.com/mfinelli/nvshader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(version, entrySize uint32) DXVKHeader {
	return DXVKHeader{Magic: DXVKMagic, Version: version, EntrySize: entrySize}
}

func TestParseDXVKHeaderValidFile(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 64)
	h, count, gotPayload, err := ParseDXVKHeader(append(header(8, 64).Bytes(), payload...))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, uint32(64), h.EntrySize)
	assert.Len(t, gotPayload, 64)
}

func TestParseDXVKHeaderRejectsShortFile(t *testing.T) {
	t.Parallel()

	_, _, _, err := ParseDXVKHeader([]byte{0x44, 0x58, 0x56})
	require.Error(t, err)
	assert.ErrorIs(t, err, nvshader.ErrInvalidCacheFile)
}

func TestParseDXVKHeaderRejectsBadMagic(t *testing.T) {
	t.Parallel()

	data := header(1, 4).Bytes()
	data[0] = 'X'
	_, _, _, err := ParseDXVKHeader(data)
	assert.ErrorIs(t, err, nvshader.ErrInvalidCacheFile)
}

func TestParseDXVKHeaderRejectsZeroEntrySize(t *testing.T) {
	t.Parallel()

	_, _, _, err := ParseDXVKHeader(header(1, 0).Bytes())
	assert.ErrorIs(t, err, nvshader.ErrInvalidCacheFile)
}

// Boundary: a file of exactly 12 bytes (header only, no payload) is valid
// and yields entry_count = 0.
func TestParseDXVKHeaderHeaderOnlyIsValid(t *testing.T) {
	t.Parallel()

	_, count, payload, err := ParseDXVKHeader(header(1, 40).Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.Empty(t, payload)
}

// Boundary: a 13-byte file with entry_size=1 has a 1-byte payload, which is
// an exact multiple of entry_size=1, so it is valid with entry_count=1 —
// this follows directly from invariant entry_size*entry_count+12=size_bytes
// (1*1+12=13).
func TestParseDXVKHeaderOneByteEntrySizeOneIsValid(t *testing.T) {
	t.Parallel()

	data := append(header(1, 1).Bytes(), 0xAB)
	_, count, _, err := ParseDXVKHeader(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

// Boundary: a 14-byte file with entry_size=3 has a 2-byte payload, which
// does not divide evenly by 3, so it is invalid.
func TestParseDXVKHeaderUnevenPayloadIsInvalid(t *testing.T) {
	t.Parallel()

	data := append(header(1, 3).Bytes(), 0x01, 0x02)
	_, _, _, err := ParseDXVKHeader(data)
	assert.ErrorIs(t, err, nvshader.ErrInvalidCacheFile)
}

// S1 from the test plan: elden.dxvk-cache.
func TestParseDXVKHeaderEldenScenario(t *testing.T) {
	t.Parallel()

	data := append(header(8, 64).Bytes(), make([]byte, 64)...)
	h, count, _, err := ParseDXVKHeader(data)
	require.NoError(t, err)
	assert.Equal(t, DXVKMagic, h.Magic)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, 76, len(data))
}

func TestWriteDXVKFileRoundTrips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "elden.dxvk-cache")
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	h := header(3, 4)

	require.NoError(t, WriteDXVKFile(p, h, payload))

	original, err := os.ReadFile(p)
	require.NoError(t, err)

	gotHeader, count, gotPayload, err := ReadDXVKFile(p)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	require.NoError(t, WriteDXVKFile(p, gotHeader, gotPayload))
	roundTripped, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, original, roundTripped)
}
