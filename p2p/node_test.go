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

package p2p

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchQueryRespondsOnMatchingArchAndGame(t *testing.T) {
	t.Parallel()

	caches := []LocalCache{
		{GameID: "steam:1086940", GameName: "Baldur's Gate 3", Kind: "dxvk", Size: 123456},
	}

	offer, ok := matchQuery(caches, "Ada Lovelace", Query{GameID: "steam:1086940", Arch: "Ada Lovelace"})
	assert.True(t, ok)
	assert.Equal(t, "steam:1086940", offer.GameID)
	assert.Equal(t, "Baldur's Gate 3", offer.GameName)
	assert.Equal(t, uint64(123456), offer.Size)
	assert.Equal(t, TransferPort, offer.Port)
}

func TestMatchQueryRejectsMismatchedArch(t *testing.T) {
	t.Parallel()

	caches := []LocalCache{
		{GameID: "steam:1086940", GameName: "Baldur's Gate 3", Kind: "dxvk", Size: 123456},
	}

	_, ok := matchQuery(caches, "Ada Lovelace", Query{GameID: "steam:1086940", Arch: "Ampere"})
	assert.False(t, ok)
}

func TestMatchQueryRejectsUnknownGame(t *testing.T) {
	t.Parallel()

	caches := []LocalCache{
		{GameID: "steam:1086940", GameName: "Baldur's Gate 3", Kind: "dxvk", Size: 123456},
	}

	_, ok := matchQuery(caches, "Ada Lovelace", Query{GameID: "steam:570", Arch: "Ada Lovelace"})
	assert.False(t, ok)
}

func TestMatchQueryNoCachesNeverMatches(t *testing.T) {
	t.Parallel()

	_, ok := matchQuery(nil, "Ada Lovelace", Query{GameID: "steam:1086940", Arch: "Ada Lovelace"})
	assert.False(t, ok)
}
