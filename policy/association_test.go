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

package policy

import (
	"testing"

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S6 from the test plan: a Steam shadercache entry for appid 570 binds to
// the catalog's "Dota 2" via the appid-path-segment rule.
func TestAssociateSteamAppIDSegment(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{
		Path: "/home/u/.steam/steam/steamapps/shadercache/570/fozpipelinesv6",
	}
	games := []catalog.Game{
		{Source: catalog.SourceSteam, ID: "steam:570", Name: "Dota 2"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	assert.Equal(t, "steam:570", entry.GameID)
	assert.Equal(t, "Dota 2", entry.GameName)
}

func TestAssociateByExactNameBeforeSubstring(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{GameName: "elden ring"}
	games := []catalog.Game{
		{ID: "lutris:elden-ring-goty", Name: "Elden Ring GOTY"},
		{ID: "steam:1245620", Name: "Elden Ring"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	assert.Equal(t, "steam:1245620", entry.GameID)
}

func TestAssociateBySubstringContainment(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{GameName: "elden"}
	games := []catalog.Game{
		{ID: "steam:1245620", Name: "Elden Ring"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	assert.Equal(t, "steam:1245620", entry.GameID)
}

func TestAssociateByHintPrefersLongestMatch(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{Path: "/g/install/hollow-knight/dlc/cache.bin"}
	games := []catalog.Game{
		{ID: "manual:g", Name: "Generic", InstallPath: "/g"},
		{ID: "lutris:hollow-knight", Name: "Hollow Knight", InstallPath: "/g/install/hollow-knight"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	assert.Equal(t, "lutris:hollow-knight", entry.GameID)
}

func TestAssociateHintRequiresSeparatorBoundary(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{Path: "/g/install/hollow-knight-2/cache.bin"}
	games := []catalog.Game{
		{ID: "lutris:hollow-knight", Name: "Hollow Knight", InstallPath: "/g/install/hollow-knight"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	assert.Empty(t, entry.GameID)
}

func TestAssociateNoMatchLeavesEntryUnbound(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{GameName: "some-unrecognized-binary", Path: "/tmp/whatever"}
	games := []catalog.Game{
		{ID: "steam:570", Name: "Dota 2"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	assert.Empty(t, entry.GameID)
	assert.Equal(t, "some-unrecognized-binary", entry.GameName)
}

// Invariant 5: association is idempotent.
func TestAssociateIsIdempotent(t *testing.T) {
	t.Parallel()

	entry := &nvshader.CacheEntry{
		Path: "/home/u/.steam/steam/steamapps/shadercache/570/fozpipelinesv6",
	}
	games := []catalog.Game{
		{Source: catalog.SourceSteam, ID: "steam:570", Name: "Dota 2"},
	}

	Associate([]*nvshader.CacheEntry{entry}, games)
	first := *entry

	Associate([]*nvshader.CacheEntry{entry}, games)
	require.Equal(t, first, *entry)
}
