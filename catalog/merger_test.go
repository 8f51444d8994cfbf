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

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOrdersBySourceAndDoesNotDeduplicate(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	writeSteamRoot(t, filepath.Join(home, ".local", "share", "Steam"))

	lutrisDir := filepath.Join(home, ".local", "share", "lutris", "games")
	require.NoError(t, os.MkdirAll(lutrisDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lutrisDir, "hk.yml"),
		[]byte("name: Hollow Knight\nslug: hollow-knight\ndirectory: /g/hk\n"), 0o644))

	require.NoError(t, SaveManualEntries(home, []ManualEntry{
		{Name: "Manual Thing", InstallPath: "/opt/manual-thing"},
	}))

	games, _ := Merge(home)
	require.Len(t, games, 3)
	assert.Equal(t, SourceSteam, games[0].Source)
	assert.Equal(t, SourceLutris, games[1].Source)
	assert.Equal(t, SourceManual, games[2].Source)
}
