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

func TestDetectHeroicAcceptsArrayShape(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	dir := filepath.Join(home, ".config", "legendary")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	const doc = `[
		{"app_name": "Corvo", "title": "Dishonored", "install_path": "/games/dishonored", "platform": "Windows"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "installed.json"), []byte(doc), 0o644))

	games, warnings, err := DetectHeroic(home)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "heroic-legendary:Corvo", g.ID)
	assert.Equal(t, "Dishonored", g.Name)
	assert.Contains(t, g.Tags, "Windows")
}

func TestDetectHeroicAcceptsObjectOfObjectsShape(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	dir := filepath.Join(home, ".config", "heroic", "gog_store")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	const doc = `{
		"1456789": {"appName": "1456789", "title": "Disco Elysium", "installPath": "/games/disco-elysium"}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "installed.json"), []byte(doc), 0o644))

	games, _, err := DetectHeroic(home)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "heroic-gog:1456789", games[0].ID)
	assert.Equal(t, "Disco Elysium", games[0].Name)
}

func TestDetectHeroicMissingFilesIsEmpty(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	games, warnings, err := DetectHeroic(home)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, games)
}
