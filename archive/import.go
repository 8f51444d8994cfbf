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

package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/paths"
)

// readManifest loads and unmarshals manifest.json from a bundle
// directory, rejecting any version other than 1.
func readManifest(dir string) (Manifest, error) {
	b, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return Manifest{}, fmt.Errorf("archive: read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", nvshader.ErrInvalidManifest, err)
	}
	if m.Version != manifestVersion {
		return Manifest{}, fmt.Errorf("%w: version %d", nvshader.ErrUnsupportedManifest, m.Version)
	}

	return m, nil
}

// Import restores every entry from the bundle at dir. When override is
// non-empty, each entry is rebased to "<override>/<basename>" instead of
// its original_path. Returns the destination paths it restored to.
func Import(dir, override string) ([]string, error) {
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	var restored []string
	var firstErr error

	for _, e := range m.Entries {
		dst := e.OriginalPath
		if override != "" {
			dst = filepath.Join(override, filepath.Base(e.OriginalPath))
		}

		src := filepath.Join(dir, e.StoredPath)

		if ok, uerr := paths.IsUnderDir(src, dir); uerr != nil || !ok {
			if firstErr == nil {
				firstErr = fmt.Errorf("archive: stored_path %q escapes bundle directory", e.StoredPath)
			}
			continue
		}

		var cerr error
		if e.IsDirectory {
			cerr = copyDir(src, dst)
		} else {
			if mkErr := os.MkdirAll(filepath.Dir(dst), 0o755); mkErr != nil {
				cerr = mkErr
			} else {
				cerr = copyFile(src, dst)
			}
		}

		if cerr != nil {
			if firstErr == nil {
				firstErr = cerr
			}
			continue
		}

		restored = append(restored, dst)
	}

	return restored, firstErr
}
