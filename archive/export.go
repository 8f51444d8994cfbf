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
	"io"
	"os"
	"path/filepath"

	"github.com/mfinelli/nvshader"
)

// Export writes a portable bundle to dir: manifest.json plus a cache/
// subtree holding one copy per entry, named "<index>_<basename>" where
// index is the entry's position in the caller-supplied slice. A failure
// copying one entry does not abort the bundle; that entry is simply
// omitted from the manifest, and the error is returned joined with any
// others once every entry has been attempted.
func Export(dir string, entries []*nvshader.CacheEntry, clock nvshader.Clock, game string) error {
	cacheDir := filepath.Join(dir, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("archive: create cache dir: %w", err)
	}

	manifest := Manifest{
		Version:   manifestVersion,
		CreatedAt: clock.Now().Unix(),
		Game:      game,
	}

	var firstErr error
	for i, e := range entries {
		storedName := fmt.Sprintf("%d_%s", i, filepath.Base(e.Path))
		storedPath := filepath.Join(cacheDir, storedName)

		var err error
		if e.IsDirectory {
			err = copyDir(e.Path, storedPath)
		} else {
			err = copyFile(e.Path, storedPath)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		manifest.Entries = append(manifest.Entries, ManifestEntry{
			CacheType:    e.Kind.Short(),
			OriginalPath: e.Path,
			StoredPath:   filepath.Join("cache", storedName),
			IsDirectory:  e.IsDirectory,
			SizeBytes:    e.SizeBytes,
		})
	}

	if err := writeManifest(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		return err
	}

	return firstErr
}

func writeManifest(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("archive: encode manifest: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("archive: write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("archive: finalize manifest: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("archive: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("archive: create %s: %w", dst, err)
	}
	defer out.Close()

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		return fmt.Errorf("archive: copy %s: %w", src, err)
	}
	return nil
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
