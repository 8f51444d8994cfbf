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
	"github.com/mfinelli/nvshader/gpuinfo"
	"github.com/mfinelli/nvshader/paths"
)

// ExportPackage writes a .nvcache package to dir: the same bundle shape
// as Export, with a gpu sub-object describing the producing host and a
// short-name type on every entry.
func ExportPackage(dir string, entries []*nvshader.CacheEntry, clock nvshader.Clock, game string, gpu gpuinfo.Profile) error {
	cacheDir := filepath.Join(dir, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("archive: create cache dir: %w", err)
	}

	manifest := PackageManifest{
		Version:   manifestVersion,
		CreatedAt: clock.Now().Unix(),
		Game:      game,
		Gpu: GpuInfo{
			VendorID:      gpu.VendorID,
			DeviceID:      gpu.DeviceID,
			DriverVersion: gpu.DriverVersion,
			Architecture:  gpu.Architecture,
		},
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

		manifest.Entries = append(manifest.Entries, PackageEntry{
			ManifestEntry: ManifestEntry{
				CacheType:    e.Kind.Short(),
				OriginalPath: e.Path,
				StoredPath:   filepath.Join("cache", storedName),
				IsDirectory:  e.IsDirectory,
				SizeBytes:    e.SizeBytes,
			},
			Type: e.Kind.Short(),
		})
	}

	if err := writeManifest(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		return err
	}

	return firstErr
}

// readPackageManifest loads and validates a .nvcache manifest.json.
func readPackageManifest(dir string) (PackageManifest, error) {
	b, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return PackageManifest{}, fmt.Errorf("archive: read package manifest: %w", err)
	}

	var m PackageManifest
	if err := json.Unmarshal(b, &m); err != nil {
		return PackageManifest{}, fmt.Errorf("%w: %v", nvshader.ErrInvalidManifest, err)
	}
	if m.Version != manifestVersion {
		return PackageManifest{}, fmt.Errorf("%w: version %d", nvshader.ErrUnsupportedManifest, m.Version)
	}

	return m, nil
}

// ImportPackage restores a .nvcache package the same way Import does,
// plus a GPU compatibility check against the local profile. An
// incompatible package is not refused — its entries are still restored —
// but compatible reports false so the caller can surface a warning,
// matching the compatibility policy's "warning on import" behavior.
func ImportPackage(dir, override string, local gpuinfo.Profile) (restored []string, compatible bool, err error) {
	m, rerr := readPackageManifest(dir)
	if rerr != nil {
		return nil, false, rerr
	}

	remote := gpuinfo.Profile{
		VendorID:      m.Gpu.VendorID,
		DeviceID:      m.Gpu.DeviceID,
		DriverVersion: m.Gpu.DriverVersion,
		Architecture:  m.Gpu.Architecture,
	}
	compatible = gpuinfo.Compatible(local, remote)

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

	return restored, compatible, firstErr
}
