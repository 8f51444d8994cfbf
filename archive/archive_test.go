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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/gpuinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Invariant 7: export then import restores files whose bytes equal the
// originals, and manifest size_bytes fields equal the re-measured sizes.
func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	original := []byte("shader bytes, not actually shaders")
	srcPath := filepath.Join(srcDir, "elden.dxvk-cache")
	require.NoError(t, os.WriteFile(srcPath, original, 0o644))

	entries := []*nvshader.CacheEntry{
		{Path: srcPath, Kind: nvshader.KindDXVK, SizeBytes: uint64(len(original))},
	}

	bundleDir := t.TempDir()
	clock := nvshader.FixedClock{At: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, Export(bundleDir, entries, clock, "Elden Ring"))

	restoreDir := t.TempDir()
	restored, err := Import(bundleDir, restoreDir)
	require.NoError(t, err)
	require.Len(t, restored, 1)

	got, err := os.ReadFile(restored[0])
	require.NoError(t, err)
	assert.Equal(t, original, got)

	info, err := os.Stat(restored[0])
	require.NoError(t, err)
	assert.Equal(t, entries[0].SizeBytes, uint64(info.Size()))
}

func TestExportSkipsMissingEntryWithoutAbortingBundle(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	goodPath := filepath.Join(srcDir, "good.dxvk-cache")
	require.NoError(t, os.WriteFile(goodPath, []byte("ok"), 0o644))

	entries := []*nvshader.CacheEntry{
		{Path: filepath.Join(srcDir, "missing.dxvk-cache"), Kind: nvshader.KindDXVK},
		{Path: goodPath, Kind: nvshader.KindDXVK, SizeBytes: 2},
	}

	bundleDir := t.TempDir()
	clock := nvshader.FixedClock{At: time.Now()}
	err := Export(bundleDir, entries, clock, "")
	require.Error(t, err)

	m, merr := readManifest(bundleDir)
	require.NoError(t, merr)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, goodPath, m.Entries[0].OriginalPath)
	assert.Equal(t, "1_good.dxvk-cache", m.Entries[0].StoredPath[len("cache/"):])
}

// S3 from the test plan: importing a version-2 manifest is rejected.
func TestImportRejectsUnsupportedVersion(t *testing.T) {
	t.Parallel()

	bundleDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(bundleDir, "cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bundleDir, "manifest.json"),
		[]byte(`{"version":2,"created_at":0,"entries":[]}`), 0o644))

	_, err := Import(bundleDir, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, nvshader.ErrUnsupportedManifest)
}

func TestExportImportDirectoryEntry(t *testing.T) {
	t.Parallel()

	srcRoot := t.TempDir()
	dirPath := filepath.Join(srcRoot, "mesa_shader_cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dirPath, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dirPath, "sub", "a.bin"), []byte("abc"), 0o644))

	entries := []*nvshader.CacheEntry{
		{Path: dirPath, Kind: nvshader.KindMesa, IsDirectory: true, SizeBytes: 3},
	}

	bundleDir := t.TempDir()
	require.NoError(t, Export(bundleDir, entries, nvshader.FixedClock{At: time.Now()}, ""))

	restoreDir := t.TempDir()
	restored, err := Import(bundleDir, restoreDir)
	require.NoError(t, err)
	require.Len(t, restored, 1)

	got, err := os.ReadFile(filepath.Join(restored[0], "sub", "a.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}

func TestPackageRoundTripFlagsIncompatibleGpu(t *testing.T) {
	t.Parallel()

	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "cache.foz")
	require.NoError(t, os.WriteFile(srcPath, []byte("pipeline"), 0o644))

	entries := []*nvshader.CacheEntry{
		{Path: srcPath, Kind: nvshader.KindFossilize, SizeBytes: 8},
	}

	producer := gpuinfo.Profile{VendorID: gpuinfo.VendorNvidia, Architecture: gpuinfo.ArchAdaLovelace}
	bundleDir := t.TempDir()
	require.NoError(t, ExportPackage(bundleDir, entries, nvshader.FixedClock{At: time.Now()}, "Cyberpunk 2077", producer))

	consumer := gpuinfo.Profile{VendorID: gpuinfo.VendorNvidia, Architecture: gpuinfo.ArchAmpere}
	restoreDir := t.TempDir()
	restored, compatible, err := ImportPackage(bundleDir, restoreDir, consumer)
	require.NoError(t, err)
	assert.False(t, compatible)
	assert.Len(t, restored, 1)
}
