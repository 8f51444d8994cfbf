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

// Package archive serializes and restores portable cache bundles: a
// manifest.json plus a cache/ subtree of copied artifacts, and a
// GPU-tagged ".nvcache" packager format built on the same bundle shape.
package archive

const manifestVersion = 1

// chunkSize is the buffer size used for file copies during export and
// import.
const chunkSize = 64 * 1024

// ManifestEntry describes one archived artifact.
type ManifestEntry struct {
	CacheType    string `json:"cache_type"`
	OriginalPath string `json:"original_path"`
	StoredPath   string `json:"stored_path"`
	IsDirectory  bool   `json:"is_directory"`
	SizeBytes    uint64 `json:"size_bytes"`
}

// Manifest is the top-level manifest.json document for a bundle.
type Manifest struct {
	Version   int             `json:"version"`
	CreatedAt int64           `json:"created_at"`
	Game      string          `json:"game,omitempty"`
	Entries   []ManifestEntry `json:"entries"`
}

// GpuInfo is the GPU sub-object attached to a .nvcache package manifest.
type GpuInfo struct {
	VendorID      uint32 `json:"vendor_id"`
	DeviceID      uint32 `json:"device_id"`
	DriverVersion string `json:"driver_version"`
	Architecture  string `json:"architecture"`
}

// PackageEntry is a ManifestEntry plus the short cache-kind name used by
// the .nvcache packager format.
type PackageEntry struct {
	ManifestEntry
	Type string `json:"type"`
}

// PackageManifest is the .nvcache packager's manifest.json shape: a
// Manifest plus a gpu sub-object.
type PackageManifest struct {
	Version   int            `json:"version"`
	CreatedAt int64          `json:"created_at"`
	Game      string         `json:"game,omitempty"`
	Gpu       GpuInfo        `json:"gpu"`
	Entries   []PackageEntry `json:"entries"`
}
