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

package nvshader

// CacheKind identifies one of the closed set of shader cache formats this
// engine understands. The set is closed: callers must not construct their
// own CacheKind values, only use the exported Kind* constants.
type CacheKind struct {
	name  string
	short string
	ext   string
}

// Name returns the long, human-facing name of the cache kind.
func (k CacheKind) Name() string { return k.name }

// Short returns the short identifier used in manifests and wire messages.
func (k CacheKind) Short() string { return k.short }

// Ext returns the canonical file extension for the kind, or "" for
// directory-based kinds.
func (k CacheKind) Ext() string { return k.ext }

func (k CacheKind) String() string { return k.short }

var (
	KindDXVK       = CacheKind{name: "DXVK State Cache", short: "dxvk", ext: ".dxvk-cache"}
	KindVkd3d      = CacheKind{name: "vkd3d-proton Shader Cache", short: "vkd3d", ext: ".vkd3d-cache"}
	KindNvidia     = CacheKind{name: "NVIDIA Compute Cache", short: "nvidia", ext: ""}
	KindMesa       = CacheKind{name: "Mesa Shader Cache", short: "mesa", ext: ""}
	KindFossilize  = CacheKind{name: "Fossilize Pipeline Cache", short: "fossilize", ext: ".foz"}
	allCacheKinds  = []CacheKind{KindDXVK, KindVkd3d, KindNvidia, KindMesa, KindFossilize}
)

// KindByShort returns the CacheKind whose short identifier matches, and
// whether one was found. It decodes a manifest's "cache_type"/"type"
// field back into a CacheKind; the archive importers do not call it.
func KindByShort(short string) (CacheKind, bool) {
	for _, k := range allCacheKinds {
		if k.short == short {
			return k, true
		}
	}
	return CacheKind{}, false
}
