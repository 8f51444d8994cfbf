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

import "time"

// CacheEntry is one discoverable shader cache artifact found on disk.
//
// Path is always absolute. GameName/GameID/GameSource are unset until an
// association pass (see the policy package) binds the entry to a game
// from the catalog.
type CacheEntry struct {
	Path         string
	Kind         CacheKind
	SizeBytes    uint64
	ModifiedTime time.Time

	// GameName starts out as the scanner's best-effort guess (a stripped
	// basename for file-kind entries, a synthetic name like "Mesa Shader
	// Cache" for aggregate directory entries) and is replaced outright
	// once association finds a real catalog match.
	GameName   string
	GameID     string // "" until associated
	GameSource string // "" until associated

	// EntryCount is the number of shader records parsed from a typed
	// file-kind entry (dxvk/vkd3d). It is nil for directory-based kinds,
	// where the concept doesn't apply.
	EntryCount *uint64

	IsDirectory bool
}

// Associated reports whether the entry has been bound to a game from the
// catalog, as opposed to carrying only the scanner's provisional guess.
func (e *CacheEntry) Associated() bool { return e.GameID != "" }
