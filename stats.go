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

// CacheStats aggregates a scanned entry set.
type CacheStats struct {
	TotalBytes uint64
	FileCount  int
	GameCount  int

	// PerKindBytes sums SizeBytes per CacheKind, keyed by the kind's short
	// identifier; callers recover the CacheKind via KindByShort.
	PerKindBytes map[string]uint64

	Oldest *time.Time
	Newest *time.Time
}
