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

// Package policy is the cache engine's policy layer: it turns a scanned
// entry set into aggregate statistics, applies age and size retention,
// validates typed cache files, and associates entries with games from the
// catalog.
package policy

import "github.com/mfinelli/nvshader"

// Stats aggregates entries into a CacheStats snapshot. It is associative:
// callers may partition entries arbitrarily and sum the partial results.
func Stats(entries []*nvshader.CacheEntry) nvshader.CacheStats {
	stats := nvshader.CacheStats{
		PerKindBytes: make(map[string]uint64),
	}

	for _, e := range entries {
		stats.TotalBytes += e.SizeBytes
		stats.FileCount++
		stats.PerKindBytes[e.Kind.Short()] += e.SizeBytes

		// game_count counts every entry carrying a name, whether that
		// name is the scanner's provisional guess or a real association
		// (entry.game_name ≠ null), matching the aggregation invariant.
		if e.GameName != "" {
			stats.GameCount++
		}

		if stats.Oldest == nil || e.ModifiedTime.Before(*stats.Oldest) {
			t := e.ModifiedTime
			stats.Oldest = &t
		}
		if stats.Newest == nil || e.ModifiedTime.After(*stats.Newest) {
			t := e.ModifiedTime
			stats.Newest = &t
		}
	}

	return stats
}
