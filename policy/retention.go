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

package policy

import (
	"os"
	"time"

	"github.com/mfinelli/nvshader"
)

// removeArtifact deletes the on-disk artifact an entry points at: a
// recursive tree delete for directory-based kinds, a plain file delete
// otherwise. There is no journaling or atomic rename here — a partial
// failure midway through a batch leaves some files removed and the
// remainder intact, and the next scan re-establishes truth.
func removeArtifact(e *nvshader.CacheEntry) error {
	if e.IsDirectory {
		return os.RemoveAll(e.Path)
	}
	return os.Remove(e.Path)
}

// CleanOlderThan deletes every entry whose modified_time is older than
// days*24h from now, in place on entries, and returns the updated slice
// plus the number removed. Removal failures for individual artifacts are
// not swallowed: the caller sees them, per the propagation policy for
// retention operations.
func CleanOlderThan(entries []*nvshader.CacheEntry, now time.Time, days int) ([]*nvshader.CacheEntry, int, error) {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.ModifiedTime.Before(cutoff) {
			if err := removeArtifact(e); err != nil {
				return nil, removed, err
			}
			removed++
			continue
		}
		kept = append(kept, e)
	}

	return kept, removed, nil
}

// ShrinkToSize repeatedly deletes the entry with the oldest modified_time
// (first occurrence wins ties) until the remaining total is at most
// maxBytes or the list is empty. Each iteration strictly decreases the
// total, so it always terminates. Returns the surviving entries and the
// count removed.
func ShrinkToSize(entries []*nvshader.CacheEntry, maxBytes uint64) ([]*nvshader.CacheEntry, int, error) {
	total := uint64(0)
	for _, e := range entries {
		total += e.SizeBytes
	}

	removed := 0
	for total > maxBytes && len(entries) > 0 {
		oldest := 0
		for i, e := range entries {
			if e.ModifiedTime.Before(entries[oldest].ModifiedTime) {
				oldest = i
			}
		}

		victim := entries[oldest]
		if err := removeArtifact(victim); err != nil {
			return entries, removed, err
		}

		total -= victim.SizeBytes
		entries = append(entries[:oldest], entries[oldest+1:]...)
		removed++
	}

	return entries, removed, nil
}

// ClearGameCache deletes every entry bound to gameID, in place, and
// returns the surviving entries plus the count removed.
func ClearGameCache(entries []*nvshader.CacheEntry, gameID string) ([]*nvshader.CacheEntry, int, error) {
	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.GameID == gameID {
			if err := removeArtifact(e); err != nil {
				return nil, removed, err
			}
			removed++
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed, nil
}
