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
	"path/filepath"
	"testing"
	"time"

	"github.com/mfinelli/nvshader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntryFile(t *testing.T, dir, name string, size int) *nvshader.CacheEntry {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
	return &nvshader.CacheEntry{Path: p, SizeBytes: uint64(size), Kind: nvshader.KindDXVK}
}

// Invariant 3: clean_older_than(0) removes every entry.
func TestCleanOlderThanZeroRemovesEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Now()
	e1 := writeEntryFile(t, dir, "a.bin", 10)
	e1.ModifiedTime = now.Add(-time.Minute)
	e2 := writeEntryFile(t, dir, "b.bin", 10)
	e2.ModifiedTime = now.Add(-time.Second)

	kept, removed, err := CleanOlderThan([]*nvshader.CacheEntry{e1, e2}, now, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, kept)

	_, statErr := os.Stat(e1.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCleanOlderThanKeepsRecentEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Now()
	old := writeEntryFile(t, dir, "old.bin", 10)
	old.ModifiedTime = now.Add(-30 * 24 * time.Hour)
	recent := writeEntryFile(t, dir, "recent.bin", 10)
	recent.ModifiedTime = now.Add(-1 * time.Hour)

	kept, removed, err := CleanOlderThan([]*nvshader.CacheEntry{old, recent}, now, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, kept, 1)
	assert.Equal(t, recent.Path, kept[0].Path)
}

// S2 from the test plan: shrink_to_size(300) over A(100,t=1) B(200,t=2)
// C(300,t=3) removes A (total 600 -> 500) then B (500 -> 300), leaving
// [C]. Any limit below 300 would remove C as well.
func TestShrinkToSizeRemovesOldestFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := writeEntryFile(t, dir, "a.bin", 100)
	a.ModifiedTime = base.Add(1 * time.Second)
	b := writeEntryFile(t, dir, "b.bin", 200)
	b.ModifiedTime = base.Add(2 * time.Second)
	c := writeEntryFile(t, dir, "c.bin", 300)
	c.ModifiedTime = base.Add(3 * time.Second)

	kept, removed, err := ShrinkToSize([]*nvshader.CacheEntry{a, b, c}, 300)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Len(t, kept, 1)
	assert.Equal(t, c.Path, kept[0].Path)

	_, aErr := os.Stat(a.Path)
	assert.True(t, os.IsNotExist(aErr))
	_, bErr := os.Stat(b.Path)
	assert.True(t, os.IsNotExist(bErr))
}

// Invariant 4: after shrink_to_size(M), total <= M or the list is empty.
func TestShrinkToSizeNeverExceedsMax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Now()
	names := []string{"w.bin", "x.bin", "y.bin", "z.bin"}
	var entries []*nvshader.CacheEntry
	for i, size := range []int{50, 50, 50, 50} {
		e := writeEntryFile(t, dir, names[i], size)
		e.ModifiedTime = base.Add(time.Duration(i) * time.Second)
		entries = append(entries, e)
	}

	kept, _, err := ShrinkToSize(entries, 120)
	require.NoError(t, err)

	var total uint64
	for _, e := range kept {
		total += e.SizeBytes
	}
	assert.LessOrEqual(t, total, uint64(120))
}

func TestShrinkToSizeNoopWhenAlreadyUnderLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := writeEntryFile(t, dir, "only.bin", 10)
	e.ModifiedTime = time.Now()

	kept, removed, err := ShrinkToSize([]*nvshader.CacheEntry{e}, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Len(t, kept, 1)
}

func TestClearGameCacheRemovesOnlyMatchingGame(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeEntryFile(t, dir, "a.bin", 10)
	a.GameID = "steam:570"
	b := writeEntryFile(t, dir, "b.bin", 10)
	b.GameID = "steam:730"

	kept, removed, err := ClearGameCache([]*nvshader.CacheEntry{a, b}, "steam:570")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Len(t, kept, 1)
	assert.Equal(t, "steam:730", kept[0].GameID)
}
