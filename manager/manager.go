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

// Package manager wires the path resolver, catalog merger, scanner,
// policy engine, replay orchestrator, watcher, archive and P2P packages
// into the single orchestrator described by the design: one Manager per
// host, owning its entry list and the sockets/handles its collaborators
// open on its behalf.
package manager

import (
	"context"
	"os"

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/archive"
	"github.com/mfinelli/nvshader/catalog"
	"github.com/mfinelli/nvshader/gpuinfo"
	"github.com/mfinelli/nvshader/p2p"
	"github.com/mfinelli/nvshader/paths"
	"github.com/mfinelli/nvshader/policy"
	"github.com/mfinelli/nvshader/replay"
	"github.com/mfinelli/nvshader/scanner"
	"github.com/mfinelli/nvshader/watch"
)

// Manager owns a single host's view of its shader caches: the resolved
// cache roots, the scanned entry list, and the detected game catalog. A
// scan replaces the entry list wholesale, and every mutating operation
// (retention, validation, replay) walks that same list in place.
//
// A Manager is not safe for concurrent use. Callers that want parallelism
// create independent Managers, each with its own entries and sockets.
type Manager struct {
	Paths    paths.CachePaths
	Entries  []*nvshader.CacheEntry
	Games    []catalog.Game
	Warnings []string

	Clock  nvshader.Clock
	Replay replay.Config
	GPU    gpuinfo.Profile

	home string
}

// New resolves cache paths and builds the game catalog for the current
// host, then performs an initial scan and association pass. A nil clock
// defaults to nvshader.RealClock{}.
func New(ov paths.Overrides, replayCfg replay.Config, clock nvshader.Clock) (*Manager, error) {
	cp, err := paths.Resolve(ov)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil, nvshader.ErrNoHomeDir
	}

	games, warnings := catalog.Merge(home)

	if clock == nil {
		clock = nvshader.RealClock{}
	}

	gpu, gerr := gpuinfo.Detect(context.Background())
	if gerr != nil {
		warnings = append(warnings, gerr.Error())
	}

	m := &Manager{
		Paths:    cp,
		Games:    games,
		Warnings: warnings,
		Clock:    clock,
		Replay:   replayCfg,
		GPU:      gpu,
		home:     home,
	}

	m.Rescan()

	return m, nil
}

// Rescan tears down the current entry list and replaces it with a fresh
// scan of m.Paths, then re-runs association against m.Games. Per the
// design, a scan always supersedes the prior entry set in full.
func (m *Manager) Rescan() {
	m.Entries = scanner.Scan(m.Paths)
	policy.Associate(m.Entries, m.Games)
}

// Stats aggregates the current entry list.
func (m *Manager) Stats() nvshader.CacheStats {
	return policy.Stats(m.Entries)
}

// CleanOlderThan removes entries whose modification time is older than
// days relative to the manager's clock, deleting the on-disk artifact for
// each. The manager's entry list is replaced with the survivors.
func (m *Manager) CleanOlderThan(days int) (int, error) {
	survivors, removed, err := policy.CleanOlderThan(m.Entries, m.Clock.Now(), days)
	m.Entries = survivors
	return removed, err
}

// ShrinkToSize removes the oldest entries, on-disk artifact included,
// until the total cached bytes fall at or below maxBytes.
func (m *Manager) ShrinkToSize(maxBytes uint64) (int, error) {
	survivors, removed, err := policy.ShrinkToSize(m.Entries, maxBytes)
	m.Entries = survivors
	return removed, err
}

// ClearGameCache removes every entry associated with gameID, deleting its
// on-disk artifact.
func (m *Manager) ClearGameCache(gameID string) (int, error) {
	survivors, removed, err := policy.ClearGameCache(m.Entries, gameID)
	m.Entries = survivors
	return removed, err
}

// Validate re-verifies every typed entry's on-disk integrity without
// mutating the entry list.
func (m *Manager) Validate() policy.ValidationResult {
	return policy.Validate(m.Entries)
}

// ReplayAll runs ahead-of-time pipeline replay over every Fossilize entry
// in the manager's list, using the manager's replay configuration.
func (m *Manager) ReplayAll(cb replay.ProgressFunc) (replay.ManagerResult, error) {
	binary, err := replay.LocateBinary(m.Replay, m.home)
	if err != nil {
		return replay.ManagerResult{}, err
	}

	return replay.ReplayEntries(m.Replay, binary, m.Entries, cb), nil
}

// Export writes every current entry to a portable bundle directory,
// tagging it with game as an optional human-facing label.
func (m *Manager) Export(dir, game string) error {
	return archive.Export(dir, m.Entries, m.Clock, game)
}

// Import restores a bundle written by Export, rebasing to override when
// non-empty, and returns the list of restored paths.
func (m *Manager) Import(dir, override string) ([]string, error) {
	return archive.Import(dir, override)
}

// ExportPackage writes a .nvcache-style bundle carrying the manager's GPU
// profile alongside every current entry.
func (m *Manager) ExportPackage(dir, game string) error {
	return archive.ExportPackage(dir, m.Entries, m.Clock, game, m.GPU)
}

// ImportPackage restores a .nvcache-style bundle, reporting whether its
// recorded GPU profile is compatible with the manager's own.
func (m *Manager) ImportPackage(dir, override string) ([]string, bool, error) {
	return archive.ImportPackage(dir, override, m.GPU)
}

// Watch registers a watcher over up to five of the manager's resolved
// cache roots (NVIDIA, Mesa, DXVK, vkd3d, and the Steam Fossilize root),
// skipping any that failed to resolve. The caller is responsible for
// calling Run and Stop on the returned watcher.
func (m *Manager) Watch(cb watch.Callback) (*watch.Watcher, error) {
	var dirs []string
	for _, d := range []string{m.Paths.Nvidia, m.Paths.Mesa, m.Paths.DXVK, m.Paths.Vkd3d, m.Paths.Fossilize} {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return watch.New(dirs, cb)
}

// Discover starts a P2P node advertising the manager's current entries
// and architecture, for local-network cache discovery.
func (m *Manager) Discover(driver string) (*p2p.Node, error) {
	caches := make([]p2p.LocalCache, 0, len(m.Entries))
	for _, e := range m.Entries {
		caches = append(caches, p2p.LocalCache{
			GameID:   e.GameID,
			GameName: e.GameName,
			Kind:     e.Kind.Short(),
			Size:     e.SizeBytes,
		})
	}

	return p2p.NewNode(m.GPU.Architecture, driver, caches)
}
