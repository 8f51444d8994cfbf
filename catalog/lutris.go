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

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// lutrisDoc is the tolerant flat view of a Lutris *.yml game definition:
// only these five top-level keys are recognized, everything else (runner
// options, env blocks, per-runner config) is ignored.
type lutrisDoc struct {
	Name      string `yaml:"name"`
	Slug      string `yaml:"slug"`
	Directory string `yaml:"directory"`
	Cache     string `yaml:"cache"`
	Runner    string `yaml:"runner"`
}

// DetectLutris scans Lutris's two game-definition directories for *.yml
// files. A game is emitted only if name, slug and directory are all
// present; a single malformed file is a warning, not a fatal error.
func DetectLutris(home string) ([]Game, []string, error) {
	var warnings []string
	var games []Game

	dirs := []string{
		filepath.Join(home, ".local", "share", "lutris", "games"),
		filepath.Join(home, ".config", "lutris", "games"),
	}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // directory doesn't exist on this host
		}

		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".yml") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)

		for _, name := range names {
			p := filepath.Join(dir, name)
			g, warn, ok := parseLutrisFile(p)
			if warn != "" {
				warnings = append(warnings, warn)
			}
			if ok {
				games = append(games, g)
			}
		}
	}

	return games, warnings, nil
}

func parseLutrisFile(path string) (Game, string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Sprintf("read %s: %v", path, err), false
	}

	var doc lutrisDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Game{}, fmt.Sprintf("parse %s: %v", path, err), false
	}

	name := strings.TrimSpace(doc.Name)
	slug := strings.TrimSpace(doc.Slug)
	directory := strings.TrimSpace(doc.Directory)

	if name == "" || slug == "" || directory == "" {
		return Game{}, "", false
	}

	g := Game{
		Source:      SourceLutris,
		ID:          LutrisID(slug),
		Name:        name,
		InstallPath: directory,
		CacheHints:  []string{directory},
	}

	if cache := strings.TrimSpace(doc.Cache); cache != "" {
		g.CacheHints = append(g.CacheHints, cache)
	}
	if runner := strings.TrimSpace(doc.Runner); runner != "" {
		g.Tags = append(g.Tags, runner)
	}

	return g, "", true
}
