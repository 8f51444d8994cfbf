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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManualEntry is one user-supplied game definition, as read from or written
// to $HOME/.config/nvshader/games.json.
type ManualEntry struct {
	Name        string   `json:"name"`
	InstallPath string   `json:"install_path"`
	CachePaths  []string `json:"cache_paths,omitempty"`
}

type manualDoc struct {
	Entries []ManualEntry `json:"entries"`
}

func manualConfigPath(home string) string {
	return filepath.Join(home, ".config", "nvshader", "games.json")
}

// DetectManual reads the user-maintained manual game manifest, if present.
// IDs are derived from basename(install_path); the source does not
// deduplicate collisions.
func DetectManual(home string) ([]Game, []string, error) {
	p := manualConfigPath(home)

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, nil, nil // absent manifest isn't a warning or an error
	}

	var doc manualDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, []string{fmt.Sprintf("parse %s: %v", p, err)}, nil
	}

	games := make([]Game, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		name := strings.TrimSpace(e.Name)
		installPath := strings.TrimSpace(e.InstallPath)
		if name == "" || installPath == "" {
			continue
		}

		g := Game{
			Source:      SourceManual,
			ID:          ManualID(filepath.Base(installPath)),
			Name:        name,
			InstallPath: installPath,
			CacheHints:  append([]string{installPath}, e.CachePaths...),
		}
		games = append(games, g)
	}

	return games, nil, nil
}

// SaveManualEntries writes the manual game manifest in the schema
// DetectManual accepts, creating the parent directory if necessary.
func SaveManualEntries(home string, entries []ManualEntry) error {
	p := manualConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(p), err)
	}

	b, err := json.MarshalIndent(manualDoc{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manual entries: %w", err)
	}
	b = append(b, '\n')

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s -> %s: %w", tmp, p, err)
	}

	return nil
}
