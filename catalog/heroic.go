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

// heroicSource names one of the three Heroic-managed libraries this
// detector reads.
type heroicSource struct {
	flavor string // "gog", "legendary", "sideload"
	path   func(home string) string
}

var heroicSources = []heroicSource{
	{
		flavor: "gog",
		path: func(home string) string {
			return filepath.Join(home, ".config", "heroic", "gog_store", "installed.json")
		},
	},
	{
		flavor: "legendary",
		path: func(home string) string {
			return filepath.Join(home, ".config", "legendary", "installed.json")
		},
	},
	{
		flavor: "sideload",
		path: func(home string) string {
			return filepath.Join(home, ".config", "heroic", "sideload_apps", "library.json")
		},
	},
}

// DetectHeroic reads Heroic's three install-record JSON files. Each file
// may be shaped as either a JSON array of objects or an object mapping
// name to object; both are accepted and normalized to a list of objects.
func DetectHeroic(home string) ([]Game, []string, error) {
	var warnings []string
	var games []Game

	for _, src := range heroicSources {
		p := src.path(home)

		b, err := os.ReadFile(p)
		if err != nil {
			continue // not present on this host
		}

		objs, err := decodeHeroicObjects(b)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("parse %s: %v", p, err))
			continue
		}

		for _, obj := range objs {
			g, ok := heroicGameFromObject(src.flavor, obj)
			if ok {
				games = append(games, g)
			}
		}
	}

	return games, warnings, nil
}

// decodeHeroicObjects accepts either a top-level JSON array of objects or a
// top-level JSON object mapping arbitrary keys to objects, normalizing both
// shapes to a slice of objects.
func decodeHeroicObjects(b []byte) ([]map[string]any, error) {
	var asArray []map[string]any
	if err := json.Unmarshal(b, &asArray); err == nil {
		return asArray, nil
	}

	var asMap map[string]map[string]any
	if err := json.Unmarshal(b, &asMap); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(asMap))
	for _, v := range asMap {
		out = append(out, v)
	}
	return out, nil
}

func heroicGameFromObject(flavor string, obj map[string]any) (Game, bool) {
	appName := firstString(obj, "app_name", "appName", "title")
	if appName == "" {
		return Game{}, false
	}

	name := firstString(obj, "title", "app_name")
	if name == "" {
		name = appName
	}

	installPath := firstString(obj, "install_path", "installPath", "folder_name")

	g := Game{
		Source:      SourceHeroic,
		ID:          HeroicID(flavor, appName),
		Name:        name,
		InstallPath: installPath,
	}
	if installPath != "" {
		g.CacheHints = append(g.CacheHints, installPath)
	}
	if platform := firstString(obj, "platform"); platform != "" {
		g.Tags = append(g.Tags, platform)
	}

	return g, true
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			if s, ok := v.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return ""
}
