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
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
)

// candidateSteamRoots lists the three canonical Steam install layouts this
// detector probes, in order.
func candidateSteamRoots(home string) []string {
	return []string{
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data", "Steam"),
	}
}

// DetectSteam locates installed Steam games by parsing libraryfolders.vdf
// from each candidate Steam root, then appmanifest_*.acf within every
// discovered library. Symlinked roots (the common ~/.steam/steam -> real
// data dir layout) are canonicalised so the same library isn't counted
// twice. A failure parsing any single file is collected as a warning and
// does not abort discovery.
func DetectSteam(home string) ([]Game, []string, error) {
	var warnings []string

	seenRoots := make(map[string]struct{})
	var uniqRoots []string
	for _, root := range candidateSteamRoots(home) {
		canon, err := canonicalizeViaProcFd(root)
		if err != nil {
			continue // root doesn't exist on this host
		}
		if _, ok := seenRoots[canon]; ok {
			continue
		}
		seenRoots[canon] = struct{}{}
		uniqRoots = append(uniqRoots, canon)
	}

	libSet := make(map[string]struct{})
	for _, root := range uniqRoots {
		vdfPath := filepath.Join(root, "steamapps", "libraryfolders.vdf")

		f, err := os.Open(vdfPath)
		if err != nil {
			continue // not a steam root, or libraryfolders.vdf absent
		}

		parsed, perr := vdf.NewParser(f).Parse()
		f.Close()
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("parse %s: %v", vdfPath, perr))
			continue
		}

		for _, p := range extractLibraryPaths(parsed) {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			canon, cerr := canonicalizeViaProcFd(p)
			if cerr != nil {
				canon = filepath.Clean(p)
			}
			libSet[canon] = struct{}{}
		}
	}

	libs := make([]string, 0, len(libSet))
	for p := range libSet {
		libs = append(libs, p)
	}
	sort.Strings(libs)

	var games []Game
	for _, lib := range libs {
		steamapps := filepath.Join(lib, "steamapps")
		manifests, err := filepath.Glob(filepath.Join(steamapps, "appmanifest_*.acf"))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("glob %s: %v", steamapps, err))
			continue
		}
		sort.Strings(manifests)

		for _, manifestPath := range manifests {
			g, warn, err := parseAppManifest(steamapps, manifestPath)
			if warn != "" {
				warnings = append(warnings, warn)
			}
			if err != nil {
				continue
			}
			games = append(games, g)
		}
	}

	return games, warnings, nil
}

// extractLibraryPaths supports both libraryfolders.vdf shapes:
//
//	old: "libraryfolders" { "1" "/path/to/library" }
//	new: "libraryfolders" { "1" { "path" "/path/to/library" "label" "" } }
func extractLibraryPaths(parsed any) []string {
	root, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}

	lf, ok := root["libraryfolders"].(map[string]any)
	if !ok {
		return nil
	}

	var out []string
	for k, v := range lf {
		if _, err := strconv.Atoi(k); err != nil {
			continue // skip non-library keys like "contentstatsid"
		}

		switch vv := v.(type) {
		case string:
			out = append(out, vv)
		case map[string]any:
			if p, ok := vv["path"].(string); ok && strings.TrimSpace(p) != "" {
				out = append(out, p)
			}
		}
	}

	return out
}

// parseAppManifest parses one steamapps/appmanifest_*.acf and turns it into
// a Game, attaching a shadercache cache hint when present.
func parseAppManifest(steamapps, manifestPath string) (Game, string, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return Game{}, fmt.Sprintf("open %s: %v", manifestPath, err), err
	}
	defer f.Close()

	parsed, perr := vdf.NewParser(f).Parse()
	if perr != nil {
		return Game{}, fmt.Sprintf("parse %s: %v", manifestPath, perr), perr
	}

	appStateAny, ok := parsed["AppState"]
	if !ok {
		appStateAny, ok = parsed["appstate"]
	}
	appState, ok := appStateAny.(map[string]any)
	if !ok {
		return Game{}, fmt.Sprintf("manifest missing AppState: %s", manifestPath),
			fmt.Errorf("missing AppState")
	}

	appid := strings.TrimSpace(asString(appState["appid"]))
	name := strings.TrimSpace(asString(appState["name"]))
	installdir := strings.TrimSpace(asString(appState["installdir"]))
	lastPlayed := strings.TrimSpace(asString(appState["LastPlayed"]))

	if appid == "" || installdir == "" {
		return Game{}, fmt.Sprintf("manifest missing appid/installdir: %s", manifestPath),
			fmt.Errorf("missing required fields")
	}

	if name == "" {
		name = installdir
	}

	g := Game{
		Source:      SourceSteam,
		ID:          SteamID(appid),
		Name:        name,
		InstallPath: filepath.Join(steamapps, "common", installdir),
	}
	g.CacheHints = append(g.CacheHints, g.InstallPath)

	if shaderDir := filepath.Join(steamapps, "shadercache", appid); dirExists(shaderDir) {
		g.CacheHints = append(g.CacheHints, shaderDir)
	}

	if lastPlayed != "" && lastPlayed != "0" {
		g.Tags = append(g.Tags, fmt.Sprintf("last-played:%s", lastPlayed))
	}

	return g, "", nil
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// canonicalizeViaProcFd resolves path to its canonical real form by opening
// it and reading back the kernel's own resolution of the file descriptor
// through /proc/self/fd. This is more robust against bind-mount and
// multi-level symlink layouts than repeated EvalSymlinks, and is how Steam's
// own symlinked ~/.steam/steam install is deduplicated against its real
// data directory.
func canonicalizeViaProcFd(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	real, err := os.Readlink(fmt.Sprintf("/proc/self/fd/%d", f.Fd()))
	if err != nil {
		return filepath.Clean(path), nil
	}

	return filepath.Clean(real), nil
}
