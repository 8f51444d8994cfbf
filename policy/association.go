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
	"strings"

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/catalog"
)

// Associate binds every entry in entries to a game from games, in place.
// For each entry the rules below are applied in order; the first positive
// match wins and replaces the entry's game_name/game_id/game_source. An
// entry that matches nothing keeps whatever name the scanner gave it and
// is left without a game_id.
//
//  1. entry.game_id already equals some game's id (a no-op re-match, what
//     makes a second Associate call idempotent).
//  2. Case-insensitive equality of entry.game_name with game.name, then
//     case-insensitive substring containment either way.
//  3. Highest-scoring hint match: a hint (install_path plus cache_hints)
//     matches when entry.path begins with it and the next rune is a path
//     separator or end of string; score is the hint's length.
//  4. For steam games only, the appid portion of game.id (after the
//     colon) appears as a full path segment of entry.path; score is the
//     segment length.
func Associate(entries []*nvshader.CacheEntry, games []catalog.Game) {
	for _, e := range entries {
		if g, ok := matchByID(e, games); ok {
			bind(e, g)
			continue
		}
		if g, ok := matchByName(e, games); ok {
			bind(e, g)
			continue
		}
		if g, ok := matchByHint(e, games); ok {
			bind(e, g)
			continue
		}
		if g, ok := matchBySteamSegment(e, games); ok {
			bind(e, g)
			continue
		}
	}
}

func bind(e *nvshader.CacheEntry, g catalog.Game) {
	e.GameName = g.Name
	e.GameID = g.ID
	e.GameSource = string(g.Source)
}

func matchByID(e *nvshader.CacheEntry, games []catalog.Game) (catalog.Game, bool) {
	if e.GameID == "" {
		return catalog.Game{}, false
	}
	for _, g := range games {
		if g.ID == e.GameID {
			return g, true
		}
	}
	return catalog.Game{}, false
}

func matchByName(e *nvshader.CacheEntry, games []catalog.Game) (catalog.Game, bool) {
	if e.GameName == "" {
		return catalog.Game{}, false
	}
	name := strings.ToLower(e.GameName)

	for _, g := range games {
		if strings.ToLower(g.Name) == name {
			return g, true
		}
	}
	for _, g := range games {
		gname := strings.ToLower(g.Name)
		if strings.Contains(name, gname) || strings.Contains(gname, name) {
			return g, true
		}
	}
	return catalog.Game{}, false
}

func matchByHint(e *nvshader.CacheEntry, games []catalog.Game) (catalog.Game, bool) {
	var best catalog.Game
	bestScore := -1

	for _, g := range games {
		hints := make([]string, 0, len(g.CacheHints)+1)
		if g.InstallPath != "" {
			hints = append(hints, g.InstallPath)
		}
		hints = append(hints, g.CacheHints...)

		for _, hint := range hints {
			if score, ok := hintScore(e.Path, hint); ok && score > bestScore {
				bestScore = score
				best = g
			}
		}
	}

	return best, bestScore >= 0
}

// hintScore reports whether path begins with hint (trailing separators
// stripped) followed by a path separator or end of string, and if so the
// length of hint used as the match score.
func hintScore(path, hint string) (int, bool) {
	hint = strings.TrimRight(hint, "/")
	if hint == "" {
		return 0, false
	}
	if !strings.HasPrefix(path, hint) {
		return 0, false
	}
	rest := path[len(hint):]
	if rest == "" || rest[0] == '/' {
		return len(hint), true
	}
	return 0, false
}

func matchBySteamSegment(e *nvshader.CacheEntry, games []catalog.Game) (catalog.Game, bool) {
	segments := strings.Split(e.Path, "/")
	segSet := make(map[string]struct{}, len(segments))
	for _, s := range segments {
		if s != "" {
			segSet[s] = struct{}{}
		}
	}

	var best catalog.Game
	bestScore := -1

	for _, g := range games {
		if g.Source != catalog.SourceSteam {
			continue
		}
		idx := strings.Index(g.ID, ":")
		if idx < 0 {
			continue
		}
		appID := g.ID[idx+1:]
		if appID == "" {
			continue
		}
		if _, ok := segSet[appID]; ok && len(appID) > bestScore {
			bestScore = len(appID)
			best = g
		}
	}

	return best, bestScore >= 0
}
