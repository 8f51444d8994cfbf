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

// Package catalog builds a unified list of installed games from the
// installers found on this host: Steam (VDF/ACF), Lutris (YAML), Heroic
// (JSON) and a user-maintained manual manifest.
package catalog

import "fmt"

// Source identifies which installer produced a Game.
type Source string

const (
	SourceSteam   Source = "steam"
	SourceLutris  Source = "lutris"
	SourceHeroic  Source = "heroic"
	SourceManual  Source = "manual"
)

// Game is one installed game, as materialized from a single source file at
// catalog-build time. Games are immutable after construction.
type Game struct {
	Source      Source
	ID          string // source-prefixed, unique within the catalog
	Name        string
	InstallPath string
	CacheHints  []string
	Tags        []string
}

// SteamID builds the "steam:<appid>" identifier used by the Steam detector.
func SteamID(appID string) string { return fmt.Sprintf("steam:%s", appID) }

// LutrisID builds the "lutris:<slug>" identifier used by the Lutris detector.
func LutrisID(slug string) string { return fmt.Sprintf("lutris:%s", slug) }

// HeroicID builds the "heroic-<flavor>:<appname>" identifier used by the
// Heroic detector, where flavor is one of "gog", "legendary", "sideload".
func HeroicID(flavor, appName string) string { return fmt.Sprintf("heroic-%s:%s", flavor, appName) }

// ManualID builds the "manual:<basename>" identifier used by the manual
// detector. Collisions are possible (two installs with the same basename)
// and are not deduplicated, matching the source this was distilled from.
func ManualID(basename string) string { return fmt.Sprintf("manual:%s", basename) }
