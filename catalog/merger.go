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

import "fmt"

// Merge runs the four detectors in a fixed order (Steam, Lutris, Heroic,
// manual) and concatenates their output. A single detector's internal
// errors never abort the merge; they are folded into the returned warning
// list instead. No cross-source deduplication is performed: IDs already
// carry a source prefix, so collisions across sources are impossible and
// collisions within a source are the detector's own responsibility (or, for
// the manual source, explicitly not handled — see DetectManual).
func Merge(home string) ([]Game, []string) {
	var all []Game
	var warnings []string

	type detector struct {
		name string
		run  func(string) ([]Game, []string, error)
	}

	detectors := []detector{
		{"steam", DetectSteam},
		{"lutris", DetectLutris},
		{"heroic", DetectHeroic},
		{"manual", DetectManual},
	}

	for _, d := range detectors {
		games, warns, err := d.run(home)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s detector: %v", d.name, err))
			continue
		}
		warnings = append(warnings, warns...)
		all = append(all, games...)
	}

	return all, warnings
}
