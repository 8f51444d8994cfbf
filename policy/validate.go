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

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/scanner"
)

// ValidationResult reports how many entries were checked and how many
// failed validation.
type ValidationResult struct {
	Checked int
	Invalid int
}

// Validate re-checks every entry without modifying any state: typed
// file-kind entries (dxvk/vkd3d) are re-parsed (header magic and
// payload-divisibility), directory-based entries are confirmed to still
// exist on disk.
func Validate(entries []*nvshader.CacheEntry) ValidationResult {
	var r ValidationResult

	for _, e := range entries {
		r.Checked++

		if e.IsDirectory {
			if info, err := os.Stat(e.Path); err != nil || !info.IsDir() {
				r.Invalid++
			}
			continue
		}

		switch e.Kind.Short() {
		case nvshader.KindDXVK.Short(), nvshader.KindVkd3d.Short():
			if _, _, _, err := scanner.ReadDXVKFile(e.Path); err != nil {
				r.Invalid++
			}
		default:
			if _, err := os.Stat(e.Path); err != nil {
				r.Invalid++
			}
		}
	}

	return r
}
