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

package replay

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mfinelli/nvshader"
)

const replayBinaryName = "fossilize_replay"

// LocateBinary resolves the fossilize_replay executable: an explicit
// override in cfg wins outright; otherwise /usr/bin, /usr/local/bin, and
// /opt/fossilize are probed in order, followed by two Steam-bundled
// locations relative to home.
func LocateBinary(cfg Config, home string) (string, error) {
	if cfg.ReplayBinary != "" {
		if fileExists(cfg.ReplayBinary) {
			return cfg.ReplayBinary, nil
		}
		return "", fmt.Errorf("%w: override %s does not exist", nvshader.ErrFossilizeNotFound, cfg.ReplayBinary)
	}

	for _, dir := range candidateDirs(home) {
		p := filepath.Join(dir, replayBinaryName)
		if fileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: searched standard locations", nvshader.ErrFossilizeNotFound)
}

func candidateDirs(home string) []string {
	dirs := []string{"/usr/bin", "/usr/local/bin", "/opt/fossilize"}
	if home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "common", "Fossilize", "bin"),
			filepath.Join(home, ".steam", "steam", "steamapps", "common", "Fossilize", "bin"),
		)
	}
	return dirs
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
