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

// Package paths resolves the well-known filesystem roots that hold GPU
// shader caches: DXVK, vkd3d-proton, NVIDIA's compute cache, Mesa's shader
// cache, the Fossilize pipeline cache, and Steam's per-app shadercache
// directory.
package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mfinelli/nvshader"
)

// CachePaths holds the six cache roots this engine knows how to discover.
// Every field is empty if that root could not be found on this host.
type CachePaths struct {
	DXVK             string
	Vkd3d            string
	Nvidia           string
	Mesa             string
	Fossilize        string
	SteamShadercache string
}

// Overrides lets a caller (normally the config package, reading an explicit
// configuration file) pin a root instead of letting it be auto-discovered.
// An empty field means "no override, fall through to env/defaults".
type Overrides struct {
	DXVK             string
	Vkd3d            string
	Nvidia           string
	Mesa             string
	Fossilize        string
	SteamShadercache string
}

// Resolve discovers all six cache roots for the current host, applying
// overrides first, then the relevant environment variable, then a list of
// default candidates checked in order for existence. A root that resolves
// to nothing existing is left as "" in the result.
func Resolve(ov Overrides) (CachePaths, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return CachePaths{}, nvshader.ErrNoHomeDir
	}

	return CachePaths{
		DXVK: resolveOne(ov.DXVK, os.Getenv("DXVK_STATE_CACHE_PATH"), []string{
			filepath.Join(home, ".cache", "dxvk"),
		}),
		Vkd3d: resolveOne(ov.Vkd3d, os.Getenv("VKD3D_SHADER_CACHE_PATH"), []string{
			filepath.Join(home, ".cache", "vkd3d-proton"),
		}),
		Nvidia: resolveOne(ov.Nvidia, "", []string{
			filepath.Join(home, ".nv", "ComputeCache"),
		}),
		Mesa: resolveOne(ov.Mesa, "", []string{
			filepath.Join(xdg.CacheHome, "mesa_shader_cache"),
			filepath.Join(home, ".cache", "mesa_shader_cache"),
		}),
		Fossilize: resolveOne(ov.Fossilize, "", []string{
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "shadercache"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data",
				"Steam", "steamapps", "shadercache"),
		}),
		SteamShadercache: resolveOne(ov.SteamShadercache, "", []string{
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "shadercache"),
			filepath.Join(home, ".steam", "steam", "steamapps", "shadercache"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "data",
				"Steam", "steamapps", "shadercache"),
		}),
	}, nil
}

// resolveOne applies the override -> env -> defaults precedence chain and
// returns the first path that currently exists, or "" if none do.
func resolveOne(override, env string, defaults []string) string {
	if override != "" {
		if exists(override) {
			return override
		}
		return ""
	}

	if env != "" {
		if exists(env) {
			return env
		}
		return ""
	}

	for _, d := range defaults {
		if exists(d) {
			return d
		}
	}

	return ""
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// IsUnderDir reports whether path resolves to somewhere inside dir, after
// making both absolute. Used to reject archive/package entries whose
// stored_path would otherwise escape the bundle directory during import.
func IsUnderDir(path, dir string) (bool, error) {
	ap, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	ad, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(ad, ap)
	if err != nil {
		return false, err
	}

	if rel == "." {
		return true, nil
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}

	return !filepath.IsAbs(rel), nil
}

// DirSize returns the recursive total size in bytes of all regular files
// under root. Symlinks, devices, and other non-regular entries are
// skipped; a root that doesn't exist or isn't readable yields (0, err).
func DirSize(root string) (uint64, error) {
	var total uint64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, ierr := d.Info()
			if ierr != nil {
				return ierr
			}
			total += uint64(info.Size())
		}
		return nil
	})

	return total, err
}

// DirFileCount returns the recursive count of regular files under root,
// skipping directories, symlinks, and other non-regular entries.
func DirFileCount(root string) (int, error) {
	var count int

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})

	return count, err
}
