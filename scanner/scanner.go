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

// Package scanner walks the cache roots the paths package resolves and
// turns whatever it finds into nvshader.CacheEntry values: typed dxvk/
// vkd3d-proton files, Fossilize containers, and NVIDIA/Mesa/Steam
// directory-based caches.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mfinelli/nvshader"
	"github.com/mfinelli/nvshader/paths"
)

// Scan walks every resolved root in cp and returns the entries it finds.
// A failure parsing or statting any single artifact is dropped silently
// (best-effort enumeration, per the design); no warnings are collected or
// returned for the skipped artifacts.
func Scan(cp paths.CachePaths) []*nvshader.CacheEntry {
	var entries []*nvshader.CacheEntry

	if cp.DXVK != "" {
		entries = append(entries, scanTypedRoot(cp.DXVK, nvshader.KindDXVK)...)
	}
	if cp.Vkd3d != "" {
		entries = append(entries, scanTypedRoot(cp.Vkd3d, nvshader.KindVkd3d)...)
	}
	if cp.Fossilize != "" {
		entries = append(entries, scanFossilizeRoot(cp.Fossilize)...)
	}
	if cp.Nvidia != "" {
		entries = append(entries, scanNvidiaRoot(cp.Nvidia)...)
	}
	if cp.Mesa != "" {
		entries = append(entries, scanMesaRoot(cp.Mesa)...)
	}
	if cp.SteamShadercache != "" {
		entries = append(entries, scanSteamShadercacheRoot(cp.SteamShadercache)...)
	}

	return entries
}

// scanTypedRoot finds dxvk/vkd3d-proton state cache files directly under
// root (and any subdirectories underneath it) and parses their headers.
func scanTypedRoot(root string, kind nvshader.CacheKind) []*nvshader.CacheEntry {
	var out []*nvshader.CacheEntry

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), kind.Ext()) {
			return nil
		}

		header, count, _, perr := ReadDXVKFile(path)
		if perr != nil {
			return nil // malformed artifact: skip, don't abort the scan
		}
		_ = header

		info, serr := d.Info()
		if serr != nil || info.Size() <= 0 {
			return nil
		}

		size := uint64(info.Size())
		entry := &nvshader.CacheEntry{
			Path:         path,
			Kind:         kind,
			SizeBytes:    size,
			ModifiedTime: info.ModTime(),
			GameName:     strings.TrimSuffix(d.Name(), kind.Ext()),
			EntryCount:   &count,
		}
		out = append(out, entry)
		return nil
	})

	return out
}

// scanFossilizeRoot produces an entry for every .foz file and every
// content-bearing subdirectory directly under root.
func scanFossilizeRoot(root string) []*nvshader.CacheEntry {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var out []*nvshader.CacheEntry
	for _, e := range entries {
		full := filepath.Join(root, e.Name())

		if !e.IsDir() {
			if !strings.HasSuffix(e.Name(), nvshader.KindFossilize.Ext()) {
				continue
			}
			info, ierr := e.Info()
			if ierr != nil || info.Size() <= 0 {
				continue
			}
			out = append(out, &nvshader.CacheEntry{
				Path:         full,
				Kind:         nvshader.KindFossilize,
				SizeBytes:    uint64(info.Size()),
				ModifiedTime: info.ModTime(),
				GameName:     strings.TrimSuffix(e.Name(), nvshader.KindFossilize.Ext()),
			})
			continue
		}

		size, serr := paths.DirSize(full)
		if serr != nil || size == 0 {
			continue
		}
		mtime := modTimeOf(full)
		out = append(out, &nvshader.CacheEntry{
			Path:         full,
			Kind:         nvshader.KindFossilize,
			SizeBytes:    size,
			ModifiedTime: mtime,
			GameName:     fmt.Sprintf("Fossilize Cache %s", e.Name()),
			IsDirectory:  true,
		})
	}

	return out
}

// scanNvidiaRoot produces one entry per content-bearing subdirectory of
// the NVIDIA compute cache root ("Compute Cache <basename>"). If none of
// the subdirectories have content, it falls back to a single aggregate
// entry for the root itself, provided the root has content.
func scanNvidiaRoot(root string) []*nvshader.CacheEntry {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var out []*nvshader.CacheEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		full := filepath.Join(root, e.Name())
		size, serr := paths.DirSize(full)
		if serr != nil || size == 0 {
			continue
		}
		out = append(out, &nvshader.CacheEntry{
			Path:         full,
			Kind:         nvshader.KindNvidia,
			SizeBytes:    size,
			ModifiedTime: modTimeOf(full),
			GameName:     fmt.Sprintf("Compute Cache %s", e.Name()),
			IsDirectory:  true,
		})
	}

	if len(out) > 0 {
		return out
	}

	size, serr := paths.DirSize(root)
	if serr != nil || size == 0 {
		return nil
	}
	return []*nvshader.CacheEntry{{
		Path:         root,
		Kind:         nvshader.KindNvidia,
		SizeBytes:    size,
		ModifiedTime: modTimeOf(root),
		GameName:     "NVIDIA Driver Cache",
		IsDirectory:  true,
	}}
}

// scanMesaRoot produces a single aggregate entry for the whole Mesa
// shader cache root, if it has any content.
func scanMesaRoot(root string) []*nvshader.CacheEntry {
	size, err := paths.DirSize(root)
	if err != nil || size == 0 {
		return nil
	}
	return []*nvshader.CacheEntry{{
		Path:         root,
		Kind:         nvshader.KindMesa,
		SizeBytes:    size,
		ModifiedTime: modTimeOf(root),
		GameName:     "Mesa Shader Cache",
		IsDirectory:  true,
	}}
}

// scanSteamShadercacheRoot produces one entry per content-bearing
// per-appid subdirectory of Steam's shadercache root.
func scanSteamShadercacheRoot(root string) []*nvshader.CacheEntry {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var out []*nvshader.CacheEntry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		full := filepath.Join(root, e.Name())
		size, serr := paths.DirSize(full)
		if serr != nil || size == 0 {
			continue
		}
		out = append(out, &nvshader.CacheEntry{
			Path:         full,
			Kind:         nvshader.KindFossilize,
			SizeBytes:    size,
			ModifiedTime: modTimeOf(full),
			GameName:     fmt.Sprintf("Steam AppID %s", e.Name()),
			IsDirectory:  true,
		})
	}

	return out
}

func modTimeOf(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
