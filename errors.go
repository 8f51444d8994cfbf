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

package nvshader

import "errors"

// Sentinel errors for the closed failure-kind set described by the design.
// Callers branch on these with errors.Is; every package in this module
// wraps them with fmt.Errorf("...: %w", ...) rather than inventing new
// exception types.
var (
	// ErrNoHomeDir is raised by the path resolver when $HOME is unset.
	ErrNoHomeDir = errors.New("nvshader: $HOME is not set")

	// ErrInvalidCacheFile is raised by the typed parser when a dxvk/vkd3d
	// header or payload does not meet the format's invariants.
	ErrInvalidCacheFile = errors.New("nvshader: invalid cache file")

	// ErrCacheTooLarge names a typed-parser payload whose length would
	// overflow native size limits. No function in this module returns it;
	// ParseDXVKHeader reports every rejected file as ErrInvalidCacheFile.
	ErrCacheTooLarge = errors.New("nvshader: cache file payload too large")

	// ErrInvalidManifest is raised by the archive/package importer when a
	// manifest is missing a required field or has the wrong shape.
	ErrInvalidManifest = errors.New("nvshader: invalid manifest")

	// ErrUnsupportedManifest is raised by the archive/package importer when
	// a manifest names a version this engine does not understand.
	ErrUnsupportedManifest = errors.New("nvshader: unsupported manifest version")

	// ErrInvalidPackage names a package bundle that is missing its entries
	// array or has the wrong shape. The package importer does not return
	// it: an undecodable package manifest is reported as
	// ErrInvalidManifest, and a missing entries array imports as empty.
	ErrInvalidPackage = errors.New("nvshader: invalid package")

	// ErrFossilizeNotFound is raised by the replay orchestrator when no
	// fossilize_replay binary can be located.
	ErrFossilizeNotFound = errors.New("nvshader: fossilize_replay binary not found")

	// ErrBindFailed, ErrListenFailed, ErrConnectFailed and ErrSendFailed
	// wrap OS socket-layer failures in the P2P subsystem.
	// ErrSocketCreateFailed belongs to the same set, but no P2P call
	// returns it: a socket that cannot be created surfaces as the bind,
	// listen or connect error of the call that creates it.
	ErrSocketCreateFailed = errors.New("nvshader: socket create failed")
	ErrBindFailed         = errors.New("nvshader: socket bind failed")
	ErrListenFailed       = errors.New("nvshader: socket listen failed")
	ErrConnectFailed      = errors.New("nvshader: socket connect failed")
	ErrSendFailed         = errors.New("nvshader: socket send failed")

	// ErrInvalidAddress is raised when a dotted-quad address fails to
	// parse or has an out-of-range octet.
	ErrInvalidAddress = errors.New("nvshader: invalid address")
)
