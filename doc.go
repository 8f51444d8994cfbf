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

// Package nvshader is the cache engine for a local GPU shader cache
// manager: discovery, scanning, association, retention, replay,
// watching, archiving and LAN sharing of DXVK/vkd3d-proton/NVIDIA/Mesa/
// Fossilize shader caches.
//
// The command-line front end, status formatting, FFI bindings and the
// local IPC daemon are external collaborators built on top of this
// package; they are not part of it.
package nvshader
