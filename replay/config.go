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

// Package replay invokes the external fossilize_replay tool to warm
// Vulkan pipeline caches ahead of time, and reports per-file progress.
// Shader compilation itself always happens inside that external child
// process; this package only locates it, runs it, and interprets its
// exit status.
package replay

// Config controls how replay locates and invokes fossilize_replay.
type Config struct {
	// ReplayBinary overrides the probing order entirely when non-empty.
	ReplayBinary string

	// NumThreads is passed to fossilize_replay as --num-threads.
	NumThreads int

	// PipelineCacheDir, if set, is passed as --pipeline-cache.
	PipelineCacheDir string

	// TimeoutMs bounds how long a single fossilize_replay invocation may
	// run before it is killed.
	TimeoutMs int

	// SkipValidation is loaded and carried with the rest of the config,
	// but ReplayFile does not read it: it always passes --spirv-val 0.
	SkipValidation bool
}

// DefaultConfig returns the configuration replay uses when the caller
// supplies no overrides.
func DefaultConfig() Config {
	return Config{
		NumThreads:     4,
		TimeoutMs:      30000,
		SkipValidation: true,
	}
}
