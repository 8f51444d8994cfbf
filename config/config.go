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

// Package config loads the engine's configuration: replay tuning, root
// path overrides, and P2P toggles. Precedence is explicit path argument,
// then $XDG_CONFIG_HOME/nvshader/config.toml, then built-in defaults,
// mirroring the path resolver's own override -> env -> default chain.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/mfinelli/nvshader/paths"
	"github.com/mfinelli/nvshader/replay"
)

// Config is the fully resolved configuration for a Manager.
type Config struct {
	Replay replay.Config
	Paths  paths.Overrides

	// P2PEnabled toggles whether a Manager starts the multicast
	// discovery node at all.
	P2PEnabled bool
}

// Default returns the built-in configuration used when no config file is
// present and no overrides are supplied.
func Default() Config {
	return Config{
		Replay:     replay.DefaultConfig(),
		P2PEnabled: true,
	}
}

// Load resolves configuration per the precedence chain described in the
// package doc. An explicit path that doesn't parse is a hard error; a
// missing default path falls back to Default() silently, matching the
// teacher's initConfig posture of failing loudly only on malformed input.
func Load(explicitPath string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	setDefaults(v)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", explicitPath, err)
		}
		return decode(v)
	}

	defaultPath, err := xdg.ConfigFile("nvshader/config.toml")
	if err != nil {
		return Default(), nil
	}

	if _, err := os.Stat(defaultPath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	v.SetConfigFile(defaultPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", defaultPath, err)
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	def := Default().Replay

	v.SetDefault("replay.replay_binary", def.ReplayBinary)
	v.SetDefault("replay.num_threads", def.NumThreads)
	v.SetDefault("replay.pipeline_cache_dir", def.PipelineCacheDir)
	v.SetDefault("replay.timeout_ms", def.TimeoutMs)
	v.SetDefault("replay.skip_validation", def.SkipValidation)

	v.SetDefault("paths.dxvk", "")
	v.SetDefault("paths.vkd3d", "")
	v.SetDefault("paths.nvidia", "")
	v.SetDefault("paths.mesa", "")
	v.SetDefault("paths.fossilize", "")
	v.SetDefault("paths.steam_shadercache", "")

	v.SetDefault("p2p.enabled", true)
}

func decode(v *viper.Viper) (Config, error) {
	cfg := Config{
		Replay: replay.Config{
			ReplayBinary:     v.GetString("replay.replay_binary"),
			NumThreads:       v.GetInt("replay.num_threads"),
			PipelineCacheDir: v.GetString("replay.pipeline_cache_dir"),
			TimeoutMs:        v.GetInt("replay.timeout_ms"),
			SkipValidation:   v.GetBool("replay.skip_validation"),
		},
		Paths: paths.Overrides{
			DXVK:             v.GetString("paths.dxvk"),
			Vkd3d:            v.GetString("paths.vkd3d"),
			Nvidia:           v.GetString("paths.nvidia"),
			Mesa:             v.GetString("paths.mesa"),
			Fossilize:        v.GetString("paths.fossilize"),
			SteamShadercache: v.GetString("paths.steam_shadercache"),
		},
		P2PEnabled: v.GetBool("p2p.enabled"),
	}

	return cfg, nil
}
