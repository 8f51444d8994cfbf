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
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mfinelli/nvshader"
)

// Status is the outcome of a single fossilize_replay invocation.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Progress is reported to the caller's callback at the start and the end
// of each unit of replay work.
type Progress struct {
	Total       int
	Completed   int
	Failed      int
	CurrentFile string
	Status      Status
}

// ProgressFunc receives a Progress snapshot; nil is a valid no-op callback.
type ProgressFunc func(Progress)

func report(cb ProgressFunc, p Progress) {
	if cb != nil {
		cb(p)
	}
}

// ReplayFile invokes fossilize_replay against a single .foz path and
// returns whether it completed (exit status 0) or failed. Standard
// streams from the child are discarded. The callback, if supplied,
// fires once before the child starts and once after it exits.
func ReplayFile(cfg Config, binary, path string, cb ProgressFunc) Status {
	report(cb, Progress{Total: 1, CurrentFile: path})

	args := []string{"--spirv-val", "0", "--num-threads", strconv.Itoa(numThreads(cfg))}
	if cfg.PipelineCacheDir != "" {
		args = append(args, "--pipeline-cache", cfg.PipelineCacheDir)
	}
	args = append(args, path)

	ctx, cancel := context.WithTimeout(context.Background(), timeout(cfg))
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)

	status := StatusCompleted
	if err := cmd.Run(); err != nil {
		status = StatusFailed
	}

	completed, failed := 0, 0
	if status == StatusCompleted {
		completed = 1
	} else {
		failed = 1
	}
	report(cb, Progress{Total: 1, Completed: completed, Failed: failed, CurrentFile: path, Status: status})

	return status
}

// ReplayDirectory runs ReplayFile sequentially over every .foz file
// directly inside dir and aggregates the outcome counts.
func ReplayDirectory(cfg Config, binary, dir string, cb ProgressFunc) (completed, failed int, err error) {
	entries, rerr := os.ReadDir(dir)
	if rerr != nil {
		return 0, 0, rerr
	}

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != nvshader.KindFossilize.Ext() {
			continue
		}
		status := ReplayFile(cfg, binary, filepath.Join(dir, e.Name()), cb)
		if status == StatusCompleted {
			completed++
		} else {
			failed++
		}
	}

	return completed, failed, nil
}

// ManagerResult aggregates replay totals across a manager's full entry
// set.
type ManagerResult struct {
	Completed int
	Failed    int
	Skipped   int
}

// ReplayEntries iterates entries, skipping anything that isn't a
// fossilize-kind cache, and dispatches each remaining one to file- or
// directory-level replay depending on IsDirectory. The callback fires
// once per entry at start and end (in addition to ReplayFile's own
// per-file firing).
func ReplayEntries(cfg Config, binary string, entries []*nvshader.CacheEntry, cb ProgressFunc) ManagerResult {
	var result ManagerResult

	for _, e := range entries {
		if e.Kind.Short() != nvshader.KindFossilize.Short() {
			result.Skipped++
			continue
		}

		report(cb, Progress{Total: len(entries), CurrentFile: e.Path})

		status := StatusFailed
		if e.IsDirectory {
			completed, failed, err := ReplayDirectory(cfg, binary, e.Path, cb)
			if err != nil {
				result.Failed++
			} else {
				result.Completed += completed
				result.Failed += failed
				if failed == 0 {
					status = StatusCompleted
				}
			}
		} else {
			status = ReplayFile(cfg, binary, e.Path, cb)
			if status == StatusCompleted {
				result.Completed++
			} else {
				result.Failed++
			}
		}

		report(cb, Progress{Total: len(entries), Completed: result.Completed, Failed: result.Failed, CurrentFile: e.Path, Status: status})
	}

	return result
}

func numThreads(cfg Config) int {
	if cfg.NumThreads <= 0 {
		return DefaultConfig().NumThreads
	}
	return cfg.NumThreads
}

func timeout(cfg Config) time.Duration {
	ms := cfg.TimeoutMs
	if ms <= 0 {
		ms = DefaultConfig().TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}
