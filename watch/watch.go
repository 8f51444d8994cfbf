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

// Package watch observes cache directories for live shader-compilation
// activity via the kernel's file notification facility (inotify on
// Linux, through fsnotify).
package watch

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind is the logical classification of a raw filesystem event.
type EventKind string

const (
	EventCreated        EventKind = "created"
	EventDeleted        EventKind = "deleted"
	EventCompilationEnd EventKind = "compilation_end"
	EventModified       EventKind = "modified"
)

// Event is one classified, counted filesystem notification.
type Event struct {
	Path string
	Kind EventKind
}

// maxWatchedDirs mirrors the fixed set this engine registers: NVIDIA,
// Mesa, DXVK, vkd3d, and one existing Steam Fossilize location.
const maxWatchedDirs = 5

// Callback receives classified events as they're observed.
type Callback func(Event)

// Watcher wraps one fsnotify.Watcher, owning its kernel handle and its
// session-scoped event counters.
type Watcher struct {
	inner    *fsnotify.Watcher
	callback Callback
	counts   map[EventKind]int
	dirs     int
	stop     chan struct{}
	done     chan struct{}
}

// New creates a Watcher and registers it on every directory in dirs (up
// to maxWatchedDirs; directories beyond that are rejected). Directories
// that don't exist are skipped, matching the best-effort discovery
// posture used elsewhere in this engine.
func New(dirs []string, cb Callback) (*Watcher, error) {
	if len(dirs) > maxWatchedDirs {
		return nil, fmt.Errorf("watch: %d directories exceeds the %d-directory limit", len(dirs), maxWatchedDirs)
	}

	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create notifier: %w", err)
	}

	w := &Watcher{
		inner:    inner,
		callback: cb,
		counts:   make(map[EventKind]int),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, d := range dirs {
		if err := inner.Add(d); err != nil {
			continue
		}
		w.dirs++
	}

	return w, nil
}

// Counts returns a snapshot of the session-scoped per-kind event totals.
func (w *Watcher) Counts() map[EventKind]int {
	snapshot := make(map[EventKind]int, len(w.counts))
	for k, v := range w.counts {
		snapshot[k] = v
	}
	return snapshot
}

// Run polls for events at ~100ms cadence until Stop is called. It
// classifies each raw fsnotify event and invokes the registered
// callback, counting it in Counts.
func (w *Watcher) Run() {
	defer close(w.done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.inner.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case <-w.inner.Errors:
			// Malformed or overflowed notifications are dropped; the next
			// scan re-establishes truth regardless.
		case <-ticker.C:
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	kind := classify(ev)
	w.counts[kind]++
	if w.callback != nil {
		w.callback(Event{Path: ev.Name, Kind: kind})
	}
}

// classify maps a raw fsnotify event to one logical event kind, in
// create > delete > close-write > modify precedence order. fsnotify has
// no IN_CLOSE_WRITE flag of its own (only inotify's IN_MODIFY, surfaced
// as Write); a dxvk/vkd3d-proton cache is rewritten and closed in one
// burst per shader compiled, so a Write is treated as the close-write
// signal (compilation_end) and Chmod-only metadata touches fall back to
// modified.
func classify(ev fsnotify.Event) EventKind {
	switch {
	case ev.Has(fsnotify.Create):
		return EventCreated
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return EventDeleted
	case ev.Has(fsnotify.Write):
		return EventCompilationEnd
	default:
		return EventModified
	}
}

// Stop tears down the watcher's kernel handle and stops Run's poll loop.
func (w *Watcher) Stop() error {
	close(w.stop)
	<-w.done
	return w.inner.Close()
}
