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

import "time"

// Clock is the one seam this engine uses instead of calling time.Now()
// directly, so retention and archive-export tests can supply a fixed
// instant. Real callers use RealClock{}.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock implements Clock by always returning a fixed instant. Useful
// in tests that exercise age-based retention without depending on wall-clock
// timing.
type FixedClock struct{ At time.Time }

func (f FixedClock) Now() time.Time { return f.At }
