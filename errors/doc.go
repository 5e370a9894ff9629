// This file is part of Saturn Core.
//
// Saturn Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Saturn Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Saturn Core.  If not, see <https://www.gnu.org/licenses/>.


// Package errors implements a curated error scheme used throughout the
// emulator core. Components raise a predefined message constant through
// Errorf rather than composing ad-hoc strings, so callers can classify a
// failure with Is()/Head() instead of comparing raw text.
//
// The taxonomy follows spec §7: input errors, protocol errors, state
// validation errors and resource errors. None of these ever panic the
// emulator; a missing IPL is reported as a load-time failure by
// Saturn.LoadIPL, and RunFrame itself returns no error.
package errors
