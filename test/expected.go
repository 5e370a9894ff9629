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


// Package test provides the small set of assertion helpers used by every
// _test.go file in this module instead of a third-party assertion library.
// The emulator core has no other reason to depend on testify/require, and
// neither does its test suite.
package test

import (
	"math"
	"reflect"
	"testing"
)

// ExpectFailure checks that v represents a failure: false, a non-nil error,
// or a non-nil error wrapped in any other way.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()

	switch vv := v.(type) {
	case bool:
		if vv {
			t.Errorf("expected failure, got success")
		}
	case error:
		if vv == nil {
			t.Errorf("expected failure (error), got nil")
		}
	default:
		t.Errorf("unsupported type in ExpectFailure: %T", v)
	}
}

// ExpectSuccess checks that v represents success: true, a nil error, or nil.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()

	switch vv := v.(type) {
	case bool:
		if !vv {
			t.Errorf("expected success, got failure")
		}
	case error:
		if vv != nil {
			t.Errorf("expected success, got error: %v", vv)
		}
	case nil:
		// ok
	default:
		t.Errorf("unsupported type in ExpectSuccess: %T", v)
	}
}

// ExpectEquality checks a and b are equal according to reflect.DeepEqual.
func ExpectEquality(t *testing.T, a, b interface{}) {
	t.Helper()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected equality: %v != %v", a, b)
	}
}

// ExpectInequality checks a and b are not equal.
func ExpectInequality(t *testing.T, a, b interface{}) {
	t.Helper()
	if reflect.DeepEqual(a, b) {
		t.Errorf("expected inequality: %v == %v", a, b)
	}
}

// ExpectApproximate checks a and b differ by no more than tolerance.
func ExpectApproximate(t *testing.T, a, b float64, tolerance float64) {
	t.Helper()
	if math.Abs(a-b) > tolerance {
		t.Errorf("expected %v to be within %v of %v", a, tolerance, b)
	}
}

// Equate is a terser alias for ExpectEquality, used where the expected
// value reads better in the second position.
func Equate(t *testing.T, a, b interface{}) {
	t.Helper()
	ExpectEquality(t, a, b)
}
