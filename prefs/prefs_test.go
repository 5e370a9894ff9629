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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/saturnemu/satcore/prefs"
	"github.com/saturnemu/satcore/test"
)

func tmpFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(os.TempDir(), "satcore_prefs_test")
}

func readFile(t *testing.T, fn string) string {
	t.Helper()
	data, err := os.ReadFile(fn)
	test.ExpectSuccess(t, err)
	return string(data)
}

func TestBool(t *testing.T) {
	fn := tmpFile(t)
	defer os.Remove(fn)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectSuccess(t, err)

	var v, w prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("not-a-bool"))
	test.ExpectSuccess(t, dsk.Save())

	expected := fmt.Sprintf("%s\ntest :: true\ntestB :: false\n", prefs.WarningBoilerPlate)
	test.Equate(t, readFile(t, fn), expected)
}

func TestIntRoundTrip(t *testing.T) {
	fn := tmpFile(t)
	defer os.Remove(fn)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, v.Set(99))
	test.ExpectSuccess(t, dsk.Save())

	v.Set(0)
	test.ExpectSuccess(t, dsk.Load())
	test.Equate(t, v.Get(), 99)

	test.ExpectFailure(t, v.Set("not-a-number"))
}

func TestGeneric(t *testing.T) {
	fn := tmpFile(t)
	defer os.Remove(fn)

	dsk, err := prefs.NewDisk(fn)
	test.ExpectSuccess(t, err)

	var w, h int
	v := prefs.NewGeneric(
		func(s prefs.Value) error {
			_, err := fmt.Sscanf(s.(string), "%d,%d", &w, &h)
			return err
		},
		func() prefs.Value {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	test.ExpectSuccess(t, dsk.Add("resolution", v))

	w, h = 352, 256
	test.ExpectSuccess(t, dsk.Save())

	w, h = 0, 0
	test.ExpectSuccess(t, dsk.Load())
	test.Equate(t, w, 352)
	test.Equate(t, h, 256)
}
