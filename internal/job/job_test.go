// Copyright (C) 2020 The demosaic authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package job

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/abcouwer-jpl/demosaic/internal/bayerio"
	"github.com/valyala/fastrand"
)

// writeTestRaster writes an nRows x nCols random 12-bit bayer PGM and
// returns its path.
func writeTestRaster(t *testing.T, dir string, nRows, nCols int32) string {
	rng := fastrand.RNG{}
	rng.Seed(42)
	samples := make([]uint16, int(nRows)*int(nCols))
	for i := range samples {
		samples[i] = uint16(rng.Uint32n(4096))
	}
	fileName := filepath.Join(dir, "raster.pgm")
	err := bayerio.WritePGM16ToFile(fileName, samples, nRows, nCols, 4095)
	if err != nil {
		t.Fatalf("writing raster: %s", err.Error())
	}
	return fileName
}

func TestRunRGB16To8(t *testing.T) {
	dir := t.TempDir()
	input := writeTestRaster(t, dir, 8, 8)
	output := filepath.Join(dir, "out.bmp")

	j := Job{Input: input, Output: output, Flavor: FlavorRGB16To8}
	log := bytes.Buffer{}
	if err := j.Run(&log); err != nil {
		t.Fatalf("run error %s", err.Error())
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output missing: %s", err.Error())
	}
}

func TestRunMono16(t *testing.T) {
	dir := t.TempDir()
	input := writeTestRaster(t, dir, 8, 8)
	output := filepath.Join(dir, "out.pgm")

	j := Job{Input: input, Output: output, Flavor: FlavorMono16, Workers: 2}
	log := bytes.Buffer{}
	if err := j.Run(&log); err != nil {
		t.Fatalf("run error %s", err.Error())
	}
	r, err := bayerio.ReadPGMFromFile(output)
	if err != nil {
		t.Fatalf("reading output: %s", err.Error())
	}
	if r.NRows != 8 || r.NCols != 8 || r.MaxVal != 4095 {
		t.Errorf("got %dx%d maxval %d, expected 8x8 maxval 4095", r.NRows, r.NCols, r.MaxVal)
	}
}

func TestRunRejectsDepthMismatch(t *testing.T) {
	dir := t.TempDir()
	input := writeTestRaster(t, dir, 8, 8)

	j := Job{Input: input, Output: filepath.Join(dir, "out.bmp"), Flavor: FlavorRGB8}
	log := bytes.Buffer{}
	if err := j.Run(&log); err == nil {
		t.Errorf("expected depth mismatch error, got none")
	}
}

func TestRunRejectsUnknownFlavor(t *testing.T) {
	dir := t.TempDir()
	input := writeTestRaster(t, dir, 8, 8)

	j := Job{Input: input, Output: filepath.Join(dir, "out.bmp"), Flavor: "sepia"}
	log := bytes.Buffer{}
	if err := j.Run(&log); err == nil {
		t.Errorf("expected unknown flavor error, got none")
	}
}

func TestRunReportsViolation(t *testing.T) {
	dir := t.TempDir()
	// odd dimensions violate the even-size contract
	input := writeTestRaster(t, dir, 7, 8)

	j := Job{Input: input, Output: filepath.Join(dir, "out.tif"), Flavor: FlavorRGB16}
	log := bytes.Buffer{}
	if err := j.Run(&log); err == nil {
		t.Errorf("expected contract violation error, got none")
	}
}

func TestDeriveShift(t *testing.T) {
	cases := []struct {
		maxVal uint16
		shift  int32
	}{
		{255, 0},
		{256, 1},
		{1023, 2},
		{4095, 4},
		{65535, 8},
	}
	for _, c := range cases {
		if got := deriveShift(c.maxVal); got != c.shift {
			t.Errorf("deriveShift(%d): got %d, expected %d", c.maxVal, got, c.shift)
		}
	}
}
