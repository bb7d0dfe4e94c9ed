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


package demosaic

import (
	"math"
	"testing"

	"github.com/valyala/fastrand"

	"github.com/abcouwer-jpl/demosaic/internal/quality"
)

// mosaicSample picks the channel the RGGB pattern keeps at (row, col).
func mosaicSample(px PixRGB16, row, col int32) uint16 {
	switch {
	case row%2 == 0 && col%2 == 0:
		return px.Red
	case row%2 == 1 && col%2 == 1:
		return px.Blue
	default:
		return px.Green
	}
}

// makeRandom16 builds a random per-channel truth image and quantizes
// it into an RGGB mosaic.
func makeRandom16(rng *fastrand.RNG, args *Args) (truth []PixRGB16, bayer []uint16) {
	n := int(args.NRows) * int(args.NCols)
	truth = make([]PixRGB16, n)
	bayer = make([]uint16, n)
	for row := int32(0); row < args.NRows; row++ {
		for col := int32(0); col < args.NCols; col++ {
			px := PixRGB16{
				Red:   uint16(rng.Uint32n(uint32(args.MaxVal) + 1)),
				Green: uint16(rng.Uint32n(uint32(args.MaxVal) + 1)),
				Blue:  uint16(rng.Uint32n(uint32(args.MaxVal) + 1)),
			}
			truth[row*args.NCols+col] = px
			bayer[row*args.NCols+col] = mosaicSample(px, row, col)
		}
	}
	return truth, bayer
}

// makeFlat16 builds an RGGB mosaic of a constant (r,g,b) triple.
func makeFlat16(args *Args, r, g, b uint16) []uint16 {
	bayer := make([]uint16, int(args.NRows)*int(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		for col := int32(0); col < args.NCols; col++ {
			bayer[row*args.NCols+col] = mosaicSample(PixRGB16{r, g, b}, row, col)
		}
	}
	return bayer
}

// luma projects a 16-bit pixel the way the mono emitters do.
func luma(px PixRGB16, coefs LumaCoefs) uint16 {
	c := coefs.normalized()
	return uint16(c.Red*float64(px.Red) + c.Green*float64(px.Green) + c.Blue*float64(px.Blue) + 0.5)
}

// Safe and fast paths must be value-identical for every row and
// column, across all six flavors.
func TestRowPathEquivalence(t *testing.T) {
	rng := &fastrand.RNG{}
	rng.Seed(42)

	args := &Args{NRows: 12, NCols: 10, MaxVal: 4095, RShift: 4, Coefs: Rec601}
	_, bayer := makeRandom16(rng, args)
	nCols := args.NCols

	for row := int32(0); row < args.NRows; row++ {
		gotRGB := make([]PixRGB16, nCols)
		wantRGB := make([]PixRGB16, nCols)
		RowRGB16(bayer, args, row, gotRGB)
		demosaicRowSafe(bayer, args, row, emitRGB16(wantRGB))
		for col := range gotRGB {
			if gotRGB[col] != wantRGB[col] {
				t.Errorf("rgb16 row=%d col=%d got=%v; want %v", row, col, gotRGB[col], wantRGB[col])
			}
		}

		gotR8 := make([]PixRGB8, nCols)
		wantR8 := make([]PixRGB8, nCols)
		RowRGB16To8(bayer, args, row, gotR8)
		demosaicRowSafe(bayer, args, row, emitRGB16To8(wantR8, int32(args.MaxVal), args.RShift))
		for col := range gotR8 {
			if gotR8[col] != wantR8[col] {
				t.Errorf("rgb16to8 row=%d col=%d got=%v; want %v", row, col, gotR8[col], wantR8[col])
			}
		}

		gotM16 := make([]uint16, nCols)
		wantM16 := make([]uint16, nCols)
		RowMono16(bayer, args, row, gotM16)
		demosaicRowSafe(bayer, args, row, emitMono(wantM16, args.Coefs))
		for col := range gotM16 {
			if gotM16[col] != wantM16[col] {
				t.Errorf("mono16 row=%d col=%d got=%d; want %d", row, col, gotM16[col], wantM16[col])
			}
		}

		gotM8 := make([]uint8, nCols)
		wantM8 := make([]uint8, nCols)
		RowMono16To8(bayer, args, row, gotM8)
		demosaicRowSafe(bayer, args, row, emitMono16To8(wantM8, args.Coefs, int32(args.MaxVal), args.RShift))
		for col := range gotM8 {
			if gotM8[col] != wantM8[col] {
				t.Errorf("mono16to8 row=%d col=%d got=%d; want %d", row, col, gotM8[col], wantM8[col])
			}
		}
	}

	// 8-bit input flavors
	args8 := &Args{NRows: 12, NCols: 10, MaxVal: 255, Coefs: Rec601}
	bayer8 := make([]uint8, int(args8.NRows)*int(args8.NCols))
	for i := range bayer8 {
		bayer8[i] = uint8(rng.Uint32n(256))
	}
	for row := int32(0); row < args8.NRows; row++ {
		got := make([]PixRGB8, args8.NCols)
		want := make([]PixRGB8, args8.NCols)
		RowRGB8(bayer8, args8, row, got)
		demosaicRowSafe(bayer8, args8, row, emitRGB8(want))
		for col := range got {
			if got[col] != want[col] {
				t.Errorf("rgb8 row=%d col=%d got=%v; want %v", row, col, got[col], want[col])
			}
		}

		gotM := make([]uint8, args8.NCols)
		wantM := make([]uint8, args8.NCols)
		RowMono8(bayer8, args8, row, gotM)
		demosaicRowSafe(bayer8, args8, row, emitMono(wantM, args8.Coefs))
		for col := range gotM {
			if gotM[col] != wantM[col] {
				t.Errorf("mono8 row=%d col=%d got=%d; want %d", row, col, gotM[col], wantM[col])
			}
		}
	}
}

// The full-image driver is exactly the row driver over all rows.
func TestImageMatchesRowCalls(t *testing.T) {
	rng := &fastrand.RNG{}
	rng.Seed(7)

	args := &Args{NRows: 8, NCols: 12, MaxVal: 1023, Coefs: Rec601}
	_, bayer := makeRandom16(rng, args)
	n := int(args.NRows) * int(args.NCols)

	img := make([]PixRGB16, n)
	RGB16(bayer, args, img)
	rowBuf := make([]PixRGB16, args.NCols)
	for row := int32(0); row < args.NRows; row++ {
		RowRGB16(bayer, args, row, rowBuf)
		for col := int32(0); col < args.NCols; col++ {
			if img[row*args.NCols+col] != rowBuf[col] {
				t.Errorf("row=%d col=%d image=%v; row call=%v", row, col, img[row*args.NCols+col], rowBuf[col])
			}
		}
	}
}

// Kernel overshoot must saturate, never wrap, and never exceed the
// configured ceiling. A 0/max checkerboard maximizes overshoot in
// both directions.
func TestSaturationBound(t *testing.T) {
	args := &Args{NRows: 10, NCols: 10, MaxVal: 4095, RShift: 4, Coefs: Rec601}
	bayer := make([]uint16, int(args.NRows)*int(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		for col := int32(0); col < args.NCols; col++ {
			if (row+col)%2 == 0 {
				bayer[row*args.NCols+col] = args.MaxVal
			}
		}
	}
	n := len(bayer)

	rgb := make([]PixRGB16, n)
	RGB16(bayer, args, rgb)
	for i, px := range rgb {
		if px.Red > args.MaxVal || px.Green > args.MaxVal || px.Blue > args.MaxVal {
			t.Errorf("rgb16[%d]=%v exceeds max_val %d", i, px, args.MaxVal)
		}
	}

	maxShifted := uint8(args.MaxVal >> uint(args.RShift))
	rgb8 := make([]PixRGB8, n)
	RGB16To8(bayer, args, rgb8)
	for i, px := range rgb8 {
		if px.Red > maxShifted || px.Green > maxShifted || px.Blue > maxShifted {
			t.Errorf("rgb16to8[%d]=%v exceeds shifted ceiling %d", i, px, maxShifted)
		}
	}

	mono := make([]uint16, n)
	Mono16(bayer, args, mono)
	for i, v := range mono {
		if v > args.MaxVal {
			t.Errorf("mono16[%d]=%d exceeds max_val %d", i, v, args.MaxVal)
		}
	}
}

// A mosaic whose 2x2 tiles encode a constant triple must reproduce
// that triple. The kernel weight sums cancel exactly on flat fields,
// so reconstruction is exact, including at the reflected edges.
func TestFlatFieldReconstruction(t *testing.T) {
	args := &Args{NRows: 8, NCols: 8, MaxVal: 4095, RShift: 4, Coefs: Rec601}
	n := int(args.NRows) * int(args.NCols)
	tcs := []PixRGB16{
		{1000, 2000, 3000},
		{4095, 0, 0},
		{0, 4095, 0},
		{0, 0, 4095},
		{123, 456, 789},
		{4095, 4095, 4095},
	}
	for _, want := range tcs {
		bayer := makeFlat16(args, want.Red, want.Green, want.Blue)

		rgb := make([]PixRGB16, n)
		RGB16(bayer, args, rgb)
		for i, px := range rgb {
			if px != want {
				t.Errorf("flat %v: rgb16[%d]=%v", want, i, px)
			}
		}

		rgb8 := make([]PixRGB8, n)
		RGB16To8(bayer, args, rgb8)
		want8 := PixRGB8{uint8(want.Red >> 4), uint8(want.Green >> 4), uint8(want.Blue >> 4)}
		for i, px := range rgb8 {
			if px != want8 {
				t.Errorf("flat %v: rgb16to8[%d]=%v; want %v", want, i, px, want8)
			}
		}

		mono := make([]uint16, n)
		Mono16(bayer, args, mono)
		wantMono := luma(want, args.Coefs)
		for i, v := range mono {
			if d := int(v) - int(wantMono); d < -1 || d > 1 {
				t.Errorf("flat %v: mono16[%d]=%d; want %d +-1", want, i, v, wantMono)
			}
		}
	}
}

// Loose sanity bound: reconstruction error on random noise stays below
// half the sample ceiling.
func TestRandomImageRMSBound(t *testing.T) {
	rng := &fastrand.RNG{}
	rng.Seed(1234)

	args := &Args{NRows: 32, NCols: 32, MaxVal: 4095, Coefs: Rec601}
	truth, bayer := makeRandom16(rng, args)
	n := len(truth)

	rgb := make([]PixRGB16, n)
	RGB16(bayer, args, rgb)

	want := make([]float64, 0, 3*n)
	got := make([]float64, 0, 3*n)
	for i := range truth {
		want = append(want, float64(truth[i].Red), float64(truth[i].Green), float64(truth[i].Blue))
		got = append(got, float64(rgb[i].Red), float64(rgb[i].Green), float64(rgb[i].Blue))
	}
	bound := float64(args.MaxVal) / 2
	if rms := quality.RMS(want, got); rms >= bound {
		t.Errorf("rgb16 RMS=%f; want < %f", rms, bound)
	}

	mono := make([]uint16, n)
	Mono16(bayer, args, mono)
	wantM := make([]float64, n)
	gotM := make([]float64, n)
	for i := range truth {
		wantM[i] = float64(luma(truth[i], args.Coefs))
		gotM[i] = float64(mono[i])
	}
	if rms := quality.RMS(wantM, gotM); rms >= bound {
		t.Errorf("mono16 RMS=%f; want < %f", rms, bound)
	}
}

// Mono output is exactly the luma projection of the RGB output:
// both paths compose the same channels from the same kernels.
func TestMonoMatchesRGBProjection(t *testing.T) {
	rng := &fastrand.RNG{}
	rng.Seed(99)

	args := &Args{NRows: 10, NCols: 14, MaxVal: 4095, Coefs: Rec601}
	_, bayer := makeRandom16(rng, args)
	n := len(bayer)

	rgb := make([]PixRGB16, n)
	RGB16(bayer, args, rgb)
	mono := make([]uint16, n)
	Mono16(bayer, args, mono)

	for i := range mono {
		if want := luma(rgb[i], args.Coefs); mono[i] != want {
			t.Errorf("mono16[%d]=%d; want %d from rgb %v", i, mono[i], want, rgb[i])
		}
	}
}

// The int32 accumulator must hold the worst-case kernel sum, and an
// all-maximum image must come out pinned at the ceiling, not wrapped.
func TestAccumulatorHeadroom(t *testing.T) {
	// largest absolute weight sum across the four kernels is 28
	// (red/blue-from-row: 1+2+2+2+8+10+8+2+2+2+1)
	if worst := int64(28) * 65535; worst >= math.MaxInt32 {
		t.Errorf("worst-case kernel sum %d overflows int32", worst)
	}

	args := &Args{NRows: 8, NCols: 8, MaxVal: 65535, Coefs: Rec601}
	bayer := make([]uint16, int(args.NRows)*int(args.NCols))
	for i := range bayer {
		bayer[i] = 65535
	}
	rgb := make([]PixRGB16, len(bayer))
	RGB16(bayer, args, rgb)
	want := PixRGB16{65535, 65535, 65535}
	for i, px := range rgb {
		if px != want {
			t.Errorf("rgb16[%d]=%v; want %v", i, px, want)
		}
	}
}

func TestAllZeroImage(t *testing.T) {
	args := &Args{NRows: 4, NCols: 4, MaxVal: 4095, RShift: 4, Coefs: Rec601}
	bayer := make([]uint16, 16)

	rgb := make([]PixRGB16, 16)
	RGB16(bayer, args, rgb)
	for i, px := range rgb {
		if px != (PixRGB16{}) {
			t.Errorf("rgb16[%d]=%v; want zero", i, px)
		}
	}

	rgb8 := make([]PixRGB8, 16)
	RGB16To8(bayer, args, rgb8)
	for i, px := range rgb8 {
		if px != (PixRGB8{}) {
			t.Errorf("rgb16to8[%d]=%v; want zero", i, px)
		}
	}

	mono := make([]uint16, 16)
	Mono16(bayer, args, mono)
	mono8 := make([]uint8, 16)
	Mono16To8(bayer, args, mono8)
	for i := range mono {
		if mono[i] != 0 {
			t.Errorf("mono16[%d]=%d; want 0", i, mono[i])
		}
		if mono8[i] != 0 {
			t.Errorf("mono16to8[%d]=%d; want 0", i, mono8[i])
		}
	}
}

// Saturated red field: RGB reconstructs (4095,0,0) exactly and mono
// comes out at round(0.299*4095)=1224 with Rec.601 weights.
func TestConstantRedField(t *testing.T) {
	args := &Args{NRows: 8, NCols: 8, MaxVal: 4095, Coefs: Rec601}
	bayer := makeFlat16(args, 4095, 0, 0)
	n := len(bayer)

	rgb := make([]PixRGB16, n)
	RGB16(bayer, args, rgb)
	want := PixRGB16{4095, 0, 0}
	for i, px := range rgb {
		if px != want {
			t.Errorf("rgb16[%d]=%v; want %v", i, px, want)
		}
	}

	mono := make([]uint16, n)
	Mono16(bayer, args, mono)
	for i, v := range mono {
		if v != 1224 {
			t.Errorf("mono16[%d]=%d; want 1224", i, v)
		}
	}
}
