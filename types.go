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

// A Sample is one sensor readout value, 8 or 16 bits unsigned.
type Sample interface {
	~uint8 | ~uint16
}

// LumaCoefs weight the three color channels when projecting RGB to
// monochrome. Each must be in [0,1]. They are re-normalized to sum to
// one on every use, never cached.
type LumaCoefs struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Rec.601 luma weights, the usual default for mono output.
var Rec601 = LumaCoefs{Red: 0.299, Green: 0.587, Blue: 0.114}

// normalized scales the coefficients to sum to one. The epsilon in the
// denominator guards against an all-zero coefficient set.
func (c LumaCoefs) normalized() LumaCoefs {
	sum := c.Red + c.Green + c.Blue + 1e-6
	return LumaCoefs{Red: c.Red / sum, Green: c.Green / sum, Blue: c.Blue / sum}
}

// Args describe one demosaicing call. Immutable and caller-owned;
// passed by reference on every call, no state survives a call.
type Args struct {
	NRows  int32     `json:"nRows"`  // rows in the bayer image, even, >= 2
	NCols  int32     `json:"nCols"`  // columns in the bayer image, even, >= 2
	MaxVal uint16    `json:"maxVal"` // inclusive input sample ceiling, e.g. 0x0fff for 12-bit data
	RShift int32     `json:"rShift"` // right shift for the 16-to-8-bit reducing flavors
	Coefs  LumaCoefs `json:"coefs"`  // luma coefficients for the mono flavors
}

// A PixRGB16 is one 3x16-bit RGB output pixel.
type PixRGB16 struct {
	Red, Green, Blue uint16
}

// A PixRGB8 is one 3x8-bit RGB output pixel.
type PixRGB8 struct {
	Red, Green, Blue uint8
}
