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


// Package demosaic reconstructs RGB or monochrome images from raw
// single-channel RGGB bayer sensor readouts with Malvar-He-Cutler
// linear interpolation.
//
// Based on:
// H. S. Malvar, Li-wei He and R. Cutler, "High-quality linear
// interpolation for demosaicing of Bayer-patterned color images",
// ICASSP 2004, doi: 10.1109/ICASSP.2004.1326587.
//
// The bayer pattern is fixed RGGB: (even row, even col) is red,
// (odd row, odd col) is blue, the rest is green. Six operation flavors
// exist, { 8-bit, 16-bit } input x { RGB, mono } output plus the two
// 16-to-8-bit reducing variants. Each flavor has a row entry point,
// so row-oriented consumers (e.g. streaming encoders) can demosaic
// incrementally, and a full-image entry point that drives it over all
// rows. Output buffers are caller-owned and fully overwritten.
//
// Every operation is pure, synchronous and bounded-time. There is no
// soft error return: inputs either satisfy the documented
// preconditions or the call aborts through the pluggable fault handler
// (see Violation and SetFaultHandler). Rows are mutually independent,
// so callers may freely parallelize over the row entry points.
package demosaic

// Precondition checks. One validation pass runs per public operation;
// the full-image drivers validate once, not once per row. Each failed
// check ends up as a structured Violation in the fault handler.

func validateDims(op string, args *Args) {
	if args == nil {
		fail(Violation{Op: op, Check: "args != nil"})
	}
	if args.NRows < 2 {
		fail(Violation{Op: op, Check: "n_rows >= 2", Field: "n_rows", Value: float64(args.NRows)})
	}
	if args.NCols < 2 {
		fail(Violation{Op: op, Check: "n_cols >= 2", Field: "n_cols", Value: float64(args.NCols)})
	}
	if args.NRows%2 != 0 {
		fail(Violation{Op: op, Check: "n_rows % 2 == 0", Field: "n_rows", Value: float64(args.NRows)})
	}
	if args.NCols%2 != 0 {
		fail(Violation{Op: op, Check: "n_cols % 2 == 0", Field: "n_cols", Value: float64(args.NCols)})
	}
}

func validateInput[T Sample](op string, bayer []T, args *Args) {
	validateDims(op, args)
	if bayer == nil {
		fail(Violation{Op: op, Check: "bayer != nil"})
	}
	if int64(len(bayer)) < int64(args.NRows)*int64(args.NCols) {
		fail(Violation{Op: op, Check: "len(bayer) >= n_rows*n_cols", Field: "len(bayer)", Value: float64(len(bayer))})
	}
}

func validateRow(op string, args *Args, row int32) {
	if row < 0 || row >= args.NRows {
		fail(Violation{Op: op, Check: "0 <= row < n_rows", Field: "row", Value: float64(row)})
	}
}

func validateOutLen(op string, have int, need int64) {
	if int64(have) < need {
		fail(Violation{Op: op, Check: "len(out) >= required", Field: "len(out)", Value: float64(have)})
	}
}

func validate8Bit(op string, args *Args) {
	if args.MaxVal > 255 {
		fail(Violation{Op: op, Check: "max_val <= 255", Field: "max_val", Value: float64(args.MaxVal)})
	}
}

func validateShift(op string, args *Args) {
	if args.RShift < 0 {
		fail(Violation{Op: op, Check: "rshift >= 0", Field: "rshift", Value: float64(args.RShift)})
	}
	if int32(args.MaxVal)>>uint(args.RShift) > 255 {
		fail(Violation{Op: op, Check: "(max_val >> rshift) <= 255", Field: "max_val", Value: float64(args.MaxVal)})
	}
}

func validateCoefs(op string, args *Args) {
	c := args.Coefs
	if c.Red < 0 || c.Red > 1 {
		fail(Violation{Op: op, Check: "0 <= coefs.red <= 1", Field: "coefs.red", Value: c.Red})
	}
	if c.Green < 0 || c.Green > 1 {
		fail(Violation{Op: op, Check: "0 <= coefs.green <= 1", Field: "coefs.green", Value: c.Green})
	}
	if c.Blue < 0 || c.Blue > 1 {
		fail(Violation{Op: op, Check: "0 <= coefs.blue <= 1", Field: "coefs.blue", Value: c.Blue})
	}
}
