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

// Mono output flavors. The luma projection is fused into the emitter:
// weighted sum of the composed channels, +0.5, truncate. The channels
// are already saturated and the normalized weights sum to one, so no
// clamp follows the projection. Coefficients are re-normalized on
// every call, never cached.

func emitMono[T Sample](out []T, coefs LumaCoefs) emitFunc {
	c := coefs.normalized()
	return func(col, r, g, b int32) {
		out[col] = T(c.Red*float64(r) + c.Green*float64(g) + c.Blue*float64(b) + 0.5)
	}
}

func emitMono16To8(out []uint8, coefs LumaCoefs, maxVal, rshift int32) emitFunc {
	c := coefs.normalized()
	maxShifted := uint8(maxVal >> uint(rshift))
	return func(col, r, g, b int32) {
		// reduce the channels to 8 bits first, then project
		rr := float64(reduce(r, maxVal, rshift, maxShifted))
		gg := float64(reduce(g, maxVal, rshift, maxShifted))
		bb := float64(reduce(b, maxVal, rshift, maxShifted))
		out[col] = uint8(c.Red*rr + c.Green*gg + c.Blue*bb + 0.5)
	}
}

// RowMono16 demosaics one row of a 16-bit bayer image into 16-bit
// luma, weighted by args.Coefs.
func RowMono16(bayer []uint16, args *Args, row int32, out []uint16) {
	const op = "RowMono16"
	validateInput(op, bayer, args)
	validateRow(op, args, row)
	validateCoefs(op, args)
	validateOutLen(op, len(out), int64(args.NCols))
	demosaicRow(bayer, args, row, emitMono(out, args.Coefs))
}

// Mono16 demosaics a 16-bit bayer image into 16-bit luma.
func Mono16(bayer []uint16, args *Args, out []uint16) {
	const op = "Mono16"
	validateInput(op, bayer, args)
	validateCoefs(op, args)
	validateOutLen(op, len(out), int64(args.NRows)*int64(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		demosaicRow(bayer, args, row, emitMono(out[row*args.NCols:(row+1)*args.NCols], args.Coefs))
	}
}

// RowMono8 demosaics one row of an 8-bit bayer image into 8-bit luma.
func RowMono8(bayer []uint8, args *Args, row int32, out []uint8) {
	const op = "RowMono8"
	validateInput(op, bayer, args)
	validateRow(op, args, row)
	validate8Bit(op, args)
	validateCoefs(op, args)
	validateOutLen(op, len(out), int64(args.NCols))
	demosaicRow(bayer, args, row, emitMono(out, args.Coefs))
}

// Mono8 demosaics an 8-bit bayer image into 8-bit luma.
func Mono8(bayer []uint8, args *Args, out []uint8) {
	const op = "Mono8"
	validateInput(op, bayer, args)
	validate8Bit(op, args)
	validateCoefs(op, args)
	validateOutLen(op, len(out), int64(args.NRows)*int64(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		demosaicRow(bayer, args, row, emitMono(out[row*args.NCols:(row+1)*args.NCols], args.Coefs))
	}
}

// RowMono16To8 demosaics one row of a 16-bit bayer image into 8-bit
// luma, right-shifting each channel by args.RShift before projecting.
func RowMono16To8(bayer []uint16, args *Args, row int32, out []uint8) {
	const op = "RowMono16To8"
	validateInput(op, bayer, args)
	validateRow(op, args, row)
	validateShift(op, args)
	validateCoefs(op, args)
	validateOutLen(op, len(out), int64(args.NCols))
	demosaicRow(bayer, args, row, emitMono16To8(out, args.Coefs, int32(args.MaxVal), args.RShift))
}

// Mono16To8 demosaics a 16-bit bayer image into 8-bit luma.
func Mono16To8(bayer []uint16, args *Args, out []uint8) {
	const op = "Mono16To8"
	validateInput(op, bayer, args)
	validateShift(op, args)
	validateCoefs(op, args)
	validateOutLen(op, len(out), int64(args.NRows)*int64(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		demosaicRow(bayer, args, row, emitMono16To8(out[row*args.NCols:(row+1)*args.NCols], args.Coefs, int32(args.MaxVal), args.RShift))
	}
}
