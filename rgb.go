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

// RGB output flavors: emitters plus the public row and full-image
// entry points.

func emitRGB16(out []PixRGB16) emitFunc {
	return func(col, r, g, b int32) {
		out[col] = PixRGB16{Red: uint16(r), Green: uint16(g), Blue: uint16(b)}
	}
}

func emitRGB8(out []PixRGB8) emitFunc {
	return func(col, r, g, b int32) {
		out[col] = PixRGB8{Red: uint8(r), Green: uint8(g), Blue: uint8(b)}
	}
}

// reduce shifts one composed channel down to 8 bits. The ceiling is
// pre-shifted once so a saturated channel lands exactly on the reduced
// ceiling; the clamp always happens before the shift, never after.
func reduce(v, maxVal, rshift int32, maxShifted uint8) uint8 {
	if v >= maxVal {
		return maxShifted
	}
	if v <= 0 {
		return 0
	}
	return uint8(v >> uint(rshift))
}

func emitRGB16To8(out []PixRGB8, maxVal, rshift int32) emitFunc {
	maxShifted := uint8(maxVal >> uint(rshift))
	return func(col, r, g, b int32) {
		out[col] = PixRGB8{
			Red:   reduce(r, maxVal, rshift, maxShifted),
			Green: reduce(g, maxVal, rshift, maxShifted),
			Blue:  reduce(b, maxVal, rshift, maxShifted),
		}
	}
}

// RowRGB16 demosaics one row of a 16-bit bayer image into 16-bit RGB.
// out must hold at least NCols pixels.
func RowRGB16(bayer []uint16, args *Args, row int32, out []PixRGB16) {
	const op = "RowRGB16"
	validateInput(op, bayer, args)
	validateRow(op, args, row)
	validateOutLen(op, len(out), int64(args.NCols))
	demosaicRow(bayer, args, row, emitRGB16(out))
}

// RGB16 demosaics a 16-bit bayer image into 16-bit RGB. out must hold
// at least NRows*NCols pixels and is fully overwritten.
func RGB16(bayer []uint16, args *Args, out []PixRGB16) {
	const op = "RGB16"
	validateInput(op, bayer, args)
	validateOutLen(op, len(out), int64(args.NRows)*int64(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		demosaicRow(bayer, args, row, emitRGB16(out[row*args.NCols:(row+1)*args.NCols]))
	}
}

// RowRGB8 demosaics one row of an 8-bit bayer image into 8-bit RGB.
func RowRGB8(bayer []uint8, args *Args, row int32, out []PixRGB8) {
	const op = "RowRGB8"
	validateInput(op, bayer, args)
	validateRow(op, args, row)
	validate8Bit(op, args)
	validateOutLen(op, len(out), int64(args.NCols))
	demosaicRow(bayer, args, row, emitRGB8(out))
}

// RGB8 demosaics an 8-bit bayer image into 8-bit RGB.
func RGB8(bayer []uint8, args *Args, out []PixRGB8) {
	const op = "RGB8"
	validateInput(op, bayer, args)
	validate8Bit(op, args)
	validateOutLen(op, len(out), int64(args.NRows)*int64(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		demosaicRow(bayer, args, row, emitRGB8(out[row*args.NCols:(row+1)*args.NCols]))
	}
}

// RowRGB16To8 demosaics one row of a 16-bit bayer image into 8-bit
// RGB, right-shifting each channel by args.RShift.
func RowRGB16To8(bayer []uint16, args *Args, row int32, out []PixRGB8) {
	const op = "RowRGB16To8"
	validateInput(op, bayer, args)
	validateRow(op, args, row)
	validateShift(op, args)
	validateOutLen(op, len(out), int64(args.NCols))
	demosaicRow(bayer, args, row, emitRGB16To8(out, int32(args.MaxVal), args.RShift))
}

// RGB16To8 demosaics a 16-bit bayer image into 8-bit RGB,
// right-shifting each channel by args.RShift.
func RGB16To8(bayer []uint16, args *Args, out []PixRGB8) {
	const op = "RGB16To8"
	validateInput(op, bayer, args)
	validateShift(op, args)
	validateOutLen(op, len(out), int64(args.NRows)*int64(args.NCols))
	for row := int32(0); row < args.NRows; row++ {
		demosaicRow(bayer, args, row, emitRGB16To8(out[row*args.NCols:(row+1)*args.NCols], int32(args.MaxVal), args.RShift))
	}
}
