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

// Per-bayer-phase pixel composers. The native channel is the raw
// sample, the other two come from the kernels. Pure functions; the
// composed channels are already saturated to [0, maxVal], the raw
// sample is within bounds by the input invariant.

// A composer builds one RGB pixel at a position of its bayer phase.
type composer func(at accessor, row, col, maxVal int32) (r, g, b int32)

// rgbAtRed composes at a red site.
func rgbAtRed(at accessor, row, col, maxVal int32) (r, g, b int32) {
	r = at(row, col)
	g = greenAtNongreen(at, row, col, maxVal)
	b = redBlueFromOpposite(at, row, col, maxVal)
	return r, g, b
}

// rgbAtGreenRG composes at a green site in a red-green row: red comes
// from the row, blue from the column.
func rgbAtGreenRG(at accessor, row, col, maxVal int32) (r, g, b int32) {
	r = redBlueFromRow(at, row, col, maxVal)
	g = at(row, col)
	b = redBlueFromColumn(at, row, col, maxVal)
	return r, g, b
}

// rgbAtGreenGB composes at a green site in a green-blue row: red comes
// from the column, blue from the row.
func rgbAtGreenGB(at accessor, row, col, maxVal int32) (r, g, b int32) {
	r = redBlueFromColumn(at, row, col, maxVal)
	g = at(row, col)
	b = redBlueFromRow(at, row, col, maxVal)
	return r, g, b
}

// rgbAtBlue composes at a blue site.
func rgbAtBlue(at accessor, row, col, maxVal int32) (r, g, b int32) {
	r = redBlueFromOpposite(at, row, col, maxVal)
	g = greenAtNongreen(at, row, col, maxVal)
	b = at(row, col)
	return r, g, b
}
