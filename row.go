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

// One generic row traversal serves all six operation flavors: the
// boundary policy is an accessor, the output flavor an emitter. The
// depth-reduction and luma fusions live in the emitters (see rgb.go,
// mono.go), so a row is composed exactly once regardless of flavor.

// An emitFunc stores one composed pixel into the output row.
// Channels arrive saturated to [0, maxVal].
type emitFunc func(col, r, g, b int32)

// rowPhases returns the row's two composers in column order:
// red,green,... on even rows, green,blue,... on odd rows.
func rowPhases(row int32) (even, odd composer) {
	if row%2 == 0 {
		return rgbAtRed, rgbAtGreenRG // red-green row
	}
	return rgbAtGreenGB, rgbAtBlue // green-blue row
}

// demosaicRowSafe composes one output row with every sample access
// boundary-reflected. Valid for any row; required for rows whose 5x5
// kernel support crosses the top or bottom edge.
func demosaicRowSafe[T Sample](bayer []T, args *Args, row int32, emit emitFunc) {
	at := safeAccessor(bayer, args.NRows, args.NCols)
	max := int32(args.MaxVal)
	even, odd := rowPhases(row)

	for col := int32(0); col < args.NCols; col += 2 {
		r, g, b := even(at, row, col, max)
		emit(col, r, g, b)
		r, g, b = odd(at, row, col+1, max)
		emit(col+1, r, g, b)
	}
}

// demosaicRow composes one output row. The two top and bottom rows
// take the safe path for the entire row. Elsewhere the two leftmost
// and rightmost columns stay safe and the interior reads the backing
// array directly, which avoids the reflection tests per tap. The two
// paths must stay value-identical for every row and column; that
// equivalence is a tested invariant, not an assumption.
func demosaicRow[T Sample](bayer []T, args *Args, row int32, emit emitFunc) {
	if row < 2 || row >= args.NRows-2 {
		demosaicRowSafe(bayer, args, row, emit)
		return
	}

	safe := safeAccessor(bayer, args.NRows, args.NCols)
	fast := fastAccessor(bayer, args.NCols)
	max := int32(args.MaxVal)
	even, odd := rowPhases(row)

	// left edge
	r, g, b := even(safe, row, 0, max)
	emit(0, r, g, b)
	r, g, b = odd(safe, row, 1, max)
	emit(1, r, g, b)

	// interior, all kernel taps in bounds
	for col := int32(2); col < args.NCols-2; col += 2 {
		r, g, b = even(fast, row, col, max)
		emit(col, r, g, b)
		r, g, b = odd(fast, row, col+1, max)
		emit(col+1, r, g, b)
	}

	// right edge
	r, g, b = even(safe, row, args.NCols-2, max)
	emit(args.NCols-2, r, g, b)
	r, g, b = odd(safe, row, args.NCols-1, max)
	emit(args.NCols-1, r, g, b)
}
